package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

type createPostRequest struct {
	Content  string `json:"content" binding:"required,max=5000"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func postID(p database.PostRow) uuid.UUID { return p.ID }

// ListPosts is the global feed, newest first.
// GET /api/posts?cursor=&limit=
func (s *Server) ListPosts(c *gin.Context) {
	me := currentUser(c)
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListPosts(c.Request.Context(), database.ListPostsParams{
		ViewerID: me.ID,
		Cursor:   page.Cursor,
		Limit:    page.Fetch(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(pagination.Build(rows, page.Limit, postID), toPost))
}

// GET /api/bookmarks
func (s *Server) ListBookmarks(c *gin.Context) {
	me := currentUser(c)
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListBookmarkedPosts(c.Request.Context(), database.ListBookmarkedPostsParams{
		UserID: me.ID,
		Cursor: page.Cursor,
		Limit:  page.Fetch(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(pagination.Build(rows, page.Limit, postID), toPost))
}

// POST /api/posts
func (s *Server) CreatePost(c *gin.Context) {
	me := currentUser(c)
	var req createPostRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		s.fail(c, invalidField("content", "is required"))
		return
	}
	post, err := s.store.CreatePost(c.Request.Context(), database.CreatePostParams{
		AuthorID: me.ID,
		Content:  content,
		ImageUrl: req.ImageURL,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPost(database.PostRow{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: me.Name,
		Content:    post.Content,
		ImageUrl:   post.ImageUrl,
		CreatedAt:  post.CreatedAt,
	}))
}

func (s *Server) loadPost(c *gin.Context) (database.PostRow, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return database.PostRow{}, err
	}
	return s.store.GetPost(c.Request.Context(), database.GetPostParams{ViewerID: currentUser(c).ID, ID: id})
}

// GET /api/posts/:id
func (s *Server) GetPost(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPost(post))
}

// DELETE /api/posts/:id
func (s *Server) DeletePost(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if post.AuthorID != currentUser(c).ID {
		s.fail(c, errForbidden)
		return
	}
	if err := s.store.DeletePost(c.Request.Context(), post.ID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// GET /api/posts/:id/likes
func (s *Server) GetPostLikes(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likesResponse{Count: post.LikeCount, Liked: post.Liked})
}

// LikePost is idempotent; the author is notified only on the first like.
// POST /api/posts/:id/likes
func (s *Server) LikePost(c *gin.Context) {
	me := currentUser(c)
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	out := &outbox{}
	var inserted int64
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		inserted, err = q.LikePost(ctx, database.LikePostParams{UserID: me.ID, PostID: post.ID})
		if err != nil || inserted == 0 {
			return err
		}
		return out.notify(ctx, q, post.AuthorID, me.ID, NotifyPostLike, post.ID,
			fmt.Sprintf("%s liked your post", me.Name))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)
	count := post.LikeCount
	if inserted > 0 && !post.Liked {
		count++
	}
	c.JSON(http.StatusOK, likesResponse{Count: count, Liked: true})
}

// DELETE /api/posts/:id/likes
func (s *Server) UnlikePost(c *gin.Context) {
	me := currentUser(c)
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	removed, err := s.store.UnlikePost(c.Request.Context(), database.UnlikePostParams{UserID: me.ID, PostID: post.ID})
	if err != nil {
		s.fail(c, err)
		return
	}
	count := post.LikeCount
	if removed > 0 && count > 0 {
		count--
	}
	c.JSON(http.StatusOK, likesResponse{Count: count, Liked: false})
}

// GET /api/posts/:id/bookmark
func (s *Server) GetBookmark(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": post.Bookmarked})
}

// POST /api/posts/:id/bookmark
func (s *Server) Bookmark(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.store.CreateBookmark(c.Request.Context(), database.CreateBookmarkParams{UserID: currentUser(c).ID, PostID: post.ID}); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

// DELETE /api/posts/:id/bookmark
func (s *Server) RemoveBookmark(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.store.DeleteBookmark(c.Request.Context(), database.DeleteBookmarkParams{UserID: currentUser(c).ID, PostID: post.ID}); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}

// GET /api/posts/:id/comments
func (s *Server) ListComments(c *gin.Context) {
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListComments(c.Request.Context(), database.ListCommentsParams{
		PostID: post.ID,
		Cursor: page.Cursor,
		Limit:  page.Fetch(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	result := pagination.Build(rows, page.Limit, func(cm database.Comment) uuid.UUID { return cm.ID })
	c.JSON(http.StatusOK, pagination.Map(result, toComment))
}

// POST /api/posts/:id/comments
func (s *Server) CreateComment(c *gin.Context) {
	me := currentUser(c)
	post, err := s.loadPost(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req createCommentRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		s.fail(c, invalidField("content", "is required"))
		return
	}
	ctx := c.Request.Context()
	out := &outbox{}
	var comment database.Comment
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		comment, err = q.CreateComment(ctx, database.CreateCommentParams{PostID: post.ID, AuthorID: me.ID, Content: content})
		if err != nil {
			return err
		}
		return out.notify(ctx, q, post.AuthorID, me.ID, NotifyComment, post.ID,
			fmt.Sprintf("%s commented on your post", me.Name))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)
	c.JSON(http.StatusCreated, toComment(comment))
}
