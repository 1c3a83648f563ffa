package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostRow is a post as seen by one viewer.
type PostRow struct {
	ID           uuid.UUID
	AuthorID     uuid.UUID
	AuthorName   string
	Content      string
	ImageUrl     string
	CreatedAt    time.Time
	LikeCount    int64
	CommentCount int64
	Liked        bool
	Bookmarked   bool
}

const postRowColumns = `p.id, p.author_id, u.name, p.content, p.image_url, p.created_at,
  (SELECT count(*) FROM post_likes pl WHERE pl.post_id = p.id),
  (SELECT count(*) FROM comments c WHERE c.post_id = p.id),
  EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1),
  EXISTS (SELECT 1 FROM bookmarks b WHERE b.post_id = p.id AND b.user_id = $1)`

const createPost = `-- name: CreatePost :one
INSERT INTO posts (author_id, content, image_url)
VALUES ($1, $2, $3)
RETURNING id, author_id, content, image_url, created_at, updated_at
`

type CreatePostParams struct {
	AuthorID uuid.UUID
	Content  string
	ImageUrl string
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost, arg.AuthorID, arg.Content, arg.ImageUrl)
	var i Post
	err := row.Scan(
		&i.ID,
		&i.AuthorID,
		&i.Content,
		&i.ImageUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPost = `-- name: GetPost :one
SELECT ` + postRowColumns + `
FROM posts p
JOIN users u ON u.id = p.author_id
WHERE p.id = $2
`

type GetPostParams struct {
	ViewerID uuid.UUID
	ID       uuid.UUID
}

func (q *Queries) GetPost(ctx context.Context, arg GetPostParams) (PostRow, error) {
	row := q.db.QueryRowContext(ctx, getPost, arg.ViewerID, arg.ID)
	var i PostRow
	err := row.Scan(
		&i.ID,
		&i.AuthorID,
		&i.AuthorName,
		&i.Content,
		&i.ImageUrl,
		&i.CreatedAt,
		&i.LikeCount,
		&i.CommentCount,
		&i.Liked,
		&i.Bookmarked,
	)
	return i, err
}

const listPosts = `-- name: ListPosts :many
SELECT ` + postRowColumns + `
FROM posts p
JOIN users u ON u.id = p.author_id
WHERE ($2::uuid IS NULL OR (p.created_at, p.id) <= (SELECT created_at, id FROM posts WHERE id = $2))
ORDER BY p.created_at DESC, p.id DESC
LIMIT $3
`

type ListPostsParams struct {
	ViewerID uuid.UUID
	Cursor   uuid.NullUUID
	Limit    int32
}

func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]PostRow, error) {
	return q.listPostRows(ctx, listPosts, arg.ViewerID, arg.Cursor, arg.Limit)
}

const listBookmarkedPosts = `-- name: ListBookmarkedPosts :many
SELECT ` + postRowColumns + `
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN bookmarks bm ON bm.post_id = p.id AND bm.user_id = $1
WHERE ($2::uuid IS NULL OR (p.created_at, p.id) <= (SELECT created_at, id FROM posts WHERE id = $2))
ORDER BY p.created_at DESC, p.id DESC
LIMIT $3
`

type ListBookmarkedPostsParams struct {
	UserID uuid.UUID
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListBookmarkedPosts(ctx context.Context, arg ListBookmarkedPostsParams) ([]PostRow, error) {
	return q.listPostRows(ctx, listBookmarkedPosts, arg.UserID, arg.Cursor, arg.Limit)
}

func (q *Queries) listPostRows(ctx context.Context, query string, viewerID uuid.UUID, cursor uuid.NullUUID, limit int32) ([]PostRow, error) {
	rows, err := q.db.QueryContext(ctx, query, viewerID, cursor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PostRow
	for rows.Next() {
		var i PostRow
		if err := rows.Scan(
			&i.ID,
			&i.AuthorID,
			&i.AuthorName,
			&i.Content,
			&i.ImageUrl,
			&i.CreatedAt,
			&i.LikeCount,
			&i.CommentCount,
			&i.Liked,
			&i.Bookmarked,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deletePost = `-- name: DeletePost :exec
DELETE FROM posts WHERE id = $1
`

func (q *Queries) DeletePost(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

const likePost = `-- name: LikePost :execrows
INSERT INTO post_likes (user_id, post_id)
VALUES ($1, $2)
ON CONFLICT (user_id, post_id) DO NOTHING
`

type LikePostParams struct {
	UserID uuid.UUID
	PostID uuid.UUID
}

func (q *Queries) LikePost(ctx context.Context, arg LikePostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, likePost, arg.UserID, arg.PostID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const unlikePost = `-- name: UnlikePost :execrows
DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2
`

type UnlikePostParams struct {
	UserID uuid.UUID
	PostID uuid.UUID
}

func (q *Queries) UnlikePost(ctx context.Context, arg UnlikePostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, unlikePost, arg.UserID, arg.PostID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createBookmark = `-- name: CreateBookmark :execrows
INSERT INTO bookmarks (user_id, post_id)
VALUES ($1, $2)
ON CONFLICT (user_id, post_id) DO NOTHING
`

type CreateBookmarkParams struct {
	UserID uuid.UUID
	PostID uuid.UUID
}

func (q *Queries) CreateBookmark(ctx context.Context, arg CreateBookmarkParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createBookmark, arg.UserID, arg.PostID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteBookmark = `-- name: DeleteBookmark :execrows
DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2
`

type DeleteBookmarkParams struct {
	UserID uuid.UUID
	PostID uuid.UUID
}

func (q *Queries) DeleteBookmark(ctx context.Context, arg DeleteBookmarkParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBookmark, arg.UserID, arg.PostID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createComment = `-- name: CreateComment :one
INSERT INTO comments (post_id, author_id, content)
VALUES ($1, $2, $3)
RETURNING id, post_id, author_id, content, created_at
`

type CreateCommentParams struct {
	PostID   uuid.UUID
	AuthorID uuid.UUID
	Content  string
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment, arg.PostID, arg.AuthorID, arg.Content)
	var i Comment
	err := row.Scan(
		&i.ID,
		&i.PostID,
		&i.AuthorID,
		&i.Content,
		&i.CreatedAt,
	)
	return i, err
}

const listComments = `-- name: ListComments :many
SELECT id, post_id, author_id, content, created_at FROM comments
WHERE post_id = $1
  AND ($2::uuid IS NULL OR (created_at, id) <= (SELECT created_at, id FROM comments WHERE id = $2))
ORDER BY created_at DESC, id DESC
LIMIT $3
`

type ListCommentsParams struct {
	PostID uuid.UUID
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListComments(ctx context.Context, arg ListCommentsParams) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listComments, arg.PostID, arg.Cursor, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Comment
	for rows.Next() {
		var i Comment
		if err := rows.Scan(
			&i.ID,
			&i.PostID,
			&i.AuthorID,
			&i.Content,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
