package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

type skillsRequest struct {
	Skills []string `json:"skills" binding:"max=50,dive,max=60"`
}

// GET /api/users/:id
func (s *Server) GetProfile(c *gin.Context) {
	viewer := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	skills, err := s.store.ListUserSkills(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if skills == nil {
		skills = []string{}
	}
	following, err := s.store.IsFollowing(ctx, database.IsFollowingParams{FollowerID: viewer.ID, FollowingID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      toUser(user, viewer.ID),
		"skills":    skills,
		"following": following,
	})
}

// ReplaceSkills swaps the current user's skill list for the one given.
// PUT /api/users/me/skills
func (s *Server) ReplaceSkills(c *gin.Context) {
	user := currentUser(c)
	var req skillsRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	skills := normalizeSkills(req.Skills)

	err := s.store.ExecTx(c.Request.Context(), func(q database.Querier) error {
		if err := q.DeleteUserSkills(c.Request.Context(), user.ID); err != nil {
			return err
		}
		for _, name := range skills {
			if err := q.AddUserSkill(c.Request.Context(), database.AddUserSkillParams{UserID: user.ID, Name: name}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// normalizeSkills trims names and drops blanks and case-insensitive
// duplicates, keeping the first spelling seen.
func normalizeSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := []string{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// canSeeConnections reports whether viewer may list target's followers and
// following.
func (s *Server) canSeeConnections(ctx context.Context, viewer uuid.UUID, target database.User) (bool, error) {
	if !target.IsPrivate || viewer == target.ID {
		return true, nil
	}
	return s.store.IsFollowing(ctx, database.IsFollowingParams{FollowerID: viewer, FollowingID: target.ID})
}

// GET /api/users/:id/followers
func (s *Server) ListFollowers(c *gin.Context) {
	s.listConnections(c, func(ctx context.Context, id uuid.UUID, page pagination.Request) ([]database.FollowUserRow, error) {
		return s.store.ListFollowers(ctx, database.ListFollowersParams{UserID: id, Cursor: page.Cursor, Limit: page.Fetch()})
	})
}

// GET /api/users/:id/following
func (s *Server) ListFollowing(c *gin.Context) {
	s.listConnections(c, func(ctx context.Context, id uuid.UUID, page pagination.Request) ([]database.FollowUserRow, error) {
		return s.store.ListFollowing(ctx, database.ListFollowingParams{UserID: id, Cursor: page.Cursor, Limit: page.Fetch()})
	})
}

func (s *Server) listConnections(c *gin.Context, list func(context.Context, uuid.UUID, pagination.Request) ([]database.FollowUserRow, error)) {
	viewer := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	target, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok, err := s.canSeeConnections(ctx, viewer.ID, target)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !ok {
		s.fail(c, errForbidden)
		return
	}
	rows, err := list(ctx, id, page)
	if err != nil {
		s.fail(c, err)
		return
	}
	result := pagination.Build(rows, page.Limit, func(r database.FollowUserRow) uuid.UUID { return r.FollowID })
	c.JSON(http.StatusOK, pagination.Map(result, toFollowUser))
}
