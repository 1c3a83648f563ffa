package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/atcampus/internal/database"
)

const (
	followRequestPending  = "pending"
	followRequestAccepted = "accepted"
	followRequestRejected = "rejected"
)

// Follow follows a public profile right away, or leaves a follow request on
// a private one.
// POST /api/users/:id/follow
func (s *Server) Follow(c *gin.Context) {
	me := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	if id == me.ID {
		s.fail(c, badRequest("You cannot follow yourself"))
		return
	}
	ctx := c.Request.Context()
	target, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	already, err := s.store.IsFollowing(ctx, database.IsFollowingParams{FollowerID: me.ID, FollowingID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	if already {
		s.fail(c, conflict("Already following"))
		return
	}

	out := &outbox{}
	if target.IsPrivate {
		var request database.FollowRequest
		err = s.store.ExecTx(ctx, func(q database.Querier) error {
			var err error
			request, err = q.CreateFollowRequest(ctx, database.CreateFollowRequestParams{RequesterID: me.ID, TargetID: id})
			if err != nil {
				return err
			}
			return out.notify(ctx, q, id, me.ID, NotifyFollowRequest, request.ID,
				fmt.Sprintf("%s requested to follow you", me.Name))
		})
		if database.IsUniqueViolation(err) {
			s.fail(c, conflict("Follow request already pending"))
			return
		}
		if err != nil {
			s.fail(c, err)
			return
		}
		s.flush(c, out)
		c.JSON(http.StatusAccepted, gin.H{"status": "requested", "request": toFollowRequest(request)})
		return
	}

	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		follow, err := q.CreateFollow(ctx, database.CreateFollowParams{FollowerID: me.ID, FollowingID: id})
		if err != nil {
			return err
		}
		return out.notify(ctx, q, id, me.ID, NotifyFollow, follow.ID,
			fmt.Sprintf("%s started following you", me.Name))
	})
	if database.IsUniqueViolation(err) {
		s.fail(c, conflict("Already following"))
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)
	c.JSON(http.StatusCreated, gin.H{"status": "following"})
}

// Unfollow removes a follow, or withdraws a pending request.
// DELETE /api/users/:id/follow
func (s *Server) Unfollow(c *gin.Context) {
	me := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	n, err := s.store.DeleteFollow(ctx, database.DeleteFollowParams{FollowerID: me.ID, FollowingID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	if n > 0 {
		c.JSON(http.StatusOK, gin.H{"status": "unfollowed"})
		return
	}
	n, err = s.store.DeletePendingFollowRequest(ctx, database.DeletePendingFollowRequestParams{RequesterID: me.ID, TargetID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	if n == 0 {
		s.fail(c, errNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "request_withdrawn"})
}

// GET /api/follow-requests
func (s *Server) ListFollowRequests(c *gin.Context) {
	me := currentUser(c)
	requests, err := s.store.ListPendingFollowRequests(c.Request.Context(), me.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]followRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toFollowRequest(r))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// loadPendingRequest fetches the request addressed to the current user.
func (s *Server) loadPendingRequest(c *gin.Context) (database.FollowRequest, error) {
	me := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return database.FollowRequest{}, err
	}
	request, err := s.store.GetFollowRequest(c.Request.Context(), id)
	if err != nil {
		return database.FollowRequest{}, err
	}
	if request.TargetID != me.ID {
		return database.FollowRequest{}, errForbidden
	}
	if request.Status != followRequestPending {
		return database.FollowRequest{}, conflict("Follow request already handled")
	}
	return request, nil
}

// AcceptFollowRequest marks the request accepted, creates the follow and
// tells the requester, all in one transaction.
// POST /api/follow-requests/:id/accept
func (s *Server) AcceptFollowRequest(c *gin.Context) {
	me := currentUser(c)
	request, err := s.loadPendingRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	out := &outbox{}
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		if err := q.UpdateFollowRequestStatus(ctx, database.UpdateFollowRequestStatusParams{Status: followRequestAccepted, ID: request.ID}); err != nil {
			return err
		}
		if _, err := q.CreateFollow(ctx, database.CreateFollowParams{FollowerID: request.RequesterID, FollowingID: me.ID}); err != nil {
			return err
		}
		return out.notify(ctx, q, request.RequesterID, me.ID, NotifyFollowAccepted, request.ID,
			fmt.Sprintf("%s accepted your follow request", me.Name))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)
	request.Status = followRequestAccepted
	c.JSON(http.StatusOK, toFollowRequest(request))
}

// POST /api/follow-requests/:id/reject
func (s *Server) RejectFollowRequest(c *gin.Context) {
	request, err := s.loadPendingRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	err = s.store.UpdateFollowRequestStatus(c.Request.Context(), database.UpdateFollowRequestStatusParams{Status: followRequestRejected, ID: request.ID})
	if err != nil {
		s.fail(c, err)
		return
	}
	request.Status = followRequestRejected
	c.JSON(http.StatusOK, toFollowRequest(request))
}
