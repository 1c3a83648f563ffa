package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

// GET /api/notifications?cursor=&limit=
func (s *Server) ListNotifications(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListNotifications(c.Request.Context(), database.ListNotificationsParams{
		RecipientID: currentUser(c).ID,
		Cursor:      page.Cursor,
		Limit:       page.Fetch(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	result := pagination.Build(rows, page.Limit, func(n database.Notification) uuid.UUID { return n.ID })
	c.JSON(http.StatusOK, pagination.Map(result, toNotification))
}

// POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	updated, err := s.store.MarkNotificationRead(c.Request.Context(), database.MarkNotificationReadParams{ID: id, RecipientID: currentUser(c).ID})
	if err != nil {
		s.fail(c, err)
		return
	}
	// Someone else's notification looks the same as a missing one.
	if updated == 0 {
		s.fail(c, errNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_read": true})
}

// POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	if err := s.store.MarkAllNotificationsRead(c.Request.Context(), currentUser(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
