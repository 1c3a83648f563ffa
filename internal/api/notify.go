package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
)

const (
	NotifyFollow            = "follow"
	NotifyFollowRequest     = "follow_request"
	NotifyFollowAccepted    = "follow_accepted"
	NotifyPostLike          = "post_like"
	NotifyComment           = "comment"
	NotifyJobLike           = "job_like"
	NotifyApplication       = "application"
	NotifyApplicationStatus = "application_status"
	NotifyEnrollment        = "enrollment"
	NotifyMemberJoined      = "member_joined"
)

// outbox collects notifications written inside a transaction so they can be
// published once it commits.
type outbox struct {
	created []database.Notification
}

// notify inserts a notification for recipient unless actor is the recipient.
func (o *outbox) notify(ctx context.Context, q database.Querier, recipient, actor uuid.UUID, kind string, entity uuid.UUID, message string) error {
	if recipient == actor {
		return nil
	}
	n, err := q.CreateNotification(ctx, database.CreateNotificationParams{
		RecipientID: recipient,
		ActorID:     validUUID(actor),
		Type:        kind,
		EntityID:    validUUID(entity),
		Message:     message,
	})
	if err != nil {
		return err
	}
	o.created = append(o.created, n)
	return nil
}

// flush publishes every collected notification. Failures are logged only;
// the rows are already committed.
func (s *Server) flush(c *gin.Context, o *outbox) {
	for _, n := range o.created {
		event := events.NotificationEvent{
			ID:          n.ID,
			RecipientID: n.RecipientID,
			ActorID:     nullable(n.ActorID),
			Type:        n.Type,
			EntityID:    nullable(n.EntityID),
			Message:     n.Message,
			CreatedAt:   n.CreatedAt,
		}
		if err := s.events.PublishNotification(c.Request.Context(), event); err != nil {
			s.logger.Warn("failed to publish notification",
				zap.Error(err),
				zap.String("notification_id", n.ID.String()),
				zap.String("request_id", c.GetString(RequestIDKey)),
			)
		}
	}
	o.created = nil
}
