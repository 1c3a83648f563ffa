package database

import (
	"context"

	"github.com/google/uuid"
)

const createNotification = `-- name: CreateNotification :one
INSERT INTO notifications (recipient_id, actor_id, type, entity_id, message)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, recipient_id, actor_id, type, entity_id, message, is_read, created_at
`

type CreateNotificationParams struct {
	RecipientID uuid.UUID
	ActorID     uuid.NullUUID
	Type        string
	EntityID    uuid.NullUUID
	Message     string
}

func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error) {
	row := q.db.QueryRowContext(ctx, createNotification,
		arg.RecipientID,
		arg.ActorID,
		arg.Type,
		arg.EntityID,
		arg.Message,
	)
	var i Notification
	err := row.Scan(
		&i.ID,
		&i.RecipientID,
		&i.ActorID,
		&i.Type,
		&i.EntityID,
		&i.Message,
		&i.IsRead,
		&i.CreatedAt,
	)
	return i, err
}

const listNotifications = `-- name: ListNotifications :many
SELECT id, recipient_id, actor_id, type, entity_id, message, is_read, created_at FROM notifications
WHERE recipient_id = $1
  AND ($2::uuid IS NULL OR (created_at, id) <= (SELECT created_at, id FROM notifications WHERE id = $2))
ORDER BY created_at DESC, id DESC
LIMIT $3
`

type ListNotificationsParams struct {
	RecipientID uuid.UUID
	Cursor      uuid.NullUUID
	Limit       int32
}

func (q *Queries) ListNotifications(ctx context.Context, arg ListNotificationsParams) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, listNotifications, arg.RecipientID, arg.Cursor, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Notification
	for rows.Next() {
		var i Notification
		if err := rows.Scan(
			&i.ID,
			&i.RecipientID,
			&i.ActorID,
			&i.Type,
			&i.EntityID,
			&i.Message,
			&i.IsRead,
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

const markNotificationRead = `-- name: MarkNotificationRead :execrows
UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2
`

type MarkNotificationReadParams struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
}

func (q *Queries) MarkNotificationRead(ctx context.Context, arg MarkNotificationReadParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markNotificationRead, arg.ID, arg.RecipientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const markAllNotificationsRead = `-- name: MarkAllNotificationsRead :exec
UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE
`

func (q *Queries) MarkAllNotificationsRead(ctx context.Context, recipientID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, markAllNotificationsRead, recipientID)
	return err
}
