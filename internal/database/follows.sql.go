package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createFollow = `-- name: CreateFollow :one
INSERT INTO follows (follower_id, following_id)
VALUES ($1, $2)
RETURNING id, follower_id, following_id, created_at
`

type CreateFollowParams struct {
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
}

func (q *Queries) CreateFollow(ctx context.Context, arg CreateFollowParams) (Follow, error) {
	row := q.db.QueryRowContext(ctx, createFollow, arg.FollowerID, arg.FollowingID)
	var i Follow
	err := row.Scan(
		&i.ID,
		&i.FollowerID,
		&i.FollowingID,
		&i.CreatedAt,
	)
	return i, err
}

const deleteFollow = `-- name: DeleteFollow :execrows
DELETE FROM follows WHERE follower_id = $1 AND following_id = $2
`

type DeleteFollowParams struct {
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
}

func (q *Queries) DeleteFollow(ctx context.Context, arg DeleteFollowParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteFollow, arg.FollowerID, arg.FollowingID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const isFollowing = `-- name: IsFollowing :one
SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)
`

type IsFollowingParams struct {
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
}

func (q *Queries) IsFollowing(ctx context.Context, arg IsFollowingParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isFollowing, arg.FollowerID, arg.FollowingID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listFollowers = `-- name: ListFollowers :many
SELECT f.id, f.created_at, u.id, u.name, u.role
FROM follows f
JOIN users u ON u.id = f.follower_id
WHERE f.following_id = $1
  AND ($2::uuid IS NULL OR (f.created_at, f.id) <= (SELECT created_at, id FROM follows WHERE id = $2))
ORDER BY f.created_at DESC, f.id DESC
LIMIT $3
`

type ListFollowersParams struct {
	UserID uuid.UUID
	Cursor uuid.NullUUID
	Limit  int32
}

type FollowUserRow struct {
	FollowID  uuid.UUID
	CreatedAt time.Time
	UserID    uuid.UUID
	Name      string
	Role      string
}

func (q *Queries) ListFollowers(ctx context.Context, arg ListFollowersParams) ([]FollowUserRow, error) {
	return q.listFollowUsers(ctx, listFollowers, arg.UserID, arg.Cursor, arg.Limit)
}

const listFollowing = `-- name: ListFollowing :many
SELECT f.id, f.created_at, u.id, u.name, u.role
FROM follows f
JOIN users u ON u.id = f.following_id
WHERE f.follower_id = $1
  AND ($2::uuid IS NULL OR (f.created_at, f.id) <= (SELECT created_at, id FROM follows WHERE id = $2))
ORDER BY f.created_at DESC, f.id DESC
LIMIT $3
`

type ListFollowingParams struct {
	UserID uuid.UUID
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListFollowing(ctx context.Context, arg ListFollowingParams) ([]FollowUserRow, error) {
	return q.listFollowUsers(ctx, listFollowing, arg.UserID, arg.Cursor, arg.Limit)
}

func (q *Queries) listFollowUsers(ctx context.Context, query string, userID uuid.UUID, cursor uuid.NullUUID, limit int32) ([]FollowUserRow, error) {
	rows, err := q.db.QueryContext(ctx, query, userID, cursor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FollowUserRow
	for rows.Next() {
		var i FollowUserRow
		if err := rows.Scan(
			&i.FollowID,
			&i.CreatedAt,
			&i.UserID,
			&i.Name,
			&i.Role,
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

const createFollowRequest = `-- name: CreateFollowRequest :one
INSERT INTO follow_requests (requester_id, target_id)
VALUES ($1, $2)
RETURNING id, requester_id, target_id, status, created_at
`

type CreateFollowRequestParams struct {
	RequesterID uuid.UUID
	TargetID    uuid.UUID
}

func (q *Queries) CreateFollowRequest(ctx context.Context, arg CreateFollowRequestParams) (FollowRequest, error) {
	row := q.db.QueryRowContext(ctx, createFollowRequest, arg.RequesterID, arg.TargetID)
	var i FollowRequest
	err := row.Scan(
		&i.ID,
		&i.RequesterID,
		&i.TargetID,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const getFollowRequest = `-- name: GetFollowRequest :one
SELECT id, requester_id, target_id, status, created_at FROM follow_requests WHERE id = $1
`

func (q *Queries) GetFollowRequest(ctx context.Context, id uuid.UUID) (FollowRequest, error) {
	row := q.db.QueryRowContext(ctx, getFollowRequest, id)
	var i FollowRequest
	err := row.Scan(
		&i.ID,
		&i.RequesterID,
		&i.TargetID,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const updateFollowRequestStatus = `-- name: UpdateFollowRequestStatus :exec
UPDATE follow_requests
SET status = $1
WHERE id = $2
`

type UpdateFollowRequestStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateFollowRequestStatus(ctx context.Context, arg UpdateFollowRequestStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateFollowRequestStatus, arg.Status, arg.ID)
	return err
}

const listPendingFollowRequests = `-- name: ListPendingFollowRequests :many
SELECT id, requester_id, target_id, status, created_at FROM follow_requests
WHERE target_id = $1 AND status = 'pending'
ORDER BY created_at DESC
`

func (q *Queries) ListPendingFollowRequests(ctx context.Context, targetID uuid.UUID) ([]FollowRequest, error) {
	rows, err := q.db.QueryContext(ctx, listPendingFollowRequests, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FollowRequest
	for rows.Next() {
		var i FollowRequest
		if err := rows.Scan(
			&i.ID,
			&i.RequesterID,
			&i.TargetID,
			&i.Status,
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

const deletePendingFollowRequest = `-- name: DeletePendingFollowRequest :execrows
DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2 AND status = 'pending'
`

type DeletePendingFollowRequestParams struct {
	RequesterID uuid.UUID
	TargetID    uuid.UUID
}

func (q *Queries) DeletePendingFollowRequest(ctx context.Context, arg DeletePendingFollowRequestParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePendingFollowRequest, arg.RequesterID, arg.TargetID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
