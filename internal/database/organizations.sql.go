package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createOrganization = `-- name: CreateOrganization :one
INSERT INTO organizations (owner_id, name, description)
VALUES ($1, $2, $3)
RETURNING id, owner_id, name, description, created_at
`

type CreateOrganizationParams struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}

func (q *Queries) CreateOrganization(ctx context.Context, arg CreateOrganizationParams) (Organization, error) {
	row := q.db.QueryRowContext(ctx, createOrganization, arg.OwnerID, arg.Name, arg.Description)
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const getOrganization = `-- name: GetOrganization :one
SELECT id, owner_id, name, description, created_at FROM organizations WHERE id = $1
`

func (q *Queries) GetOrganization(ctx context.Context, id uuid.UUID) (Organization, error) {
	row := q.db.QueryRowContext(ctx, getOrganization, id)
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const listOrganizations = `-- name: ListOrganizations :many
SELECT id, owner_id, name, description, created_at FROM organizations
WHERE ($1::uuid IS NULL OR (created_at, id) <= (SELECT created_at, id FROM organizations WHERE id = $1))
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListOrganizationsParams struct {
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListOrganizations(ctx context.Context, arg ListOrganizationsParams) ([]Organization, error) {
	rows, err := q.db.QueryContext(ctx, listOrganizations, arg.Cursor, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Organization
	for rows.Next() {
		var i Organization
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Name,
			&i.Description,
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

const addMember = `-- name: AddMember :execrows
INSERT INTO members (organization_id, user_id, role)
VALUES ($1, $2, $3)
ON CONFLICT (organization_id, user_id) DO NOTHING
`

type AddMemberParams struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
}

func (q *Queries) AddMember(ctx context.Context, arg AddMemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, addMember, arg.OrganizationID, arg.UserID, arg.Role)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const removeMember = `-- name: RemoveMember :execrows
DELETE FROM members WHERE organization_id = $1 AND user_id = $2
`

type RemoveMemberParams struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

func (q *Queries) RemoveMember(ctx context.Context, arg RemoveMemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, removeMember, arg.OrganizationID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listMembers = `-- name: ListMembers :many
SELECT m.user_id, u.name, m.role, m.created_at
FROM members m
JOIN users u ON u.id = m.user_id
WHERE m.organization_id = $1
ORDER BY m.created_at
`

type MemberRow struct {
	UserID   uuid.UUID
	Name     string
	Role     string
	JoinedAt time.Time
}

func (q *Queries) ListMembers(ctx context.Context, organizationID uuid.UUID) ([]MemberRow, error) {
	rows, err := q.db.QueryContext(ctx, listMembers, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MemberRow
	for rows.Next() {
		var i MemberRow
		if err := rows.Scan(
			&i.UserID,
			&i.Name,
			&i.Role,
			&i.JoinedAt,
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
