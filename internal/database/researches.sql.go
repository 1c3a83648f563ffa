package database

import (
	"context"

	"github.com/google/uuid"
)

const createResearch = `-- name: CreateResearch :one
INSERT INTO researches (author_id, title, abstract, url)
VALUES ($1, $2, $3, $4)
RETURNING id, author_id, title, abstract, url, created_at
`

type CreateResearchParams struct {
	AuthorID uuid.UUID
	Title    string
	Abstract string
	Url      string
}

func (q *Queries) CreateResearch(ctx context.Context, arg CreateResearchParams) (Research, error) {
	row := q.db.QueryRowContext(ctx, createResearch,
		arg.AuthorID,
		arg.Title,
		arg.Abstract,
		arg.Url,
	)
	var i Research
	err := row.Scan(
		&i.ID,
		&i.AuthorID,
		&i.Title,
		&i.Abstract,
		&i.Url,
		&i.CreatedAt,
	)
	return i, err
}

const listResearches = `-- name: ListResearches :many
SELECT id, author_id, title, abstract, url, created_at FROM researches
WHERE ($1::uuid IS NULL OR (created_at, id) <= (SELECT created_at, id FROM researches WHERE id = $1))
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListResearchesParams struct {
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListResearches(ctx context.Context, arg ListResearchesParams) ([]Research, error) {
	rows, err := q.db.QueryContext(ctx, listResearches, arg.Cursor, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Research
	for rows.Next() {
		var i Research
		if err := rows.Scan(
			&i.ID,
			&i.AuthorID,
			&i.Title,
			&i.Abstract,
			&i.Url,
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
