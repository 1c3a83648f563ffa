package database

import (
	"context"

	"github.com/google/uuid"
)

const createSchool = `-- name: CreateSchool :one
INSERT INTO schools (owner_id, name, location)
VALUES ($1, $2, $3)
RETURNING id, owner_id, name, location, created_at
`

type CreateSchoolParams struct {
	OwnerID  uuid.UUID
	Name     string
	Location string
}

func (q *Queries) CreateSchool(ctx context.Context, arg CreateSchoolParams) (School, error) {
	row := q.db.QueryRowContext(ctx, createSchool, arg.OwnerID, arg.Name, arg.Location)
	var i School
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Location,
		&i.CreatedAt,
	)
	return i, err
}

const getSchool = `-- name: GetSchool :one
SELECT id, owner_id, name, location, created_at FROM schools WHERE id = $1
`

func (q *Queries) GetSchool(ctx context.Context, id uuid.UUID) (School, error) {
	row := q.db.QueryRowContext(ctx, getSchool, id)
	var i School
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Location,
		&i.CreatedAt,
	)
	return i, err
}

const listSchools = `-- name: ListSchools :many
SELECT id, owner_id, name, location, created_at FROM schools ORDER BY name
`

func (q *Queries) ListSchools(ctx context.Context) ([]School, error) {
	rows, err := q.db.QueryContext(ctx, listSchools)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []School
	for rows.Next() {
		var i School
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Name,
			&i.Location,
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

const createFaculty = `-- name: CreateFaculty :one
INSERT INTO faculties (school_id, name)
VALUES ($1, $2)
RETURNING id, school_id, name, created_at
`

type CreateFacultyParams struct {
	SchoolID uuid.UUID
	Name     string
}

func (q *Queries) CreateFaculty(ctx context.Context, arg CreateFacultyParams) (Faculty, error) {
	row := q.db.QueryRowContext(ctx, createFaculty, arg.SchoolID, arg.Name)
	var i Faculty
	err := row.Scan(
		&i.ID,
		&i.SchoolID,
		&i.Name,
		&i.CreatedAt,
	)
	return i, err
}

const listFaculties = `-- name: ListFaculties :many
SELECT id, school_id, name, created_at FROM faculties WHERE school_id = $1 ORDER BY name
`

func (q *Queries) ListFaculties(ctx context.Context, schoolID uuid.UUID) ([]Faculty, error) {
	rows, err := q.db.QueryContext(ctx, listFaculties, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Faculty
	for rows.Next() {
		var i Faculty
		if err := rows.Scan(
			&i.ID,
			&i.SchoolID,
			&i.Name,
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
