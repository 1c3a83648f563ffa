package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createJob = `-- name: CreateJob :one
INSERT INTO jobs (owner_id, title, description, location, required_skills)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, owner_id, title, description, location, required_skills, created_at
`

type CreateJobParams struct {
	OwnerID        uuid.UUID
	Title          string
	Description    string
	Location       string
	RequiredSkills []string
}

func (q *Queries) CreateJob(ctx context.Context, arg CreateJobParams) (Job, error) {
	row := q.db.QueryRowContext(ctx, createJob,
		arg.OwnerID,
		arg.Title,
		arg.Description,
		arg.Location,
		pq.Array(arg.RequiredSkills),
	)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Title,
		&i.Description,
		&i.Location,
		pq.Array(&i.RequiredSkills),
		&i.CreatedAt,
	)
	return i, err
}

const getJob = `-- name: GetJob :one
SELECT id, owner_id, title, description, location, required_skills, created_at FROM jobs WHERE id = $1
`

func (q *Queries) GetJob(ctx context.Context, id uuid.UUID) (Job, error) {
	row := q.db.QueryRowContext(ctx, getJob, id)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Title,
		&i.Description,
		&i.Location,
		pq.Array(&i.RequiredSkills),
		&i.CreatedAt,
	)
	return i, err
}

const listJobs = `-- name: ListJobs :many
SELECT id, owner_id, title, description, location, required_skills, created_at FROM jobs
WHERE ($1::uuid IS NULL OR (created_at, id) <= (SELECT created_at, id FROM jobs WHERE id = $1))
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListJobsParams struct {
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListJobs(ctx context.Context, arg ListJobsParams) ([]Job, error) {
	rows, err := q.db.QueryContext(ctx, listJobs, arg.Cursor, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Job
	for rows.Next() {
		var i Job
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Title,
			&i.Description,
			&i.Location,
			pq.Array(&i.RequiredSkills),
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

const deleteJob = `-- name: DeleteJob :exec
DELETE FROM jobs WHERE id = $1
`

func (q *Queries) DeleteJob(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteJob, id)
	return err
}

const addJobCourse = `-- name: AddJobCourse :exec
INSERT INTO job_courses (job_id, course_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type AddJobCourseParams struct {
	JobID    uuid.UUID
	CourseID uuid.UUID
}

func (q *Queries) AddJobCourse(ctx context.Context, arg AddJobCourseParams) error {
	_, err := q.db.ExecContext(ctx, addJobCourse, arg.JobID, arg.CourseID)
	return err
}

const listJobCourses = `-- name: ListJobCourses :many
SELECT job_id, course_id FROM job_courses WHERE job_id = ANY($1::uuid[])
`

func (q *Queries) ListJobCourses(ctx context.Context, jobIDs []uuid.UUID) ([]JobCourse, error) {
	rows, err := q.db.QueryContext(ctx, listJobCourses, pq.Array(uuidStrings(jobIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JobCourse
	for rows.Next() {
		var i JobCourse
		if err := rows.Scan(&i.JobID, &i.CourseID); err != nil {
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

const likeJob = `-- name: LikeJob :execrows
INSERT INTO job_likes (user_id, job_id)
VALUES ($1, $2)
ON CONFLICT (user_id, job_id) DO NOTHING
`

type LikeJobParams struct {
	UserID uuid.UUID
	JobID  uuid.UUID
}

func (q *Queries) LikeJob(ctx context.Context, arg LikeJobParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, likeJob, arg.UserID, arg.JobID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const unlikeJob = `-- name: UnlikeJob :execrows
DELETE FROM job_likes WHERE user_id = $1 AND job_id = $2
`

type UnlikeJobParams struct {
	UserID uuid.UUID
	JobID  uuid.UUID
}

func (q *Queries) UnlikeJob(ctx context.Context, arg UnlikeJobParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, unlikeJob, arg.UserID, arg.JobID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getJobLikes = `-- name: GetJobLikes :one
SELECT count(*), COALESCE(bool_or(user_id = $2), FALSE) FROM job_likes WHERE job_id = $1
`

type GetJobLikesParams struct {
	JobID  uuid.UUID
	UserID uuid.UUID
}

type GetJobLikesRow struct {
	Count int64
	Liked bool
}

func (q *Queries) GetJobLikes(ctx context.Context, arg GetJobLikesParams) (GetJobLikesRow, error) {
	row := q.db.QueryRowContext(ctx, getJobLikes, arg.JobID, arg.UserID)
	var i GetJobLikesRow
	err := row.Scan(&i.Count, &i.Liked)
	return i, err
}
