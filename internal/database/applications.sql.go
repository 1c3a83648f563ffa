package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const applicationColumns = `id, job_id, student_id, cover_letter, status, resume_key, resume_mime, screening_status, COALESCE(screening_result, 'null'::jsonb), created_at, updated_at`

const createApplication = `-- name: CreateApplication :one
INSERT INTO applications (job_id, student_id, cover_letter)
VALUES ($1, $2, $3)
RETURNING ` + applicationColumns + `
`

type CreateApplicationParams struct {
	JobID       uuid.UUID
	StudentID   uuid.UUID
	CoverLetter string
}

func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) (Application, error) {
	row := q.db.QueryRowContext(ctx, createApplication, arg.JobID, arg.StudentID, arg.CoverLetter)
	return scanApplication(row)
}

const getApplication = `-- name: GetApplication :one
SELECT ` + applicationColumns + ` FROM applications WHERE id = $1
`

func (q *Queries) GetApplication(ctx context.Context, id uuid.UUID) (Application, error) {
	row := q.db.QueryRowContext(ctx, getApplication, id)
	return scanApplication(row)
}

const setApplicationResume = `-- name: SetApplicationResume :exec
UPDATE applications
SET resume_key = $1, resume_mime = $2, screening_status = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $4
`

type SetApplicationResumeParams struct {
	ResumeKey       string
	ResumeMime      string
	ScreeningStatus string
	ID              uuid.UUID
}

func (q *Queries) SetApplicationResume(ctx context.Context, arg SetApplicationResumeParams) error {
	_, err := q.db.ExecContext(ctx, setApplicationResume, arg.ResumeKey, arg.ResumeMime, arg.ScreeningStatus, arg.ID)
	return err
}

const listApplicationsByJob = `-- name: ListApplicationsByJob :many
SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at DESC
`

func (q *Queries) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	return q.listApplications(ctx, listApplicationsByJob, jobID)
}

const listApplicationsByStudent = `-- name: ListApplicationsByStudent :many
SELECT ` + applicationColumns + ` FROM applications WHERE student_id = $1 ORDER BY created_at DESC
`

func (q *Queries) ListApplicationsByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error) {
	return q.listApplications(ctx, listApplicationsByStudent, studentID)
}

func (q *Queries) listApplications(ctx context.Context, query string, id uuid.UUID) ([]Application, error) {
	rows, err := q.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Application
	for rows.Next() {
		i, err := scanApplication(rows)
		if err != nil {
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

const updateApplicationStatus = `-- name: UpdateApplicationStatus :one
UPDATE applications
SET status = $1, updated_at = CURRENT_TIMESTAMP
WHERE id = $2
RETURNING ` + applicationColumns + `
`

type UpdateApplicationStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateApplicationStatus(ctx context.Context, arg UpdateApplicationStatusParams) (Application, error) {
	row := q.db.QueryRowContext(ctx, updateApplicationStatus, arg.Status, arg.ID)
	return scanApplication(row)
}

const updateScreeningStatus = `-- name: UpdateScreeningStatus :exec
UPDATE applications
SET screening_status = $1, updated_at = CURRENT_TIMESTAMP
WHERE id = $2
`

type UpdateScreeningStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateScreeningStatus(ctx context.Context, arg UpdateScreeningStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateScreeningStatus, arg.Status, arg.ID)
	return err
}

const saveScreeningResult = `-- name: SaveScreeningResult :exec
UPDATE applications
SET screening_result = $1, updated_at = CURRENT_TIMESTAMP
WHERE id = $2
`

type SaveScreeningResultParams struct {
	Result json.RawMessage
	ID     uuid.UUID
}

func (q *Queries) SaveScreeningResult(ctx context.Context, arg SaveScreeningResultParams) error {
	_, err := q.db.ExecContext(ctx, saveScreeningResult, []byte(arg.Result), arg.ID)
	return err
}

const getScreeningTarget = `-- name: GetScreeningTarget :one
SELECT a.id, a.student_id, a.resume_key, a.resume_mime, j.title, j.description, j.required_skills
FROM applications a
JOIN jobs j ON j.id = a.job_id
WHERE a.id = $1
`

type ScreeningTarget struct {
	ApplicationID  uuid.UUID
	StudentID      uuid.UUID
	ResumeKey      string
	ResumeMime     string
	JobTitle       string
	JobDescription string
	RequiredSkills []string
}

func (q *Queries) GetScreeningTarget(ctx context.Context, applicationID uuid.UUID) (ScreeningTarget, error) {
	row := q.db.QueryRowContext(ctx, getScreeningTarget, applicationID)
	var i ScreeningTarget
	err := row.Scan(
		&i.ApplicationID,
		&i.StudentID,
		&i.ResumeKey,
		&i.ResumeMime,
		&i.JobTitle,
		&i.JobDescription,
		pq.Array(&i.RequiredSkills),
	)
	return i, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (Application, error) {
	var i Application
	var result []byte
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.StudentID,
		&i.CoverLetter,
		&i.Status,
		&i.ResumeKey,
		&i.ResumeMime,
		&i.ScreeningStatus,
		&result,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	i.ScreeningResult = json.RawMessage(result)
	return i, err
}
