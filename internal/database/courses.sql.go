package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createCourse = `-- name: CreateCourse :one
INSERT INTO courses (instructor_id, faculty_id, code, title, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, instructor_id, faculty_id, code, title, description, created_at
`

type CreateCourseParams struct {
	InstructorID uuid.UUID
	FacultyID    uuid.NullUUID
	Code         string
	Title        string
	Description  string
}

func (q *Queries) CreateCourse(ctx context.Context, arg CreateCourseParams) (Course, error) {
	row := q.db.QueryRowContext(ctx, createCourse,
		arg.InstructorID,
		arg.FacultyID,
		arg.Code,
		arg.Title,
		arg.Description,
	)
	var i Course
	err := row.Scan(
		&i.ID,
		&i.InstructorID,
		&i.FacultyID,
		&i.Code,
		&i.Title,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const getCourse = `-- name: GetCourse :one
SELECT id, instructor_id, faculty_id, code, title, description, created_at FROM courses WHERE id = $1
`

func (q *Queries) GetCourse(ctx context.Context, id uuid.UUID) (Course, error) {
	row := q.db.QueryRowContext(ctx, getCourse, id)
	var i Course
	err := row.Scan(
		&i.ID,
		&i.InstructorID,
		&i.FacultyID,
		&i.Code,
		&i.Title,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const listCourses = `-- name: ListCourses :many
SELECT id, instructor_id, faculty_id, code, title, description, created_at FROM courses
WHERE ($1::uuid IS NULL OR (created_at, id) <= (SELECT created_at, id FROM courses WHERE id = $1))
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListCoursesParams struct {
	Cursor uuid.NullUUID
	Limit  int32
}

func (q *Queries) ListCourses(ctx context.Context, arg ListCoursesParams) ([]Course, error) {
	rows, err := q.db.QueryContext(ctx, listCourses, arg.Cursor, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Course
	for rows.Next() {
		var i Course
		if err := rows.Scan(
			&i.ID,
			&i.InstructorID,
			&i.FacultyID,
			&i.Code,
			&i.Title,
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

const countCoursesByIDs = `-- name: CountCoursesByIDs :one
SELECT count(*) FROM courses WHERE id = ANY($1::uuid[])
`

func (q *Queries) CountCoursesByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCoursesByIDs, pq.Array(uuidStrings(ids)))
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createEnrollment = `-- name: CreateEnrollment :execrows
INSERT INTO enrollments (student_id, course_id)
VALUES ($1, $2)
ON CONFLICT (student_id, course_id) DO NOTHING
`

type CreateEnrollmentParams struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
}

func (q *Queries) CreateEnrollment(ctx context.Context, arg CreateEnrollmentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createEnrollment, arg.StudentID, arg.CourseID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteEnrollment = `-- name: DeleteEnrollment :execrows
DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2
`

type DeleteEnrollmentParams struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
}

func (q *Queries) DeleteEnrollment(ctx context.Context, arg DeleteEnrollmentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEnrollment, arg.StudentID, arg.CourseID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listEnrolledCourseIDs = `-- name: ListEnrolledCourseIDs :many
SELECT course_id FROM enrollments WHERE student_id = $1
`

func (q *Queries) ListEnrolledCourseIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := q.db.QueryContext(ctx, listEnrolledCourseIDs, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []uuid.UUID
	for rows.Next() {
		var courseID uuid.UUID
		if err := rows.Scan(&courseID); err != nil {
			return nil, err
		}
		items = append(items, courseID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
