package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Bio          string
	IsPrivate    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Follow struct {
	ID          uuid.UUID
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
	CreatedAt   time.Time
}

type FollowRequest struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	TargetID    uuid.UUID
	Status      string
	CreatedAt   time.Time
}

type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	ActorID     uuid.NullUUID
	Type        string
	EntityID    uuid.NullUUID
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}

type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	ImageUrl  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time
}

type Research struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Title     string
	Abstract  string
	Url       string
	CreatedAt time.Time
}

type School struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Location  string
	CreatedAt time.Time
}

type Faculty struct {
	ID        uuid.UUID
	SchoolID  uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Course struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	FacultyID    uuid.NullUUID
	Code         string
	Title        string
	Description  string
	CreatedAt    time.Time
}

type Organization struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

type Member struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
	CreatedAt      time.Time
}

type Job struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Title          string
	Description    string
	Location       string
	RequiredSkills []string
	CreatedAt      time.Time
}

type JobCourse struct {
	JobID    uuid.UUID
	CourseID uuid.UUID
}

type Application struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	StudentID       uuid.UUID
	CoverLetter     string
	Status          string
	ResumeKey       string
	ResumeMime      string
	ScreeningStatus string
	ScreeningResult json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
