package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/matching"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
}

// toUser hides the email unless the viewer is the user.
func toUser(u database.User, viewer uuid.UUID) userResponse {
	r := userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Bio:       u.Bio,
		IsPrivate: u.IsPrivate,
		CreatedAt: u.CreatedAt,
	}
	if u.ID == viewer {
		r.Email = u.Email
	}
	return r
}

type followUserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	FollowedAt time.Time `json:"followed_at"`
}

func toFollowUser(r database.FollowUserRow) followUserResponse {
	return followUserResponse{ID: r.UserID, Name: r.Name, Role: r.Role, FollowedAt: r.CreatedAt}
}

type followRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`
	TargetID    uuid.UUID `json:"target_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toFollowRequest(r database.FollowRequest) followRequestResponse {
	return followRequestResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		TargetID:    r.TargetID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

type postResponse struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	Liked        bool      `json:"liked"`
	Bookmarked   bool      `json:"bookmarked"`
}

func toPost(p database.PostRow) postResponse {
	return postResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		AuthorName:   p.AuthorName,
		Content:      p.Content,
		ImageURL:     p.ImageUrl,
		CreatedAt:    p.CreatedAt,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		Liked:        p.Liked,
		Bookmarked:   p.Bookmarked,
	}
}

type commentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toComment(c database.Comment) commentResponse {
	return commentResponse{ID: c.ID, PostID: c.PostID, AuthorID: c.AuthorID, Content: c.Content, CreatedAt: c.CreatedAt}
}

type likesResponse struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

type jobResponse struct {
	ID                uuid.UUID   `json:"id"`
	OwnerID           uuid.UUID   `json:"owner_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Location          string      `json:"location"`
	RequiredSkills    []string    `json:"required_skills"`
	RequiredCourseIDs []uuid.UUID `json:"required_course_ids"`
	CreatedAt         time.Time   `json:"created_at"`
}

func toJob(j database.Job, courseIDs []uuid.UUID) jobResponse {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if courseIDs == nil {
		courseIDs = []uuid.UUID{}
	}
	return jobResponse{
		ID:                j.ID,
		OwnerID:           j.OwnerID,
		Title:             j.Title,
		Description:       j.Description,
		Location:          j.Location,
		RequiredSkills:    j.RequiredSkills,
		RequiredCourseIDs: courseIDs,
		CreatedAt:         j.CreatedAt,
	}
}

type matchResponse struct {
	JobID uuid.UUID `json:"job_id"`
	matching.Result
}

type recommendedJobResponse struct {
	Job   jobResponse     `json:"job"`
	Match matching.Result `json:"match"`
}

type applicationResponse struct {
	ID              uuid.UUID       `json:"id"`
	JobID           uuid.UUID       `json:"job_id"`
	StudentID       uuid.UUID       `json:"student_id"`
	CoverLetter     string          `json:"cover_letter"`
	Status          string          `json:"status"`
	HasResume       bool            `json:"has_resume"`
	ScreeningStatus string          `json:"screening_status"`
	ScreeningResult json.RawMessage `json:"screening_result"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toApplication(a database.Application) applicationResponse {
	result := a.ScreeningResult
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return applicationResponse{
		ID:              a.ID,
		JobID:           a.JobID,
		StudentID:       a.StudentID,
		CoverLetter:     a.CoverLetter,
		Status:          a.Status,
		HasResume:       a.ResumeKey != "",
		ScreeningStatus: a.ScreeningStatus,
		ScreeningResult: result,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

type applicantResponse struct {
	Application     applicationResponse `json:"application"`
	ApplicantName   string              `json:"applicant_name"`
	MatchPercentage float64             `json:"match_percentage"`
}

type courseResponse struct {
	ID           uuid.UUID  `json:"id"`
	InstructorID uuid.UUID  `json:"instructor_id"`
	FacultyID    *uuid.UUID `json:"faculty_id"`
	Code         string     `json:"code"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toCourse(c database.Course) courseResponse {
	return courseResponse{
		ID:           c.ID,
		InstructorID: c.InstructorID,
		FacultyID:    nullable(c.FacultyID),
		Code:         c.Code,
		Title:        c.Title,
		Description:  c.Description,
		CreatedAt:    c.CreatedAt,
	}
}

type researchResponse struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toResearch(r database.Research) researchResponse {
	return researchResponse{ID: r.ID, AuthorID: r.AuthorID, Title: r.Title, Abstract: r.Abstract, URL: r.Url, CreatedAt: r.CreatedAt}
}

type organizationResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toOrganization(o database.Organization) organizationResponse {
	return organizationResponse{ID: o.ID, OwnerID: o.OwnerID, Name: o.Name, Description: o.Description, CreatedAt: o.CreatedAt}
}

type memberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func toMember(m database.MemberRow) memberResponse {
	return memberResponse{UserID: m.UserID, Name: m.Name, Role: m.Role, JoinedAt: m.JoinedAt}
}

type schoolResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

func toSchool(s database.School) schoolResponse {
	return schoolResponse{ID: s.ID, OwnerID: s.OwnerID, Name: s.Name, Location: s.Location, CreatedAt: s.CreatedAt}
}

type facultyResponse struct {
	ID        uuid.UUID `json:"id"`
	SchoolID  uuid.UUID `json:"school_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toFaculty(f database.Faculty) facultyResponse {
	return facultyResponse{ID: f.ID, SchoolID: f.SchoolID, Name: f.Name, CreatedAt: f.CreatedAt}
}

type notificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	ActorID   *uuid.UUID `json:"actor_id"`
	Type      string     `json:"type"`
	EntityID  *uuid.UUID `json:"entity_id"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

func toNotification(n database.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		ActorID:   nullable(n.ActorID),
		Type:      n.Type,
		EntityID:  nullable(n.EntityID),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func nullable(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func validUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}
