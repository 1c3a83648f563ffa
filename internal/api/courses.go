package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

type createCourseRequest struct {
	Code        string `json:"code" binding:"required,notblank,max=30"`
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"max=5000"`
	FacultyID   string `json:"faculty_id" binding:"omitempty,uuid"`
}

func courseID(c database.Course) uuid.UUID { return c.ID }

// GET /api/courses?cursor=&limit=
func (s *Server) ListCourses(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListCourses(c.Request.Context(), database.ListCoursesParams{Cursor: page.Cursor, Limit: page.Fetch()})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(pagination.Build(rows, page.Limit, courseID), toCourse))
}

// POST /api/courses
func (s *Server) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	params := database.CreateCourseParams{
		InstructorID: currentUser(c).ID,
		Code:         strings.TrimSpace(req.Code),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
	}
	if req.FacultyID != "" {
		params.FacultyID = validUUID(uuid.MustParse(req.FacultyID))
	}
	course, err := s.store.CreateCourse(c.Request.Context(), params)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCourse(course))
}

func (s *Server) loadCourse(c *gin.Context) (database.Course, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return database.Course{}, err
	}
	return s.store.GetCourse(c.Request.Context(), id)
}

// GET /api/courses/:id
func (s *Server) GetCourse(c *gin.Context) {
	course, err := s.loadCourse(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourse(course))
}

// Enroll adds the student to a course and tells the instructor.
// POST /api/courses/:id/enroll
func (s *Server) Enroll(c *gin.Context) {
	me := currentUser(c)
	course, err := s.loadCourse(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	out := &outbox{}
	var inserted int64
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		inserted, err = q.CreateEnrollment(ctx, database.CreateEnrollmentParams{StudentID: me.ID, CourseID: course.ID})
		if err != nil || inserted == 0 {
			return err
		}
		return out.notify(ctx, q, course.InstructorID, me.ID, NotifyEnrollment, course.ID,
			fmt.Sprintf("%s enrolled in %s", me.Name, course.Code))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if inserted == 0 {
		s.fail(c, conflict("Already enrolled"))
		return
	}
	s.flush(c, out)
	c.JSON(http.StatusCreated, gin.H{"course_id": course.ID, "enrolled": true})
}

// DELETE /api/courses/:id/enroll
func (s *Server) Unenroll(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	removed, err := s.store.DeleteEnrollment(c.Request.Context(), database.DeleteEnrollmentParams{StudentID: currentUser(c).ID, CourseID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	if removed == 0 {
		s.fail(c, errNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course_id": id, "enrolled": false})
}
