package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/atcampus/internal/database"
)

type createSchoolRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=200"`
	Location string `json:"location" binding:"max=200"`
}

type createFacultyRequest struct {
	Name string `json:"name" binding:"required,notblank,max=200"`
}

// GET /api/schools
func (s *Server) ListSchools(c *gin.Context) {
	schools, err := s.store.ListSchools(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]schoolResponse, 0, len(schools))
	for _, school := range schools {
		out = append(out, toSchool(school))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// POST /api/schools
func (s *Server) CreateSchool(c *gin.Context) {
	var req createSchoolRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	school, err := s.store.CreateSchool(c.Request.Context(), database.CreateSchoolParams{
		OwnerID:  currentUser(c).ID,
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSchool(school))
}

// GET /api/schools/:id/faculties
func (s *Server) ListFaculties(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := s.store.GetSchool(ctx, id); err != nil {
		s.fail(c, err)
		return
	}
	faculties, err := s.store.ListFaculties(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]facultyResponse, 0, len(faculties))
	for _, f := range faculties {
		out = append(out, toFaculty(f))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// POST /api/schools/:id/faculties
func (s *Server) CreateFaculty(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req createFacultyRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	school, err := s.store.GetSchool(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if school.OwnerID != currentUser(c).ID {
		s.fail(c, errForbidden)
		return
	}
	faculty, err := s.store.CreateFaculty(ctx, database.CreateFacultyParams{SchoolID: school.ID, Name: strings.TrimSpace(req.Name)})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFaculty(faculty))
}
