package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

type createResearchRequest struct {
	Title    string `json:"title" binding:"required,notblank,max=300"`
	Abstract string `json:"abstract" binding:"required,notblank,max=10000"`
	URL      string `json:"url" binding:"omitempty,url,max=2048"`
}

// GET /api/researches?cursor=&limit=
func (s *Server) ListResearches(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListResearches(c.Request.Context(), database.ListResearchesParams{Cursor: page.Cursor, Limit: page.Fetch()})
	if err != nil {
		s.fail(c, err)
		return
	}
	result := pagination.Build(rows, page.Limit, func(r database.Research) uuid.UUID { return r.ID })
	c.JSON(http.StatusOK, pagination.Map(result, toResearch))
}

// POST /api/researches
func (s *Server) CreateResearch(c *gin.Context) {
	var req createResearchRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	research, err := s.store.CreateResearch(c.Request.Context(), database.CreateResearchParams{
		AuthorID: currentUser(c).ID,
		Title:    strings.TrimSpace(req.Title),
		Abstract: strings.TrimSpace(req.Abstract),
		Url:      req.URL,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResearch(research))
}
