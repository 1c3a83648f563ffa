package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/atcampus/internal/auth"
	"github.com/muhammadolammi/atcampus/internal/database"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"required,oneof=student professor institution organization"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account and signs it in.
// POST /api/auth/register
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		s.fail(c, invalidField("password", err.Error()))
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), database.CreateUserParams{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
	})
	if database.IsUniqueViolation(err) {
		s.fail(c, conflict("Email already registered"))
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	s.startSession(c, http.StatusCreated, user)
}

// Login exchanges credentials for a session.
// POST /api/auth/login
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if database.IsNotFound(err) || (err == nil && !auth.CheckPassword(req.Password, user.PasswordHash)) {
		s.fail(c, &apiError{Status: http.StatusUnauthorized, Message: "Invalid email or password"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	s.startSession(c, http.StatusOK, user)
}

func (s *Server) startSession(c *gin.Context, status int, user database.User) {
	token, err := s.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.sessionTTL.Seconds()), "/", "", s.cookieSecure, true)
	c.JSON(status, sessionResponse{User: toUser(user, user.ID), Token: token})
}

// POST /api/auth/logout
func (s *Server) Logout(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		s.fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/auth/me
func (s *Server) Me(c *gin.Context) {
	user := currentUser(c)
	skills, err := s.store.ListUserSkills(c.Request.Context(), user.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if skills == nil {
		skills = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"user": toUser(user, user.ID), "skills": skills})
}
