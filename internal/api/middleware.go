package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/auth"
	"github.com/muhammadolammi/atcampus/internal/database"
)

const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "requestID"
	SessionCookie   = "atcampus_session"

	userKey  = "user"
	tokenKey = "sessionToken"
)

// RequestID reuses the caller's request id or generates one, and echoes it
// back in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// RequireAuth resolves the session to a user or aborts with 401.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abort(c, errUnauthorized)
			return
		}
		userID, err := s.sessions.Lookup(c.Request.Context(), token)
		if errors.Is(err, auth.ErrSessionNotFound) {
			abort(c, errUnauthorized)
			return
		}
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		user, err := s.store.GetUserByID(c.Request.Context(), userID)
		if database.IsNotFound(err) {
			abort(c, errUnauthorized)
			return
		}
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the current user has one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abort(c, errForbidden)
	}
}

func currentUser(c *gin.Context) database.User {
	user, _ := c.Get(userKey)
	u, _ := user.(database.User)
	return u
}
