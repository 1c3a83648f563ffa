package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

type apiError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *apiError) Error() string {
	return e.Message
}

var (
	errUnauthorized = &apiError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	errForbidden    = &apiError{Status: http.StatusForbidden, Message: "Forbidden"}
	errNotFound     = &apiError{Status: http.StatusNotFound, Message: "Not found"}
)

func badRequest(msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Message: msg}
}

func conflict(msg string) *apiError {
	return &apiError{Status: http.StatusConflict, Message: msg}
}

func invalidField(field, msg string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  map[string]string{field: msg},
	}
}

func (e *apiError) body() gin.H {
	h := gin.H{"error": e.Message}
	if len(e.Fields) > 0 {
		h["fields"] = e.Fields
	}
	return h
}

func abort(c *gin.Context, e *apiError) {
	c.AbortWithStatusJSON(e.Status, e.body())
}

// fail writes the response for err. Anything that is not a known client
// error is logged and reported as a 500.
func (s *Server) fail(c *gin.Context, err error) {
	var apiErr *apiError
	switch {
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, apiErr.body())
	case database.IsNotFound(err):
		c.JSON(http.StatusNotFound, errNotFound.body())
	case database.IsUniqueViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case database.IsForeignKeyViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced record does not exist"})
	case errors.Is(err, pagination.ErrInvalidCursor), errors.Is(err, pagination.ErrInvalidLimit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		s.logger.Error("internal error",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the body into dst and turns binding failures into field
// errors keyed by json name.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest("Invalid request body")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &apiError{Status: http.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s %s", fe.Param(), unit(fe))
	case "max":
		return fmt.Sprintf("must be at most %s %s", fe.Param(), unit(fe))
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}

func unit(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return "items"
	default:
		return "characters"
	}
}

var registerTagName sync.Once

// useJSONFieldNames makes validation errors report json names instead of Go
// field names, and adds the notblank tag for text that must not be only
// whitespace.
func useJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errNotFound
	}
	return id, nil
}

func pageRequest(c *gin.Context) (pagination.Request, error) {
	return pagination.Parse(c.Query("cursor"), c.Query("limit"))
}
