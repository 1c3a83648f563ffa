package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
	"github.com/muhammadolammi/atcampus/internal/matching"
	"github.com/muhammadolammi/atcampus/internal/storage"
)

const resumeField = "resume"

const (
	screeningNone   = "none"
	screeningQueued = "queued"
)

type applyRequest struct {
	CoverLetter string `json:"cover_letter" form:"cover_letter" binding:"max=5000"`
}

type applicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
}

type resumeUpload struct {
	key  string
	mime string
}

// resumeMime resolves the upload's mime type, falling back to the file
// extension when the client sent a generic one.
func resumeMime(header string, filename string) string {
	mime := strings.TrimSpace(strings.SplitN(header, ";", 2)[0])
	if storage.SupportedMime(mime) {
		return mime
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return storage.MimePDF
	case ".docx":
		return storage.MimeDocx
	case ".txt":
		return storage.MimeText
	}
	return mime
}

// readResume validates the optional resume part of a multipart apply and
// uploads it. It returns nil when no resume was sent.
func (s *Server) readResume(c *gin.Context, job database.Job, student uuid.UUID) (*resumeUpload, error) {
	file, err := c.FormFile(resumeField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, invalidField(resumeField, "is invalid")
	}
	if s.bucket == nil {
		return nil, &apiError{Status: http.StatusServiceUnavailable, Message: "Resume uploads are unavailable"}
	}
	if file.Size > storage.MaxResumeBytes {
		return nil, invalidField(resumeField, "must be at most 5 MiB")
	}
	mime := resumeMime(file.Header.Get("Content-Type"), file.Filename)
	if !storage.SupportedMime(mime) {
		return nil, invalidField(resumeField, "must be a PDF, DOCX or plain text file")
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open resume: %w", err)
	}
	defer f.Close()
	body, err := io.ReadAll(io.LimitReader(f, storage.MaxResumeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if len(body) > storage.MaxResumeBytes {
		return nil, invalidField(resumeField, "must be at most 5 MiB")
	}

	key := storage.ResumeKey(job.ID, student, file.Filename)
	if err := s.bucket.Upload(c.Request.Context(), key, mime, body); err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	return &resumeUpload{key: key, mime: mime}, nil
}

// Apply creates the student's application for a job, optionally with a
// resume, and notifies the job owner. Applications with a resume are queued
// for screening once committed.
// POST /api/jobs/:id/apply
func (s *Server) Apply(c *gin.Context) {
	me := currentUser(c)
	job, _, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	var req applyRequest
	multipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")
	if multipart {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxResumeBytes+1<<20)
		if err := c.ShouldBind(&req); err != nil {
			s.fail(c, validationError(err))
			return
		}
	} else if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, err)
			return
		}
	}

	existing, err := s.store.ListApplicationsByStudent(ctx, me.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	for _, a := range existing {
		if a.JobID == job.ID {
			s.fail(c, conflict("Already applied"))
			return
		}
	}

	var resume *resumeUpload
	if multipart {
		if resume, err = s.readResume(c, job, me.ID); err != nil {
			s.fail(c, err)
			return
		}
	}

	var app database.Application
	out := &outbox{}
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		app, err = q.CreateApplication(ctx, database.CreateApplicationParams{
			JobID:       job.ID,
			StudentID:   me.ID,
			CoverLetter: strings.TrimSpace(req.CoverLetter),
		})
		if err != nil {
			return err
		}
		if resume != nil {
			status := screeningNone
			if s.screening {
				status = screeningQueued
			}
			if err := q.SetApplicationResume(ctx, database.SetApplicationResumeParams{
				ResumeKey:       resume.key,
				ResumeMime:      resume.mime,
				ScreeningStatus: status,
				ID:              app.ID,
			}); err != nil {
				return err
			}
			app.ResumeKey, app.ResumeMime, app.ScreeningStatus = resume.key, resume.mime, status
		}
		return out.notify(ctx, q, job.OwnerID, me.ID, NotifyApplication, app.ID,
			fmt.Sprintf("%s applied to %q", me.Name, job.Title))
	})
	if database.IsUniqueViolation(err) {
		s.fail(c, conflict("Already applied"))
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)

	if resume != nil && s.screening {
		if err := s.events.QueueScreening(ctx, events.ApplicationMessage{ApplicationID: app.ID}); err != nil {
			s.logger.Warn("failed to queue screening",
				zap.Error(err),
				zap.String("application_id", app.ID.String()),
				zap.String("request_id", c.GetString(RequestIDKey)),
			)
		}
	}
	c.JSON(http.StatusCreated, toApplication(app))
}

// ListJobApplications lists a job's applicants with their match against it.
// GET /api/jobs/:id/applications
func (s *Server) ListJobApplications(c *gin.Context) {
	job, courses, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if job.OwnerID != currentUser(c).ID {
		s.fail(c, errForbidden)
		return
	}
	ctx := c.Request.Context()
	apps, err := s.store.ListApplicationsByJob(ctx, job.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	req := matching.Requirements{Skills: job.RequiredSkills, CourseIDs: courses}
	out := make([]applicantResponse, 0, len(apps))
	for _, a := range apps {
		student, err := s.store.GetUserByID(ctx, a.StudentID)
		if err != nil {
			s.fail(c, err)
			return
		}
		profile, err := s.studentProfile(ctx, a.StudentID)
		if err != nil {
			s.fail(c, err)
			return
		}
		out = append(out, applicantResponse{
			Application:     toApplication(a),
			ApplicantName:   student.Name,
			MatchPercentage: matching.Calculate(req, profile).MatchPercentage,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// GET /api/applications
func (s *Server) ListMyApplications(c *gin.Context) {
	apps, err := s.store.ListApplicationsByStudent(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplication(a))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// UpdateApplicationStatus lets the job owner move an application through
// review and tells the applicant.
// PATCH /api/applications/:id
func (s *Server) UpdateApplicationStatus(c *gin.Context) {
	me := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req applicationStatusRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	job, err := s.store.GetJob(ctx, app.JobID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if job.OwnerID != me.ID {
		s.fail(c, errForbidden)
		return
	}

	out := &outbox{}
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		app, err = q.UpdateApplicationStatus(ctx, database.UpdateApplicationStatusParams{Status: req.Status, ID: app.ID})
		if err != nil {
			return err
		}
		return out.notify(ctx, q, app.StudentID, me.ID, NotifyApplicationStatus, app.ID,
			fmt.Sprintf("Your application to %q is now %s", job.Title, req.Status))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)

	update := events.ApplicationUpdate{
		ApplicationID: app.ID,
		Status:        app.Status,
		Message:       "application status changed",
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.PublishApplicationUpdate(ctx, update); err != nil {
		s.logger.Warn("failed to publish application update", zap.Error(err), zap.String("application_id", app.ID.String()))
	}
	c.JSON(http.StatusOK, toApplication(app))
}
