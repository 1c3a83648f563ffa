package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/matching"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

// recommendationPool is how many recent jobs are scored for recommendations.
const recommendationPool = 200

type createJobRequest struct {
	Title             string   `json:"title" binding:"required,notblank,max=200"`
	Description       string   `json:"description" binding:"required,notblank,max=10000"`
	Location          string   `json:"location" binding:"max=200"`
	RequiredSkills    []string `json:"required_skills" binding:"max=50,dive,max=60"`
	RequiredCourseIDs []string `json:"required_course_ids" binding:"max=20,dive,uuid"`
}

func jobID(j database.Job) uuid.UUID { return j.ID }

// jobCourseIndex groups required course ids by job.
func (s *Server) jobCourseIndex(ctx context.Context, jobs []database.Job) (map[uuid.UUID][]uuid.UUID, error) {
	index := make(map[uuid.UUID][]uuid.UUID, len(jobs))
	if len(jobs) == 0 {
		return index, nil
	}
	ids := make([]uuid.UUID, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	rows, err := s.store.ListJobCourses(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		index[r.JobID] = append(index[r.JobID], r.CourseID)
	}
	return index, nil
}

// GET /api/jobs?cursor=&limit=
func (s *Server) ListJobs(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	rows, err := s.store.ListJobs(ctx, database.ListJobsParams{Cursor: page.Cursor, Limit: page.Fetch()})
	if err != nil {
		s.fail(c, err)
		return
	}
	result := pagination.Build(rows, page.Limit, jobID)
	courses, err := s.jobCourseIndex(ctx, result.Items)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(result, func(j database.Job) jobResponse {
		return toJob(j, courses[j.ID])
	}))
}

// POST /api/jobs
func (s *Server) CreateJob(c *gin.Context) {
	me := currentUser(c)
	var req createJobRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	courseIDs := uniqueIDs(req.RequiredCourseIDs)
	if len(courseIDs) > 0 {
		found, err := s.store.CountCoursesByIDs(ctx, courseIDs)
		if err != nil {
			s.fail(c, err)
			return
		}
		if found != int64(len(courseIDs)) {
			s.fail(c, invalidField("required_course_ids", "contains unknown courses"))
			return
		}
	}

	var job database.Job
	err := s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		job, err = q.CreateJob(ctx, database.CreateJobParams{
			OwnerID:        me.ID,
			Title:          strings.TrimSpace(req.Title),
			Description:    strings.TrimSpace(req.Description),
			Location:       strings.TrimSpace(req.Location),
			RequiredSkills: normalizeSkills(req.RequiredSkills),
		})
		if err != nil {
			return err
		}
		for _, courseID := range courseIDs {
			if err := q.AddJobCourse(ctx, database.AddJobCourseParams{JobID: job.ID, CourseID: courseID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toJob(job, courseIDs))
}

// uniqueIDs parses already validated ids, dropping duplicates.
func uniqueIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	var out []uuid.UUID
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *Server) loadJob(c *gin.Context) (database.Job, []uuid.UUID, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return database.Job{}, nil, err
	}
	ctx := c.Request.Context()
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return database.Job{}, nil, err
	}
	courses, err := s.jobCourseIndex(ctx, []database.Job{job})
	if err != nil {
		return database.Job{}, nil, err
	}
	return job, courses[job.ID], nil
}

// GET /api/jobs/:id
func (s *Server) GetJob(c *gin.Context) {
	job, courses, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(job, courses))
}

// DELETE /api/jobs/:id
func (s *Server) DeleteJob(c *gin.Context) {
	job, _, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if job.OwnerID != currentUser(c).ID {
		s.fail(c, errForbidden)
		return
	}
	if err := s.store.DeleteJob(c.Request.Context(), job.ID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (s *Server) jobLikes(c *gin.Context, job database.Job) {
	likes, err := s.store.GetJobLikes(c.Request.Context(), database.GetJobLikesParams{JobID: job.ID, UserID: currentUser(c).ID})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likesResponse{Count: likes.Count, Liked: likes.Liked})
}

// GET /api/jobs/:id/likes
func (s *Server) GetJobLikes(c *gin.Context) {
	job, _, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.jobLikes(c, job)
}

// POST /api/jobs/:id/likes
func (s *Server) LikeJob(c *gin.Context) {
	me := currentUser(c)
	job, _, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	out := &outbox{}
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		inserted, err := q.LikeJob(ctx, database.LikeJobParams{UserID: me.ID, JobID: job.ID})
		if err != nil || inserted == 0 {
			return err
		}
		return out.notify(ctx, q, job.OwnerID, me.ID, NotifyJobLike, job.ID,
			fmt.Sprintf("%s liked your job %q", me.Name, job.Title))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.flush(c, out)
	s.jobLikes(c, job)
}

// DELETE /api/jobs/:id/likes
func (s *Server) UnlikeJob(c *gin.Context) {
	job, _, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.store.UnlikeJob(c.Request.Context(), database.UnlikeJobParams{UserID: currentUser(c).ID, JobID: job.ID}); err != nil {
		s.fail(c, err)
		return
	}
	s.jobLikes(c, job)
}

func (s *Server) studentProfile(ctx context.Context, studentID uuid.UUID) (matching.Profile, error) {
	skills, err := s.store.ListUserSkills(ctx, studentID)
	if err != nil {
		return matching.Profile{}, err
	}
	enrolled, err := s.store.ListEnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return matching.Profile{}, err
	}
	return matching.Profile{Skills: skills, EnrolledCourseIDs: enrolled}, nil
}

// JobMatch scores the current student against one job.
// GET /api/jobs/:id/match
func (s *Server) JobMatch(c *gin.Context) {
	job, courses, err := s.loadJob(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	profile, err := s.studentProfile(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	result := matching.Calculate(matching.Requirements{Skills: job.RequiredSkills, CourseIDs: courses}, profile)
	c.JSON(http.StatusOK, matchResponse{JobID: job.ID, Result: result})
}

// RecommendedJobs ranks recent jobs by how well they match the student.
// GET /api/jobs/recommended?limit=
func (s *Server) RecommendedJobs(c *gin.Context) {
	page, err := pagination.Parse("", c.Query("limit"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	jobs, err := s.store.ListJobs(ctx, database.ListJobsParams{Limit: recommendationPool})
	if err != nil {
		s.fail(c, err)
		return
	}
	courses, err := s.jobCourseIndex(ctx, jobs)
	if err != nil {
		s.fail(c, err)
		return
	}
	profile, err := s.studentProfile(ctx, currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}

	byID := make(map[uuid.UUID]database.Job, len(jobs))
	candidates := make([]matching.Candidate, 0, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
		candidates = append(candidates, matching.Candidate{
			JobID:     j.ID,
			CreatedAt: j.CreatedAt,
			Result:    matching.Calculate(matching.Requirements{Skills: j.RequiredSkills, CourseIDs: courses[j.ID]}, profile),
		})
	}
	matching.Rank(candidates)
	if len(candidates) > page.Limit {
		candidates = candidates[:page.Limit]
	}

	out := make([]recommendedJobResponse, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, recommendedJobResponse{
			Job:   toJob(byID[cand.JobID], courses[cand.JobID]),
			Match: cand.Result,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
