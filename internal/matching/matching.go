// Package matching scores how well a student's skills and enrollments line up
// with a job's declared requirements.
package matching

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SkillWeight  = 0.7
	CourseWeight = 0.3
)

type Requirements struct {
	Skills    []string
	CourseIDs []uuid.UUID
}

type Profile struct {
	Skills            []string
	EnrolledCourseIDs []uuid.UUID
}

type Result struct {
	SkillMatchPercentage  float64  `json:"skill_match_percentage"`
	CourseMatchPercentage float64  `json:"course_match_percentage"`
	MatchPercentage       float64  `json:"match_percentage"`
	MatchedSkills         []string `json:"matched_skills"`
	MissingSkills         []string `json:"missing_skills"`
}

// Calculate compares skill names case-insensitively and course ids exactly.
// Each percentage is 0 when the job requires nothing of that kind.
func Calculate(req Requirements, p Profile) Result {
	have := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		have[normalize(s)] = struct{}{}
	}

	res := Result{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
	for _, s := range req.Skills {
		if _, ok := have[normalize(s)]; ok {
			res.MatchedSkills = append(res.MatchedSkills, s)
		} else {
			res.MissingSkills = append(res.MissingSkills, s)
		}
	}
	res.SkillMatchPercentage = percentage(len(res.MatchedSkills), len(req.Skills))

	enrolled := make(map[uuid.UUID]struct{}, len(p.EnrolledCourseIDs))
	for _, id := range p.EnrolledCourseIDs {
		enrolled[id] = struct{}{}
	}
	matchedCourses := 0
	for _, id := range req.CourseIDs {
		if _, ok := enrolled[id]; ok {
			matchedCourses++
		}
	}
	res.CourseMatchPercentage = percentage(matchedCourses, len(req.CourseIDs))

	res.MatchPercentage = SkillWeight*res.SkillMatchPercentage + CourseWeight*res.CourseMatchPercentage
	return res
}

func percentage(matched, required int) float64 {
	if required == 0 {
		return 0
	}
	return 100 * float64(matched) / float64(required)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Candidate is one job considered for ranking.
type Candidate struct {
	JobID     uuid.UUID
	CreatedAt time.Time
	Result    Result
}

// Rank orders candidates by match percentage, highest first. Equal scores
// keep the newer job first.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Result.MatchPercentage != b.Result.MatchPercentage {
			return a.Result.MatchPercentage > b.Result.MatchPercentage
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
