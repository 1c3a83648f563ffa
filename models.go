package main

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
)

// ScreeningStore is the slice of the database the worker needs.
type ScreeningStore interface {
	GetScreeningTarget(ctx context.Context, applicationID uuid.UUID) (database.ScreeningTarget, error)
	UpdateScreeningStatus(ctx context.Context, arg database.UpdateScreeningStatusParams) error
	SaveScreeningResult(ctx context.Context, arg database.SaveScreeningResultParams) error
}

type ResumeFetcher interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type UpdatePublisher interface {
	PublishApplicationUpdate(ctx context.Context, update events.ApplicationUpdate) error
}

// Analyzer sends one prompt to the screening agent and returns its final
// text response.
type Analyzer interface {
	Analyze(ctx context.Context, userID, sessionID, message string) (string, error)
}

type WorkerConfig struct {
	DB        ScreeningStore
	Resumes   ResumeFetcher
	Updates   UpdatePublisher
	Agent     Analyzer
	Logger    *zap.Logger
	NumWorker int
}

// ScreeningResult is what the agent returns for one resume.
type ScreeningResult struct {
	MatchScore     int      `json:"match_score"`
	RelevantSkills []string `json:"relevant_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
}
