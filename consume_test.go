package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
	"github.com/muhammadolammi/atcampus/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStore struct {
	mu       sync.Mutex
	targets  map[uuid.UUID]database.ScreeningTarget
	statuses map[uuid.UUID][]string
	results  map[uuid.UUID]json.RawMessage
	saveErr  error
}

func newFakeStore(targets ...database.ScreeningTarget) *fakeStore {
	s := &fakeStore{
		targets:  map[uuid.UUID]database.ScreeningTarget{},
		statuses: map[uuid.UUID][]string{},
		results:  map[uuid.UUID]json.RawMessage{},
	}
	for _, t := range targets {
		s.targets[t.ApplicationID] = t
	}
	return s
}

func (s *fakeStore) GetScreeningTarget(_ context.Context, id uuid.UUID) (database.ScreeningTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.targets[id]
	if !ok {
		return database.ScreeningTarget{}, errors.New("no rows")
	}
	return t, nil
}

func (s *fakeStore) UpdateScreeningStatus(_ context.Context, arg database.UpdateScreeningStatusParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[arg.ID] = append(s.statuses[arg.ID], arg.Status)
	return nil
}

func (s *fakeStore) SaveScreeningResult(_ context.Context, arg database.SaveScreeningResultParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.results[arg.ID] = arg.Result
	return nil
}

func (s *fakeStore) history(id uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statuses[id]...)
}

type fakeResumes struct {
	mu       sync.Mutex
	files    map[string][]byte
	failures int
	calls    int
}

func (r *fakeResumes) Download(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failures {
		return nil, errors.New("connection reset")
	}
	body, ok := r.files[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return body, nil
}

type fakeUpdates struct {
	mu      sync.Mutex
	updates []events.ApplicationUpdate
}

func (u *fakeUpdates) PublishApplicationUpdate(_ context.Context, update events.ApplicationUpdate) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.updates = append(u.updates, update)
	return nil
}

type fakeAgent struct {
	mu       sync.Mutex
	output   string
	err      error
	messages []string
}

func (a *fakeAgent) Analyze(_ context.Context, _, _, message string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
	return a.output, a.err
}

func newTestWorker(t *testing.T, store *fakeStore, resumes *fakeResumes, agent *fakeAgent) (*WorkerConfig, *fakeUpdates) {
	t.Helper()
	withoutBackoff(t)
	updates := &fakeUpdates{}
	return &WorkerConfig{
		DB:        store,
		Resumes:   resumes,
		Updates:   updates,
		Agent:     agent,
		Logger:    zap.NewNop(),
		NumWorker: 2,
	}, updates
}

func testTarget() database.ScreeningTarget {
	return database.ScreeningTarget{
		ApplicationID:  uuid.New(),
		StudentID:      uuid.New(),
		ResumeKey:      "resumes/job/student/cv.txt",
		ResumeMime:     storage.MimeText,
		JobTitle:       "Backend intern",
		JobDescription: "Build APIs in Go",
		RequiredSkills: []string{"Go", "SQL"},
	}
}

func messageBody(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	body, err := json.Marshal(events.ApplicationMessage{ApplicationID: id})
	require.NoError(t, err)
	return body
}

func TestHandleMessageCompletes(t *testing.T) {
	target := testTarget()
	store := newFakeStore(target)
	resumes := &fakeResumes{files: map[string][]byte{target.ResumeKey: []byte("Go and Postgres")}, failures: 2}
	agent := &fakeAgent{output: "```json\n{\"match_score\": 80, \"relevant_skills\": [\"Go\"], \"missing_skills\": [\"SQL\"], \"summary\": \"good\", \"recommendation\": \"interview\"}\n```"}
	w, updates := newTestWorker(t, store, resumes, agent)

	w.handleMessage(context.Background(), 1, messageBody(t, target.ApplicationID))

	assert.Equal(t, []string{statusProcessing, statusCompleted}, store.history(target.ApplicationID))
	assert.Equal(t, 3, resumes.calls)
	require.Len(t, agent.messages, 1)
	assert.Contains(t, agent.messages[0], "Go and Postgres")
	assert.Contains(t, agent.messages[0], "Go, SQL")

	var saved ScreeningResult
	require.NoError(t, json.Unmarshal(store.results[target.ApplicationID], &saved))
	assert.Equal(t, ScreeningResult{
		MatchScore:     80,
		RelevantSkills: []string{"Go"},
		MissingSkills:  []string{"SQL"},
		Summary:        "good",
		Recommendation: "interview",
	}, saved)

	require.Len(t, updates.updates, 2)
	assert.Equal(t, statusProcessing, updates.updates[0].Status)
	assert.Equal(t, statusCompleted, updates.updates[1].Status)
	assert.Equal(t, target.ApplicationID, updates.updates[1].ApplicationID)
}

func TestHandleMessageFailures(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*database.ScreeningTarget, *fakeResumes, *fakeAgent, *fakeStore)
	}{
		{"download keeps failing", func(_ *database.ScreeningTarget, r *fakeResumes, _ *fakeAgent, _ *fakeStore) {
			r.failures = downloadAttempts
		}},
		{"unsupported mime", func(tg *database.ScreeningTarget, _ *fakeResumes, _ *fakeAgent, _ *fakeStore) {
			tg.ResumeMime = "image/png"
		}},
		{"agent error", func(_ *database.ScreeningTarget, _ *fakeResumes, a *fakeAgent, _ *fakeStore) {
			a.err = errors.New("quota exceeded")
		}},
		{"agent returns prose", func(_ *database.ScreeningTarget, _ *fakeResumes, a *fakeAgent, _ *fakeStore) {
			a.output = "This candidate looks great."
		}},
		{"save fails", func(_ *database.ScreeningTarget, _ *fakeResumes, _ *fakeAgent, s *fakeStore) {
			s.saveErr = errors.New("db down")
		}},
		{"no resume", func(tg *database.ScreeningTarget, _ *fakeResumes, _ *fakeAgent, _ *fakeStore) {
			tg.ResumeKey = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := testTarget()
			resumes := &fakeResumes{files: map[string][]byte{target.ResumeKey: []byte("resume")}}
			agent := &fakeAgent{output: `{"match_score": 50}`}
			store := newFakeStore()
			tt.modify(&target, resumes, agent, store)
			store.targets[target.ApplicationID] = target
			w, updates := newTestWorker(t, store, resumes, agent)

			w.handleMessage(context.Background(), 1, messageBody(t, target.ApplicationID))

			assert.Equal(t, []string{statusProcessing, statusFailed}, store.history(target.ApplicationID))
			assert.NotContains(t, store.results, target.ApplicationID)
			require.Len(t, updates.updates, 2)
			assert.Equal(t, statusFailed, updates.updates[1].Status)
		})
	}
}

func TestHandleMessageDropsMalformed(t *testing.T) {
	store := newFakeStore()
	w, updates := newTestWorker(t, store, &fakeResumes{}, &fakeAgent{})

	w.handleMessage(context.Background(), 1, []byte("not json"))
	w.handleMessage(context.Background(), 1, []byte(`{"application_id":"00000000-0000-0000-0000-000000000000"}`))

	assert.Empty(t, store.statuses)
	assert.Empty(t, updates.updates)
}

type nopCloser struct{ closed *int }

func (c nopCloser) Close() error {
	*c.closed++
	return nil
}

func TestWorkerPoolDrainsAndStops(t *testing.T) {
	targets := []database.ScreeningTarget{testTarget(), testTarget(), testTarget()}
	store := newFakeStore(targets...)
	files := map[string][]byte{}
	for _, tg := range targets {
		files[tg.ResumeKey] = []byte("resume")
	}
	agent := &fakeAgent{output: `{"match_score": 60}`}
	w, _ := newTestWorker(t, store, &fakeResumes{files: files}, agent)

	subs := make([]chan amqp.Delivery, w.NumWorker)
	for i := range subs {
		subs[i] = make(chan amqp.Delivery, len(targets))
	}
	for i, tg := range targets {
		subs[i%len(subs)] <- amqp.Delivery{Body: messageBody(t, tg.ApplicationID)}
	}
	for _, ch := range subs {
		close(ch)
	}

	closed, opened := 0, 0
	err := w.StartConsumerWorkerPool(context.Background(), func() (<-chan amqp.Delivery, io.Closer, error) {
		ch := subs[opened]
		opened++
		return ch, nopCloser{closed: &closed}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, w.NumWorker, closed)
	for _, tg := range targets {
		assert.Equal(t, []string{statusProcessing, statusCompleted}, store.history(tg.ApplicationID))
	}
}

func TestWorkerPoolStopsOnCancel(t *testing.T) {
	w, _ := newTestWorker(t, newFakeStore(), &fakeResumes{}, &fakeAgent{})
	closed := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.StartConsumerWorkerPool(ctx, func() (<-chan amqp.Delivery, io.Closer, error) {
		return make(chan amqp.Delivery), nopCloser{closed: &closed}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, w.NumWorker, closed)
}

func TestWorkerPoolOpenError(t *testing.T) {
	w, _ := newTestWorker(t, newFakeStore(), &fakeResumes{}, &fakeAgent{})
	closed := 0
	calls := 0
	err := w.StartConsumerWorkerPool(context.Background(), func() (<-chan amqp.Delivery, io.Closer, error) {
		calls++
		if calls == 2 {
			return nil, nil, errors.New("channel refused")
		}
		return make(chan amqp.Delivery), nopCloser{closed: &closed}, nil
	})
	assert.ErrorContains(t, err, "channel refused")
	assert.Equal(t, 1, closed)
}
