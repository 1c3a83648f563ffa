package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/config"
	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
	"github.com/muhammadolammi/atcampus/internal/storage"
)

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"

	downloadAttempts = 3
	analyzeAttempts  = 2
	saveAttempts     = 3
)

// runWorker wires the worker dependencies and consumes until ctx is done.
func runWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := openDB(ctx, cfg.DBURL)
	if err != nil {
		return err
	}
	defer db.Close()

	bucket, err := storage.NewR2Bucket(ctx, cfg.R2)
	if err != nil {
		return err
	}
	analyzer, err := newAgentAnalyzer(ctx, cfg.GoogleAPIKey)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	defer conn.Close()
	publisher, err := events.NewAMQPPublisher(conn)
	if err != nil {
		return err
	}

	workerConfig := &WorkerConfig{
		DB:        database.New(db),
		Resumes:   bucket,
		Updates:   publisher,
		Agent:     analyzer,
		Logger:    logger,
		NumWorker: cfg.Workers,
	}
	logger.Info("starting consumer worker pool", zap.Int("workers", cfg.Workers))
	return workerConfig.StartConsumerWorkerPool(ctx, func() (<-chan amqp.Delivery, io.Closer, error) {
		return consumeApplications(conn)
	})
}

// consumeApplications opens a channel of its own and subscribes to the
// applications queue.
func consumeApplications(conn *amqp.Connection) (<-chan amqp.Delivery, io.Closer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	if _, err := events.DeclareApplicationsQueue(ch); err != nil {
		ch.Close()
		return nil, nil, err
	}
	msgs, err := ch.Consume(
		events.ApplicationsQueue, // queue name
		"",                       // consumer tag
		true,                     // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,                      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, nil, fmt.Errorf("error consuming rabbitmq messages: %w", err)
	}
	return msgs, ch, nil
}

// StartConsumerWorkerPool runs NumWorker consumers, each with its own
// subscription from open, and blocks until they all stop. Workers stop when
// ctx is done or their delivery channel closes.
func (w *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, open func() (<-chan amqp.Delivery, io.Closer, error)) error {
	n := max(w.NumWorker, 1)
	subs := make([]<-chan amqp.Delivery, 0, n)
	closers := make([]io.Closer, 0, n)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	for range n {
		msgs, closer, err := open()
		if err != nil {
			return err
		}
		subs = append(subs, msgs)
		closers = append(closers, closer)
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i, msgs := range subs {
		w.Logger.Debug("worker started", zap.Int("worker", i+1))
		go w.worker(ctx, i+1, msgs, &wg)
	}
	wg.Wait()
	return nil
}

func (w *WorkerConfig) worker(ctx context.Context, id int, msgs <-chan amqp.Delivery, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				w.Logger.Warn("delivery channel closed", zap.Int("worker", id))
				return
			}
			w.handleMessage(ctx, id, msg.Body)
		}
	}
}

// handleMessage screens one queued application. Malformed messages are
// dropped; any failure after that marks the application failed.
func (w *WorkerConfig) handleMessage(ctx context.Context, worker int, body []byte) {
	var msg events.ApplicationMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.ApplicationID == uuid.Nil {
		w.Logger.Warn("dropping malformed message", zap.Int("worker", worker), zap.ByteString("body", body), zap.Error(err))
		return
	}
	log := w.Logger.With(zap.Int("worker", worker), zap.String("application_id", msg.ApplicationID.String()))
	log.Info("processing application")

	w.setStatus(ctx, log, msg.ApplicationID, statusProcessing, "screening started")
	if err := w.screen(ctx, msg.ApplicationID); err != nil {
		log.Error("screening failed", zap.Error(err))
		w.setStatus(ctx, log, msg.ApplicationID, statusFailed, "screening failed")
		return
	}
	w.setStatus(ctx, log, msg.ApplicationID, statusCompleted, "screening completed")
	log.Info("application screened")
}

func (w *WorkerConfig) setStatus(ctx context.Context, log *zap.Logger, id uuid.UUID, status, message string) {
	// Run even if ctx was cancelled mid screening so the row is not left processing.
	ctx = context.WithoutCancel(ctx)
	if err := w.DB.UpdateScreeningStatus(ctx, database.UpdateScreeningStatusParams{Status: status, ID: id}); err != nil {
		log.Error("failed to update screening status", zap.String("status", status), zap.Error(err))
	}
	update := events.ApplicationUpdate{
		ApplicationID: id,
		Status:        status,
		Message:       message,
		Timestamp:     time.Now().UTC(),
	}
	if err := w.Updates.PublishApplicationUpdate(ctx, update); err != nil {
		log.Warn("failed to publish update", zap.Error(err))
	}
}

// screen downloads, extracts, analyzes and persists one application's resume.
func (w *WorkerConfig) screen(ctx context.Context, id uuid.UUID) error {
	target, err := w.DB.GetScreeningTarget(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting application %s: %w", id, err)
	}
	if target.ResumeKey == "" {
		return fmt.Errorf("application %s has no resume", id)
	}

	fileBytes, err := retry(ctx, downloadAttempts, func() ([]byte, error) {
		return w.Resumes.Download(ctx, target.ResumeKey)
	})
	if err != nil {
		return fmt.Errorf("file download error: %w", err)
	}

	resumeText, err := ExtractResumeText(target.ResumeMime, fileBytes)
	if err != nil {
		return fmt.Errorf("text extraction error: %w", err)
	}

	msg := screeningMessage(target.JobTitle, target.JobDescription, target.RequiredSkills, resumeText)
	output, err := retry(ctx, analyzeAttempts, func() (string, error) {
		return w.Agent.Analyze(ctx, target.StudentID.String(), target.ApplicationID.String(), msg)
	})
	if err != nil {
		return fmt.Errorf("agent stream error: %w", err)
	}

	result, err := parseScreeningResult(output)
	if err != nil {
		return err
	}

	_, err = retry(ctx, saveAttempts, func() (struct{}, error) {
		return struct{}{}, w.DB.SaveScreeningResult(ctx, database.SaveScreeningResultParams{Result: result, ID: id})
	})
	if err != nil {
		return fmt.Errorf("failed to save screening result after retries: %w", err)
	}
	return nil
}
