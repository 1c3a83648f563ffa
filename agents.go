package main

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const agentName = "resume screener"

func GetAgent(ctx context.Context, apiKey, name string) (agent.Agent, error) {
	model, err := gemini.NewModel(ctx, "gemini-2.5-pro", &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	customAgent, err := llmagent.New(llmagent.Config{
		Name:        name,
		Model:       model,
		Description: "Screen a job application resume",
		Instruction: prompt(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return customAgent, nil
}

// agentAnalyzer runs each screening in its own short lived agent session.
type agentAnalyzer struct {
	appName  string
	runner   *runner.Runner
	sessions session.Service
}

func newAgentAnalyzer(ctx context.Context, apiKey string) (*agentAnalyzer, error) {
	screener, err := GetAgent(ctx, apiKey, agentName)
	if err != nil {
		return nil, err
	}
	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        screener.Name(),
		Agent:          screener,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &agentAnalyzer{appName: screener.Name(), runner: r, sessions: sessions}, nil
}

func (a *agentAnalyzer) Analyze(ctx context.Context, userID, sessionID, message string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		_ = a.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
	}()

	stream := a.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: message}},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", fmt.Errorf("empty agent response")
	}
	return output, nil
}
