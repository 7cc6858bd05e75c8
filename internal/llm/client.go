// Package llm implements the search, analysis, kit and résumé-tailoring
// calls against a Gemini model via langchaingo.
//
// The external service is treated as unreliable: responses may be wrapped
// in markdown fences or be malformed JSON. Salvage lives in extract.go;
// what cannot be salvaged surfaces as an error for the pipeline to handle.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"jobscout/dashboard-service/internal/kanban"
	"jobscout/dashboard-service/internal/scout"
)

// ErrDisabled is returned by generation calls when no API key was
// configured. Search degrades to an empty result instead.
var ErrDisabled = errors.New("llm client disabled: GEMINI_API_KEY not set")

// Client talks to the Gemini model. It satisfies scout.Searcher,
// scout.Analyzer and scout.KitGenerator.
type Client struct {
	model  llms.Model
	logger *slog.Logger
}

// New constructs a Client. With an empty API key the client starts in
// disabled mode: scouting skips gracefully and generation calls fail with
// ErrDisabled.
func New(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY not set, scouting and analysis disabled")
		return &Client{logger: logger}, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{model: model, logger: logger}, nil
}

// Search asks the model for current postings matching the role/location
// query. With no API key it returns an empty batch without error, so a
// scouting cycle simply finds nothing.
func (c *Client) Search(ctx context.Context, role, location string) ([]scout.Posting, error) {
	if c.model == nil {
		c.logger.Warn("search skipped, llm disabled")
		return nil, nil
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model,
		fmt.Sprintf(searchPrompt, role, location))
	if err != nil {
		return nil, fmt.Errorf("search call: %w", err)
	}

	var postings []scout.Posting
	if err := json.Unmarshal([]byte(extractJSON(resp)), &postings); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return postings, nil
}

// Analyze scores one job against the tracked profile. Malformed responses
// are an error; the pipeline substitutes the failure placeholder.
func (c *Client) Analyze(ctx context.Context, job kanban.Job) (*kanban.JobAnalysis, error) {
	if c.model == nil {
		return nil, ErrDisabled
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model,
		fmt.Sprintf(analyzePrompt, job.Title, job.Company, job.Location, job.Summary))
	if err != nil {
		return nil, fmt.Errorf("analyze call: %w", err)
	}
	return parseAnalysis(resp)
}

// GenerateKit produces the extended application strategy for an analyzed
// job. The result is plain text, not JSON.
func (c *Client) GenerateKit(ctx context.Context, job kanban.Job, analysis kanban.JobAnalysis) (string, error) {
	if c.model == nil {
		return "", ErrDisabled
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model,
		fmt.Sprintf(kitPrompt, job.Title, job.Company, analysis.Verdict, analysis.Strategy,
			strings.Join(analysis.MatchedKeywords, ", ")))
	if err != nil {
		return "", fmt.Errorf("kit call: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

// TailorResume rewrites the base résumé for a specific job.
func (c *Client) TailorResume(ctx context.Context, base string, job kanban.Job) (string, error) {
	if c.model == nil {
		return "", ErrDisabled
	}

	var keywords string
	if job.Analysis != nil {
		keywords = strings.Join(job.Analysis.MatchedKeywords, ", ")
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model,
		fmt.Sprintf(tailorPrompt, job.Title, job.Company, job.Summary, keywords, base))
	if err != nil {
		return "", fmt.Errorf("tailor call: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

// parseAnalysis decodes a model response into a complete JobAnalysis.
func parseAnalysis(resp string) (*kanban.JobAnalysis, error) {
	var a kanban.JobAnalysis
	if err := json.Unmarshal([]byte(extractJSON(resp)), &a); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
	if a.MatchedKeywords == nil {
		a.MatchedKeywords = []string{}
	}
	return &a, nil
}
