package plangen

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"growthplan/pkg/metrics"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient generates tasks directly against the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerationRequest) ([]CandidateTask, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildDailyPrompt(req)
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		metrics.RecordGeneratorCallLatency("gemini", "error", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}

	text := result.Text()
	if text == "" {
		metrics.RecordGeneratorCallLatency("gemini", "empty", time.Since(start))
		return nil, fmt.Errorf("%w: empty completion", ErrGeneratorMalformed)
	}

	metrics.RecordGeneratorCallLatency("gemini", "ok", time.Since(start))
	return ParseCandidates([]byte(text), req.Day)
}
