package plangen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"growthplan/pkg/metrics"
)

// HTTPClient calls a self-hosted generation service over HTTP. No retries:
// the seeder substitutes fallback synthesis instead, so bounded latency wins
// over generation quality.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout, // 超时直接走 fallback，不能卡住 day view
		},
	}
}

func (c *HTTPClient) Generate(ctx context.Context, genReq GenerationRequest) ([]CandidateTask, error) {
	start := time.Now()

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneratorMalformed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate/daily", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordGeneratorCallLatency("http", "error", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordGeneratorCallLatency("http", fmt.Sprintf("%d", resp.StatusCode), time.Since(start))
		return nil, fmt.Errorf("%w: generator returned %d", ErrGeneratorUnavailable, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordGeneratorCallLatency("http", "error", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}

	metrics.RecordGeneratorCallLatency("http", "ok", time.Since(start))
	return ParseCandidates(payload, genReq.Day)
}
