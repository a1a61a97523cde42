package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mythwatch/mythwatch/internal/model"
)

// NLIClient scores claims against a hosted natural-language-inference
// model over a HuggingFace-style JSON inference endpoint.
type NLIClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewNLIClient creates a new entailment client.
func NewNLIClient(cfg model.OracleConfig) (*NLIClient, error) {
	if cfg.NLIBaseURL == "" {
		return nil, fmt.Errorf("NLI base URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &NLIClient{
		baseURL:    strings.TrimSuffix(cfg.NLIBaseURL, "/"),
		model:      cfg.NLIModel,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the NLI model identifier.
func (c *NLIClient) Name() string {
	return c.model
}

type nliRequest struct {
	Inputs string `json:"inputs"`
}

type nliScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type nliError struct {
	Error string `json:"error"`
}

// Entail returns entailment/contradiction/neutral probabilities for text.
func (c *NLIClient) Entail(ctx context.Context, text string) (EntailmentScores, error) {
	body, err := json.Marshal(nliRequest{Inputs: text})
	if err != nil {
		return EntailmentScores{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return EntailmentScores{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return EntailmentScores{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return EntailmentScores{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr nliError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return EntailmentScores{}, fmt.Errorf("NLI API error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return EntailmentScores{}, fmt.Errorf("NLI API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return parseNLIScores(respBody)
}

// parseNLIScores accepts both the flat and the batch-nested shape the
// inference API produces, mirroring its single-input and batched modes.
func parseNLIScores(body []byte) (EntailmentScores, error) {
	var nested [][]nliScore
	var flat []nliScore

	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		flat = nested[0]
	} else if err := json.Unmarshal(body, &flat); err != nil {
		return EntailmentScores{}, fmt.Errorf("unmarshal NLI response: %w", err)
	}

	if len(flat) == 0 {
		return EntailmentScores{}, fmt.Errorf("empty NLI response")
	}

	var scores EntailmentScores
	for _, s := range flat {
		switch strings.ToLower(s.Label) {
		case "entailment":
			scores.Entailment = s.Score
		case "contradiction":
			scores.Contradiction = s.Score
		case "neutral":
			scores.Neutral = s.Score
		}
	}
	return scores, nil
}
