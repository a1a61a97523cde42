package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/mythwatch/mythwatch/internal/model"
)

// OpenAIClient implements Embedder and Summarizer against any
// OpenAI-compatible endpoint. All calls share one rate limiter so a burst
// of corpus precomputation cannot starve interactive requests.
type OpenAIClient struct {
	client         *openai.Client
	limiter        *rate.Limiter
	embeddingModel string
	summaryModel   string
}

// NewOpenAIClient creates a client from oracle configuration.
func NewOpenAIClient(cfg model.OracleConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 5
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(clientConfig),
		limiter:        rate.NewLimiter(rate.Limit(perSecond), int(perSecond)+1),
		embeddingModel: cfg.EmbeddingModel,
		summaryModel:   cfg.SummaryModel,
	}, nil
}

// Name returns the embedding model identifier.
func (c *OpenAIClient) Name() string {
	return c.embeddingModel
}

// IsAvailable checks that the endpoint answers a lightweight call.
func (c *OpenAIClient) IsAvailable(ctx context.Context) bool {
	if _, err := c.client.ListModels(ctx); err != nil {
		log.Warn().Err(err).Msg("oracle availability check failed")
		return false
	}
	return true
}

// Embed returns the embedding vector for a text.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}

// Summarize condenses text to roughly maxWords words.
func (c *OpenAIClient) Summarize(ctx context.Context, text string, maxWords int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	if maxWords <= 0 {
		maxWords = 80
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You condense public-health reference answers. Keep every factual " +
					"statement intact, drop filler, and never add information.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Summarize in at most %d words:\n\n%s", maxWords, text),
			},
		},
		MaxTokens:   maxWords * 3,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("create summary: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
