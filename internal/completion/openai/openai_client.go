package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	sdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/rs/zerolog/log"

	"gretutor/internal/completion"
	"gretutor/internal/config"
	"gretutor/internal/domain"
	"gretutor/internal/metrics"
	"gretutor/internal/port"
)

const providerName = "openai"

// Client implements port.CompletionClient using the OpenAI Chat Completions API.
type Client struct {
	api         sdk.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewClient creates an OpenAI-backed completion client from the completion config.
func NewClient(cfg *config.CompletionConfig) *Client {
	return newClient(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API base URL (for testing).
func NewClientWithEndpoint(cfg *config.CompletionConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.CompletionConfig, baseURL string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gpt-4"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		api:         sdk.NewClient(opts...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}
}

// Factory adapts NewClient to completion.ProviderFactory.
func Factory(cfg *config.CompletionConfig) (port.CompletionClient, error) {
	return NewClient(cfg), nil
}

func (c *Client) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]sdk.ChatCompletionMessageParamUnion, 0, 2)
	if input.SystemMessage != "" {
		messages = append(messages, sdk.SystemMessage(input.SystemMessage))
	}
	messages = append(messages, sdk.UserMessage(input.Prompt))

	params := sdk.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Messages:    messages,
		MaxTokens:   sdk.Int(int64(maxTokens)),
		Temperature: sdk.Float(c.temperature),
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		metrics.ObserveCompletion(providerName, c.model, "error", time.Since(start))
		log.Error().Err(err).Str("model", c.model).Msg("openai completion failed")
		return "", completion.NewUpstreamError(providerName, err)
	}

	if len(resp.Choices) == 0 {
		metrics.ObserveCompletion(providerName, c.model, "empty", time.Since(start))
		return "", completion.NewUpstreamError(providerName, errors.New("no choices in response"))
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		metrics.ObserveCompletion(providerName, c.model, "empty", time.Since(start))
		return "", completion.NewUpstreamError(providerName, domain.ErrEmptyCompletion)
	}

	metrics.ObserveCompletion(providerName, c.model, "success", time.Since(start))
	return text, nil
}
