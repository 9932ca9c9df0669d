package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"gretutor/internal/completion"
	"gretutor/internal/config"
	"gretutor/internal/domain"
	"gretutor/internal/metrics"
	"gretutor/internal/port"
)

const providerName = "gemini"

// Client implements port.CompletionClient using Google's Gemini API.
type Client struct {
	apiKey      string
	model       string
	endpoint    string
	maxTokens   int
	temperature float64
}

// NewClient creates a Gemini-backed completion client.
func NewClient(cfg *config.CompletionConfig) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = "gemini-2.5-flash"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		endpoint:    cfg.BaseURL,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}
}

// Factory adapts NewClient to completion.ProviderFactory.
func Factory(cfg *config.CompletionConfig) (port.CompletionClient, error) {
	return NewClient(cfg), nil
}

// Model returns the resolved Gemini model name.
func (c *Client) Model() string { return c.model }

func (c *Client) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	if c.apiKey == "" {
		return "", completion.NewUpstreamError(providerName, errors.New("api key is empty"))
	}

	opts := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", completion.NewUpstreamError(providerName, err)
	}
	defer func() { _ = cl.Close() }()

	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	m := cl.GenerativeModel(c.model)
	m.SetTemperature(float32(c.temperature))
	m.SetMaxOutputTokens(int32(maxTokens))
	if input.SystemMessage != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(input.SystemMessage)},
		}
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(input.Prompt))
	if err != nil {
		metrics.ObserveCompletion(providerName, c.model, "error", time.Since(start))
		log.Error().Err(err).Str("model", c.model).Msg("gemini completion failed")
		return "", completion.NewUpstreamError(providerName, err)
	}

	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		metrics.ObserveCompletion(providerName, c.model, "empty", time.Since(start))
		return "", completion.NewUpstreamError(providerName, domain.ErrEmptyCompletion)
	}

	metrics.ObserveCompletion(providerName, c.model, "success", time.Since(start))
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
