package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"gretutor/internal/domain"
	"gretutor/internal/metrics"
	"gretutor/internal/ocr"
	"gretutor/internal/port"
	"gretutor/internal/prompt"
)

// ImageQuestionInput is an uploaded question image plus the user's question.
type ImageQuestionInput struct {
	Image    []byte
	Question string
}

// VerbalInput is ImageQuestionInput plus the verbal-only fields.
type VerbalInput struct {
	Image    []byte
	Question string
	// ConversationHistory is the JSON array of {role, content} turns as sent
	// by the client. Empty means no history.
	ConversationHistory string
	CorrectAnswer       string
}

// TutorService answers GRE questions by combining OCR with the completion API.
type TutorService interface {
	Ask(ctx context.Context, question string) (string, error)
	AnalyzeImage(ctx context.Context, input ImageQuestionInput) (string, error)
	AnalyzeVerbal(ctx context.Context, input VerbalInput) (string, error)
	AnalyzeQuant(ctx context.Context, input ImageQuestionInput) (string, error)
	AnalyzeWriting(ctx context.Context, input ImageQuestionInput) (string, error)
	FollowUp(ctx context.Context, question, previousContext string) (string, error)
	RecordFeedback(ctx context.Context, fb domain.Feedback) error
	OCRVersion(ctx context.Context) (string, error)
}

// TutorOptions holds the completion settings the service applies per call.
type TutorOptions struct {
	// SystemMessage accompanies every cached tutor prompt.
	SystemMessage string
	// AskMaxTokens caps the /ask passthrough.
	AskMaxTokens int
}

type tutorService struct {
	ocr   port.OCREngine
	llm   port.CompletionClient
	cache port.ResponseCache
	opts  TutorOptions
}

// NewTutorService creates a new TutorService implementation.
func NewTutorService(ocrEngine port.OCREngine, llm port.CompletionClient, cache port.ResponseCache, opts TutorOptions) TutorService {
	return &tutorService{
		ocr:   ocrEngine,
		llm:   llm,
		cache: cache,
		opts:  opts,
	}
}

// Ask forwards the question verbatim, without system message or caching.
func (s *tutorService) Ask(ctx context.Context, question string) (string, error) {
	return s.llm.Complete(ctx, port.CompletionInput{
		Prompt:    question,
		MaxTokens: s.opts.AskMaxTokens,
	})
}

func (s *tutorService) AnalyzeImage(ctx context.Context, input ImageQuestionInput) (string, error) {
	text, err := s.extractText(ctx, input.Image)
	if err != nil {
		return "", err
	}
	return s.tutor(ctx, domain.PromptKindGeneral, prompt.BuildGeneralPrompt(text, input.Question))
}

func (s *tutorService) AnalyzeVerbal(ctx context.Context, input VerbalInput) (string, error) {
	text, err := s.extractText(ctx, input.Image)
	if err != nil {
		return "", err
	}
	log.Info().Str("extracted_text", text).Msg("verbal question extracted")

	history, err := parseHistory(input.ConversationHistory)
	if err != nil {
		return "", err
	}

	answer, err := s.tutor(ctx, domain.PromptKindVerbal, prompt.BuildVerbalPrompt(prompt.VerbalInput{
		ExtractedText: text,
		Question:      input.Question,
		History:       history,
		CorrectAnswer: input.CorrectAnswer,
	}))
	if err != nil {
		return "", err
	}
	log.Info().Str("question", input.Question).Int("history_turns", len(history)).Msg("verbal question answered")
	return answer, nil
}

func (s *tutorService) AnalyzeQuant(ctx context.Context, input ImageQuestionInput) (string, error) {
	text, err := s.extractText(ctx, input.Image)
	if err != nil {
		return "", err
	}
	return s.tutor(ctx, domain.PromptKindQuant, prompt.BuildQuantPrompt(text, input.Question))
}

func (s *tutorService) AnalyzeWriting(ctx context.Context, input ImageQuestionInput) (string, error) {
	text, err := s.extractText(ctx, input.Image)
	if err != nil {
		return "", err
	}
	return s.tutor(ctx, domain.PromptKindWriting, prompt.BuildWritingPrompt(text, input.Question))
}

func (s *tutorService) FollowUp(ctx context.Context, question, previousContext string) (string, error) {
	return s.tutor(ctx, domain.PromptKindFollowUp, prompt.BuildFollowUpPrompt(question, previousContext))
}

func (s *tutorService) RecordFeedback(_ context.Context, fb domain.Feedback) error {
	metrics.IncFeedback(fb.Helpful)
	log.Info().
		Bool("helpful", fb.Helpful).
		Str("response_excerpt", fb.Excerpt(200)).
		Msg("feedback received")
	return nil
}

func (s *tutorService) OCRVersion(ctx context.Context) (string, error) {
	return s.ocr.Version(ctx)
}

// extractText decodes the upload, runs OCR, and normalizes the result.
func (s *tutorService) extractText(ctx context.Context, data []byte) (string, error) {
	img, format, err := ocr.DecodeImage(data)
	if err != nil {
		return "", err
	}
	raw, err := s.ocr.ExtractText(ctx, img)
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("ocr failed")
		return "", err
	}
	return prompt.NormalizeOCRText(raw), nil
}

// tutor resolves a built prompt through the response cache.
func (s *tutorService) tutor(ctx context.Context, kind domain.PromptKind, p string) (string, error) {
	answer, err := s.cache.GetOrCompute(ctx, p, func(ctx context.Context, p string) (string, error) {
		return s.llm.Complete(ctx, port.CompletionInput{
			Prompt:        p,
			SystemMessage: s.opts.SystemMessage,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("prompt_kind", string(kind)).Msg("tutor completion failed")
		return "", err
	}
	return answer, nil
}

// parseHistory decodes the client-supplied conversation history.
func parseHistory(raw string) ([]domain.ConversationTurn, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var history []domain.ConversationTurn
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedHistory, err)
	}
	return history, nil
}
