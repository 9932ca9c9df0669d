package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gretutor/internal/cache"
	"gretutor/internal/completion"
	"gretutor/internal/domain"
	"gretutor/internal/port"
	"gretutor/internal/service"
	"gretutor/mocks"
)

const systemMessage = "You are a helpful GRE tutor assistant."

func newTutorService(t *testing.T) (service.TutorService, *mocks.MockOCREngine, *mocks.MockCompletionClient) {
	t.Helper()
	ocrEngine := new(mocks.MockOCREngine)
	llm := new(mocks.MockCompletionClient)
	c, err := cache.NewLRUCache(100)
	require.NoError(t, err)
	svc := service.NewTutorService(ocrEngine, llm, c, service.TutorOptions{
		SystemMessage: systemMessage,
		AskMaxTokens:  150,
	})
	return svc, ocrEngine, llm
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

// promptMatching matches a tutor completion input whose prompt contains every fragment.
func promptMatching(fragments ...string) interface{} {
	return mock.MatchedBy(func(in port.CompletionInput) bool {
		if in.SystemMessage != systemMessage {
			return false
		}
		for _, f := range fragments {
			if !strings.Contains(in.Prompt, f) {
				return false
			}
		}
		return true
	})
}

func TestTutorService_Ask_Passthrough(t *testing.T) {
	svc, _, llm := newTutorService(t)

	llm.On("Complete", mock.Anything, port.CompletionInput{Prompt: "What is 2+2?", MaxTokens: 150}).
		Return("4", nil).Twice()

	got, err := svc.Ask(context.Background(), "What is 2+2?")
	require.NoError(t, err)
	assert.Equal(t, "4", got)

	// not cached: a second call reaches the client again
	_, err = svc.Ask(context.Background(), "What is 2+2?")
	require.NoError(t, err)
	llm.AssertExpectations(t)
}

func TestTutorService_Ask_UpstreamError(t *testing.T) {
	svc, _, llm := newTutorService(t)

	upstream := completion.NewUpstreamError("openai", errors.New("invalid api key"))
	llm.On("Complete", mock.Anything, mock.Anything).Return("", upstream)

	_, err := svc.Ask(context.Background(), "hi")

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestTutorService_AnalyzeQuant(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("2x = 4 ÷ 1", nil)
	llm.On("Complete", mock.Anything, promptMatching("Question: Solve for x", "2x = 4 / 1", "LaTeX")).
		Return("x = 2", nil).Once()

	got, err := svc.AnalyzeQuant(context.Background(), service.ImageQuestionInput{
		Image:    pngBytes(t),
		Question: "Solve for x",
	})

	require.NoError(t, err)
	assert.Equal(t, "x = 2", got)

	// identical request is answered from the cache
	got, err = svc.AnalyzeQuant(context.Background(), service.ImageQuestionInput{
		Image:    pngBytes(t),
		Question: "Solve for x",
	})
	require.NoError(t, err)
	assert.Equal(t, "x = 2", got)
	llm.AssertNumberOfCalls(t, "Complete", 1)
	ocrEngine.AssertNumberOfCalls(t, "ExtractText", 2)
}

func TestTutorService_AnalyzeImage(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("passage text", nil)
	llm.On("Complete", mock.Anything, promptMatching("Question: Which is correct?", "passage text", "Follow-up Discussion")).
		Return("answer B", nil)

	got, err := svc.AnalyzeImage(context.Background(), service.ImageQuestionInput{
		Image:    pngBytes(t),
		Question: "Which is correct?",
	})

	require.NoError(t, err)
	assert.Equal(t, "answer B", got)
}

func TestTutorService_AnalyzeWriting(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("Issue topic", nil)
	llm.On("Complete", mock.Anything, promptMatching("Prompt: Outline an essay", "Issue topic", "Sample Paragraph")).
		Return("outline", nil)

	got, err := svc.AnalyzeWriting(context.Background(), service.ImageQuestionInput{
		Image:    pngBytes(t),
		Question: "Outline an essay",
	})

	require.NoError(t, err)
	assert.Equal(t, "outline", got)
}

func TestTutorService_AnalyzeVerbal_History(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("The blank was ___", nil)
	llm.On("Complete", mock.Anything, promptMatching(
		"user: hi\nassistant: hello",
		"Current question: Which word fits?",
		"The user has indicated that the correct answer is: B",
	)).Return("<h2>1. Correct Answer</h2>", nil)

	got, err := svc.AnalyzeVerbal(context.Background(), service.VerbalInput{
		Image:               pngBytes(t),
		Question:            "Which word fits?",
		ConversationHistory: `[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]`,
		CorrectAnswer:       "B",
	})

	require.NoError(t, err)
	assert.Equal(t, "<h2>1. Correct Answer</h2>", got)
}

func TestTutorService_AnalyzeVerbal_EmptyHistory(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("text", nil)
	llm.On("Complete", mock.Anything, promptMatching("Conversation history:\n\n")).Return("<p>ok</p>", nil)

	for _, history := range []string{"", "[]"} {
		got, err := svc.AnalyzeVerbal(context.Background(), service.VerbalInput{
			Image:               pngBytes(t),
			Question:            "q",
			ConversationHistory: history,
		})
		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", got)
	}
	// both spellings render the same prompt, so the second is a cache hit
	llm.AssertNumberOfCalls(t, "Complete", 1)
}

func TestTutorService_AnalyzeVerbal_MalformedHistory(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("text", nil)

	_, err := svc.AnalyzeVerbal(context.Background(), service.VerbalInput{
		Image:               pngBytes(t),
		Question:            "q",
		ConversationHistory: "not json",
	})

	assert.ErrorIs(t, err, domain.ErrMalformedHistory)
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestTutorService_DecodeError(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	_, err := svc.AnalyzeQuant(context.Background(), service.ImageQuestionInput{
		Image:    []byte("not an image"),
		Question: "q",
	})

	assert.ErrorIs(t, err, domain.ErrImageDecode)
	ocrEngine.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestTutorService_OCRError(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).
		Return("", errors.Join(domain.ErrOCR, errors.New("tesseract not installed")))

	_, err := svc.AnalyzeImage(context.Background(), service.ImageQuestionInput{
		Image:    pngBytes(t),
		Question: "q",
	})

	assert.ErrorIs(t, err, domain.ErrOCR)
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestTutorService_UpstreamErrorNotCached(t *testing.T) {
	svc, ocrEngine, llm := newTutorService(t)

	ocrEngine.On("ExtractText", mock.Anything, mock.Anything).Return("2x=4", nil)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return("", completion.NewUpstreamError("openai", errors.New("timeout"))).Once()
	llm.On("Complete", mock.Anything, mock.Anything).Return("x = 2", nil).Once()

	in := service.ImageQuestionInput{Image: pngBytes(t), Question: "Solve"}
	_, err := svc.AnalyzeQuant(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	got, err := svc.AnalyzeQuant(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "x = 2", got)
	llm.AssertNumberOfCalls(t, "Complete", 2)
}

func TestTutorService_FollowUp(t *testing.T) {
	svc, _, llm := newTutorService(t)

	llm.On("Complete", mock.Anything, promptMatching("Previous explanation:\nx = 2", "Follow-up question: why?")).
		Return("because", nil)

	got, err := svc.FollowUp(context.Background(), "why?", "x = 2")

	require.NoError(t, err)
	assert.Equal(t, "because", got)
}

func TestTutorService_RecordFeedback(t *testing.T) {
	svc, _, _ := newTutorService(t)

	err := svc.RecordFeedback(context.Background(), domain.Feedback{Helpful: true, Response: "x = 2"})

	assert.NoError(t, err)
}

func TestTutorService_OCRVersion(t *testing.T) {
	svc, ocrEngine, _ := newTutorService(t)

	ocrEngine.On("Version", mock.Anything).Return("5.3.0", nil)

	got, err := svc.OCRVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "5.3.0", got)
}
