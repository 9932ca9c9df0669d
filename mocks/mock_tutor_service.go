package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gretutor/internal/domain"
	"gretutor/internal/service"
)

// MockTutorService is a mock implementation of service.TutorService.
type MockTutorService struct {
	mock.Mock
}

func (m *MockTutorService) Ask(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *MockTutorService) AnalyzeImage(ctx context.Context, input service.ImageQuestionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockTutorService) AnalyzeVerbal(ctx context.Context, input service.VerbalInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockTutorService) AnalyzeQuant(ctx context.Context, input service.ImageQuestionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockTutorService) AnalyzeWriting(ctx context.Context, input service.ImageQuestionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockTutorService) FollowUp(ctx context.Context, question, previousContext string) (string, error) {
	args := m.Called(ctx, question, previousContext)
	return args.String(0), args.Error(1)
}

func (m *MockTutorService) RecordFeedback(ctx context.Context, fb domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockTutorService) OCRVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
