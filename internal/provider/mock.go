package provider

import (
	"context"
)

// MockProvider returns a canned response. It is used when no API key is
// configured so the service still runs end-to-end out of the box.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return "I'm SmartCoach AI! To enable full AI responses, configure an LLM provider " +
		"and API key (for example LLM_PROVIDER=gemini with LLM_API_KEY set).\n" +
		"For now, here's a tip: stay consistent with your workouts and focus on proper nutrition!", nil
}
