package mocks

import (
	"context"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// LLMClient is a mock implementation of ports.LLMClient.
type LLMClient struct {
	Summary    string
	ExplainErr error

	// Call tracking
	ExplainCallCount int
	LastFindings     []entities.Finding
}

// ExplainFindings returns the configured summary or error.
func (m *LLMClient) ExplainFindings(ctx context.Context, findings []entities.Finding) (string, error) {
	m.ExplainCallCount++
	m.LastFindings = findings
	if m.ExplainErr != nil {
		return "", m.ExplainErr
	}
	return m.Summary, nil
}
