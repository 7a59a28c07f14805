package services

import (
	"context"
	"fmt"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

// NoFindingsSummary is returned by ExplainService when there is nothing to explain.
const NoFindingsSummary = "No integrity problems found."

// ExplainService turns findings into a plain-language summary using an LLM.
type ExplainService struct {
	llm ports.LLMClient
}

// NewExplainService creates a new ExplainService.
func NewExplainService(llm ports.LLMClient) *ExplainService {
	return &ExplainService{
		llm: llm,
	}
}

// Explain summarizes findings. The LLM is not called when there are no findings.
func (s *ExplainService) Explain(ctx context.Context, findings []entities.Finding) (string, error) {
	if len(findings) == 0 {
		return NoFindingsSummary, nil
	}

	summary, err := s.llm.ExplainFindings(ctx, findings)
	if err != nil {
		return "", fmt.Errorf("explaining findings: %w", err)
	}
	return summary, nil
}
