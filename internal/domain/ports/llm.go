package ports

import (
	"context"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// LLMClient defines the interface for LLM operations.
type LLMClient interface {
	// ExplainFindings returns a plain-language summary of the given findings.
	ExplainFindings(ctx context.Context, findings []entities.Finding) (string, error)
}
