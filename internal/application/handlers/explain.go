package handlers

import (
	"context"

	"github.com/ersonp/gedcheck/internal/domain/services"
)

// ExplainHandler summarizes validation results in plain language.
type ExplainHandler struct {
	service *services.ExplainService
}

// NewExplainHandler creates a new ExplainHandler.
func NewExplainHandler(service *services.ExplainService) *ExplainHandler {
	return &ExplainHandler{
		service: service,
	}
}

// Handle returns a summary of the report's findings.
func (h *ExplainHandler) Handle(ctx context.Context, report *services.Report) (string, error) {
	return h.service.Explain(ctx, report.Findings)
}
