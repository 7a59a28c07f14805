package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/mocks"
	"github.com/ersonp/gedcheck/internal/domain/services"
)

func TestExplainHandler_Handle(t *testing.T) {
	llm := &mocks.LLMClient{Summary: "One family lists a child that does not exist."}
	handler := NewExplainHandler(services.NewExplainService(llm))

	report := &services.Report{
		Findings: []entities.Finding{{
			Rule:     entities.RuleCorrespondingEntries,
			Category: entities.CategoryUnresolvedReference,
			Message:  "Family(F1) child at line 9 does not correspond to individual(I7 not found)",
		}},
	}

	summary, err := handler.Handle(t.Context(), report)
	require.NoError(t, err)
	assert.Equal(t, llm.Summary, summary)
	assert.Equal(t, report.Findings, llm.LastFindings)
}
