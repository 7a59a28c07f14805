package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/gedcheck/internal/application/handlers"
	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/services"
)

func testResult(findings ...entities.Finding) *handlers.ValidateResult {
	return &handlers.ValidateResult{
		Source: "tree.ged",
		Report: &services.Report{
			Findings:    findings,
			Individuals: 3,
			Families:    2,
		},
	}
}

var testFindings = []entities.Finding{
	{
		Rule:     entities.RuleUniqueIDs,
		Category: entities.CategoryDuplicateID,
		Message:  "Family ID (F9) is not unique (at line 10, 40)",
	},
	{
		Rule:     entities.RuleCorrespondingEntries,
		Category: entities.CategoryUnresolvedReference,
		Message:  "Family(F1) child at line 9 does not correspond to individual(I7 not found)",
	},
	{
		Rule:     entities.RuleCorrespondingEntries,
		Category: entities.CategoryInconsistentReference,
		Message:  "Individual(I1) is not a spouse of (at line 5) the corresponding family(F1 at line 10)",
	},
}

func TestFormatText(t *testing.T) {
	t.Run("findings", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatText(&buf, testResult(testFindings...)))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		for i, f := range testFindings {
			assert.Equal(t, f.String(), lines[i])
		}
		assert.Contains(t, lines[3], "tree.ged: 3 individuals, 2 families")
		assert.Contains(t, lines[3], "3 problems (US22: 1, US26: 2)")
	})

	t.Run("no findings", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatText(&buf, testResult()))
		assert.Contains(t, buf.String(), "no problems found")
		assert.NotContains(t, buf.String(), "ERROR")
	})
}

func TestFormatJSON(t *testing.T) {
	t.Run("findings", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatJSON(&buf, testFindings))

		var decoded []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 3)
		assert.Equal(t, "US22", decoded[0]["rule"])
		assert.Equal(t, "unresolved-reference", decoded[1]["category"])
		assert.Equal(t, testFindings[2].Message, decoded[2]["message"])
	})

	t.Run("no findings is an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatJSON(&buf, nil))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestFormatCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatCSV(&buf, testFindings))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"rule", "category", "message"}, records[0])
	assert.Equal(t, []string{"US26", "inconsistent-reference", testFindings[2].Message}, records[3])
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeReport(&buf, "markdown", testResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRuleCounts(t *testing.T) {
	assert.Equal(t, "US22: 1, US26: 2", ruleCounts(testFindings))
	assert.Equal(t, "US26: 1", ruleCounts(testFindings[1:2]))
	assert.Empty(t, ruleCounts(nil))
}
