package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/gedcheck/internal/application/handlers"
	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// Report colors. They only apply when the writer is a color terminal.
var (
	colorError = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	colorPass  = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

func writeReport(w io.Writer, format string, result *handlers.ValidateResult) error {
	switch format {
	case "text":
		return formatText(w, result)
	case "json":
		return formatJSON(w, result.Findings)
	case "csv":
		return formatCSV(w, result.Findings)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatText(w io.Writer, result *handlers.ValidateResult) error {
	r := lipgloss.NewRenderer(w)
	errorStyle := r.NewStyle().Foreground(colorError)
	passStyle := r.NewStyle().Foreground(colorPass)
	mutedStyle := r.NewStyle().Foreground(colorMuted)

	for _, f := range result.Findings {
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("ERROR"), f.Rule, f.Message); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%s: %d individuals, %d families", result.Source, result.Individuals, result.Families)
	if len(result.Findings) == 0 {
		_, err := fmt.Fprintf(w, "%s %s\n", mutedStyle.Render(summary), passStyle.Render("no problems found"))
		return err
	}

	_, err := fmt.Fprintf(w, "%s %s\n", mutedStyle.Render(summary),
		errorStyle.Render(fmt.Sprintf("%d problems (%s)", len(result.Findings), ruleCounts(result.Findings))))
	return err
}

// ruleCounts renders "US22: 1, US26: 2" in rule order.
func ruleCounts(findings []entities.Finding) string {
	counts := make(map[entities.Rule]int)
	for _, f := range findings {
		counts[f.Rule]++
	}

	parts := make([]string, 0, len(counts))
	for _, rule := range entities.AllRules {
		if n := counts[rule]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", rule, n))
		}
	}
	return strings.Join(parts, ", ")
}

func formatJSON(w io.Writer, findings []entities.Finding) error {
	if findings == nil {
		findings = []entities.Finding{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(findings)
}

func formatCSV(w io.Writer, findings []entities.Finding) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"rule", "category", "message"}); err != nil {
		return err
	}

	for _, f := range findings {
		if err := writer.Write([]string{string(f.Rule), string(f.Category), f.Message}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
