// Package openai provides an LLMClient implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/infrastructure/config"
)

// maxPromptFindings caps how many findings are sent in one request.
const maxPromptFindings = 200

const explainPrompt = `You review integrity reports for genealogical (GEDCOM) files.
Each report line names a rule, the records involved and their source line numbers:
- US22: an individual or family identifier is used by more than one record.
- US26: a link between an individual and a family is missing its reverse link or points
  at a record that does not exist.

Summarize the report for the person maintaining the file:
1. Group related lines (one duplicated identifier often explains several US26 lines).
2. For each group, say which records to inspect, by identifier and line number.
3. Suggest the most likely fix. Do not invent records that are not in the report.

Answer in plain text, at most 15 lines.`

// Client implements the LLMClient interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI LLM client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// ExplainFindings returns a plain-language summary of the findings.
func (c *Client) ExplainFindings(ctx context.Context, findings []entities.Finding) (string, error) {
	if len(findings) == 0 {
		return "", nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: explainPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildReport(findings),
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return cleanResponse(resp.Choices[0].Message.Content), nil
}

// buildReport renders findings one per line, truncated to maxPromptFindings.
func buildReport(findings []entities.Finding) string {
	var b strings.Builder
	for i, f := range findings {
		if i == maxPromptFindings {
			fmt.Fprintf(&b, "... and %d more findings\n", len(findings)-maxPromptFindings)
			break
		}
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// cleanResponse removes markdown code fences if present.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if nl := strings.IndexByte(content, '\n'); nl >= 0 && !strings.Contains(content[:nl], " ") {
			// drop a language tag such as ```text
			content = content[nl+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}
