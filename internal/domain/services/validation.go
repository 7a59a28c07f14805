package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

// ErrUnknownRule is returned when a rule name does not match any known rule.
var ErrUnknownRule = errors.New("unknown rule")

// Checker scans a repository and returns its findings.
type Checker func(repo ports.Repository) ([]entities.Finding, error)

var checkers = map[entities.Rule]Checker{
	entities.RuleUniqueIDs:            UniqueIDs,
	entities.RuleCorrespondingEntries: CorrespondingEntries,
}

// ParseRules converts rule names (case-insensitive) into rules.
// An empty list selects every rule.
func ParseRules(names []string) ([]entities.Rule, error) {
	if len(names) == 0 {
		return append([]entities.Rule(nil), entities.AllRules...), nil
	}

	rules := make([]entities.Rule, 0, len(names))
	seen := make(map[entities.Rule]bool, len(names))
	for _, name := range names {
		rule := entities.Rule(strings.ToUpper(strings.TrimSpace(name)))
		if _, ok := checkers[rule]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		if seen[rule] {
			continue
		}
		seen[rule] = true
		rules = append(rules, rule)
	}
	return rules, nil
}

// ValidationOptions configures a ValidationService.
type ValidationOptions struct {
	Rules    []entities.Rule // Rules to run; empty means all
	Parallel bool            // Run checkers concurrently
}

// Report is the outcome of a validation run.
type Report struct {
	Findings    []entities.Finding `json:"findings"`
	Individuals int                `json:"individuals"`
	Families    int                `json:"families"`
}

// CountByRule returns the number of findings per rule.
func (r *Report) CountByRule() map[entities.Rule]int {
	counts := make(map[entities.Rule]int)
	for _, f := range r.Findings {
		counts[f.Rule]++
	}
	return counts
}

// Messages returns the rendered findings in order.
func (r *Report) Messages() []string {
	return entities.Messages(r.Findings)
}

// ValidationService runs the integrity checkers over a repository.
type ValidationService struct {
	rules    []entities.Rule
	parallel bool
	logger   *slog.Logger
}

// NewValidationService creates a new ValidationService.
func NewValidationService(opts ValidationOptions, logger *slog.Logger) *ValidationService {
	rules := opts.Rules
	if len(rules) == 0 {
		rules = entities.AllRules
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidationService{
		rules:    rules,
		parallel: opts.Parallel,
		logger:   logger,
	}
}

// Validate runs every configured rule against repo.
// Findings are always ordered by rule in configuration order, whether or not the
// checkers ran in parallel.
func (s *ValidationService) Validate(ctx context.Context, repo ports.Repository) (*Report, error) {
	report := &Report{}
	if repo != nil {
		report.Individuals = len(repo.Individuals())
		report.Families = len(repo.Families())
	}

	results := make([][]entities.Finding, len(s.rules))

	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, rule := range s.rules {
			g.Go(func() error {
				findings, err := s.run(gctx, rule, repo)
				if err != nil {
					return err
				}
				results[i] = findings
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, rule := range s.rules {
			findings, err := s.run(ctx, rule, repo)
			if err != nil {
				return nil, err
			}
			results[i] = findings
		}
	}

	for _, findings := range results {
		report.Findings = append(report.Findings, findings...)
	}

	s.logger.InfoContext(ctx, "validation complete",
		slog.Int("individuals", report.Individuals),
		slog.Int("families", report.Families),
		slog.Int("findings", len(report.Findings)),
	)

	return report, nil
}

func (s *ValidationService) run(ctx context.Context, rule entities.Rule, repo ports.Repository) ([]entities.Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	check, ok := checkers[rule]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}

	findings, err := check(repo)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", rule, err)
	}

	s.logger.DebugContext(ctx, "rule checked",
		slog.String("rule", string(rule)),
		slog.Int("findings", len(findings)),
	)
	return findings, nil
}
