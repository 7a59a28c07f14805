package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

// ErrMalformedRepository is returned when a repository hands out nil records.
var ErrMalformedRepository = errors.New("malformed repository")

// UniqueIDs reports every individual and family identifier shared by more than one record (US22).
// One finding is produced per identifier, listing the line of every record that shares it.
func UniqueIDs(repo ports.Repository) ([]entities.Finding, error) {
	if repo == nil {
		return nil, nil
	}

	var findings []entities.Finding

	for _, id := range repo.IndividualIDs() {
		individuals := repo.IndividualsByID(id)
		if len(individuals) < 2 {
			continue
		}
		lines := make([]int, len(individuals))
		for i, ind := range individuals {
			if ind == nil {
				return nil, fmt.Errorf("individual %q entry %d is nil: %w", id, i, ErrMalformedRepository)
			}
			lines[i] = ind.Line
		}
		findings = append(findings, duplicateFinding("Individual", id, lines))
	}

	for _, id := range repo.FamilyIDs() {
		families := repo.FamiliesByID(id)
		if len(families) < 2 {
			continue
		}
		lines := make([]int, len(families))
		for i, fam := range families {
			if fam == nil {
				return nil, fmt.Errorf("family %q entry %d is nil: %w", id, i, ErrMalformedRepository)
			}
			lines[i] = fam.Line
		}
		findings = append(findings, duplicateFinding("Family", id, lines))
	}

	return findings, nil
}

func duplicateFinding(kind, id string, lines []int) entities.Finding {
	return entities.Finding{
		Rule:     entities.RuleUniqueIDs,
		Category: entities.CategoryDuplicateID,
		Message:  fmt.Sprintf("%s ID (%s) is not unique (at line %s)", kind, id, joinLines(lines)),
	}
}

func joinLines(lines []int) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(l))
	}
	return b.String()
}
