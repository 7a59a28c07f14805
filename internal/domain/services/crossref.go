package services

import (
	"fmt"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

const notFound = "not found"

// CorrespondingEntries reports every individual/family link that does not resolve to a
// record declaring the matching reverse link (US26).
//
// Three sweeps run in order: individual spouse-of links, individual child-of links, then
// family spouse and child links. When an identifier is shared by several records every
// candidate is checked and each mismatching candidate yields its own finding.
func CorrespondingEntries(repo ports.Repository) ([]entities.Finding, error) {
	if repo == nil {
		return nil, nil
	}

	s := &crossRefScan{repo: repo}
	for _, sweep := range []func() error{s.spouseOfLinks, s.childOfLinks, s.familyLinks} {
		if err := sweep(); err != nil {
			return nil, err
		}
	}
	return s.findings, nil
}

// crossRefScan accumulates findings across the sweeps of a single run.
type crossRefScan struct {
	repo     ports.Repository
	findings []entities.Finding
}

func (s *crossRefScan) spouseOfLinks() error {
	return s.individualLinks("spouse",
		func(ind *entities.Individual) []entities.Link { return ind.SpouseOf },
		(*entities.Family).HasSpouse)
}

func (s *crossRefScan) childOfLinks() error {
	return s.individualLinks("child",
		func(ind *entities.Individual) []entities.Link { return ind.ChildOf },
		(*entities.Family).HasChild)
}

// individualLinks checks one kind of individual-to-family link against every candidate family.
func (s *crossRefScan) individualLinks(
	role string,
	links func(*entities.Individual) []entities.Link,
	declares func(*entities.Family, string) bool,
) error {
	for i, ind := range s.repo.Individuals() {
		if ind == nil {
			return fmt.Errorf("individual at position %d is nil: %w", i, ErrMalformedRepository)
		}
		for _, link := range links(ind) {
			families := s.repo.FamiliesByID(link.ID)
			if len(families) == 0 {
				s.add(entities.CategoryUnresolvedReference,
					"Individual(%s) is not a %s of (at line %d) the corresponding family(%s %s)",
					ind.ID, role, link.Line, link.ID, notFound)
				continue
			}
			for j, fam := range families {
				if fam == nil {
					return fmt.Errorf("family %q entry %d is nil: %w", link.ID, j, ErrMalformedRepository)
				}
				if declares(fam, ind.ID) {
					continue
				}
				s.add(entities.CategoryInconsistentReference,
					"Individual(%s) is not a %s of (at line %d) the corresponding family(%s at line %d)",
					ind.ID, role, link.Line, link.ID, fam.Line)
			}
		}
	}
	return nil
}

func (s *crossRefScan) familyLinks() error {
	for i, fam := range s.repo.Families() {
		if fam == nil {
			return fmt.Errorf("family at position %d is nil: %w", i, ErrMalformedRepository)
		}
		if err := s.spouse(fam, fam.Husband, fam.Husbands); err != nil {
			return err
		}
		if err := s.spouse(fam, fam.Wife, fam.Wives); err != nil {
			return err
		}
		if err := s.children(fam); err != nil {
			return err
		}
	}
	return nil
}

// spouse checks a husband or wife link against the individuals the loader resolved for it.
func (s *crossRefScan) spouse(fam *entities.Family, link *entities.Link, resolved []*entities.Individual) error {
	if link == nil || link.ID == "" {
		return nil
	}
	if len(resolved) == 0 {
		s.add(entities.CategoryUnresolvedReference,
			"Family(%s) spouse at line %d does not correspond to individual(%s %s)",
			fam.ID, link.Line, link.ID, notFound)
		return nil
	}
	for j, ind := range resolved {
		if ind == nil {
			return fmt.Errorf("family %q spouse %q candidate %d is nil: %w", fam.ID, link.ID, j, ErrMalformedRepository)
		}
		if ind.IsSpouseOf(fam.ID) {
			continue
		}
		s.add(entities.CategoryInconsistentReference,
			"Family(%s) spouse at line %d does not correspond to individual(%s at line %d)",
			fam.ID, link.Line, link.ID, ind.Line)
	}
	return nil
}

func (s *crossRefScan) children(fam *entities.Family) error {
	for _, link := range fam.Children {
		candidates := s.repo.IndividualsByID(link.ID)
		if len(candidates) == 0 {
			s.add(entities.CategoryUnresolvedReference,
				"Family(%s) child at line %d does not correspond to individual(%s %s)",
				fam.ID, link.Line, link.ID, notFound)
			continue
		}
		for j, child := range candidates {
			if child == nil {
				return fmt.Errorf("individual %q entry %d is nil: %w", link.ID, j, ErrMalformedRepository)
			}
			if child.IsChildOf(fam.ID) {
				continue
			}
			s.add(entities.CategoryInconsistentReference,
				"Family(%s) child at line %d does not correspond to individual(%s at line %d)",
				fam.ID, link.Line, link.ID, child.Line)
		}
	}
	return nil
}

func (s *crossRefScan) add(category entities.Category, format string, args ...any) {
	s.findings = append(s.findings, entities.Finding{
		Rule:     entities.RuleCorrespondingEntries,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}
