// Package mocks provides mock implementations for testing.
package mocks

import "github.com/ersonp/gedcheck/internal/domain/entities"

// Repository is a mock implementation of ports.Repository.
// Every lookup is served from the exported fields as-is, so tests can hand out
// inconsistent or nil data that a real loader would never produce.
type Repository struct {
	IndividualList []*entities.Individual
	FamilyList     []*entities.Family

	IndividualIDList []string
	FamilyIDList     []string

	IndividualIndex map[string][]*entities.Individual
	FamilyIndex     map[string][]*entities.Family

	// Call tracking
	IndividualsByIDCalls []string
	FamiliesByIDCalls    []string
}

// Individuals returns IndividualList.
func (m *Repository) Individuals() []*entities.Individual {
	return m.IndividualList
}

// Families returns FamilyList.
func (m *Repository) Families() []*entities.Family {
	return m.FamilyList
}

// IndividualIDs returns IndividualIDList.
func (m *Repository) IndividualIDs() []string {
	return m.IndividualIDList
}

// FamilyIDs returns FamilyIDList.
func (m *Repository) FamilyIDs() []string {
	return m.FamilyIDList
}

// IndividualsByID returns the IndividualIndex entry for id.
func (m *Repository) IndividualsByID(id string) []*entities.Individual {
	m.IndividualsByIDCalls = append(m.IndividualsByIDCalls, id)
	return m.IndividualIndex[id]
}

// FamiliesByID returns the FamilyIndex entry for id.
func (m *Repository) FamiliesByID(id string) []*entities.Family {
	m.FamiliesByIDCalls = append(m.FamiliesByIDCalls, id)
	return m.FamilyIndex[id]
}
