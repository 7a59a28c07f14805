// Package ports defines interfaces for external service communication.
package ports

import "github.com/ersonp/gedcheck/internal/domain/entities"

// Repository is a read-only view over a loaded record set.
// Lookups are list-valued because identifiers are not guaranteed to be unique.
type Repository interface {
	// Individuals returns every individual in load order.
	Individuals() []*entities.Individual

	// Families returns every family in load order.
	Families() []*entities.Family

	// IndividualIDs returns the distinct individual identifiers in first-seen order.
	IndividualIDs() []string

	// FamilyIDs returns the distinct family identifiers in first-seen order.
	FamilyIDs() []string

	// IndividualsByID returns every individual with the given identifier, in load order.
	// Returns an empty slice if none exist.
	IndividualsByID(id string) []*entities.Individual

	// FamiliesByID returns every family with the given identifier, in load order.
	// Returns an empty slice if none exist.
	FamiliesByID(id string) []*entities.Family
}
