// Package memory provides an in-memory, duplicate-indexed implementation of ports.Repository.
package memory

import "github.com/ersonp/gedcheck/internal/domain/entities"

// Repository implements ports.Repository over a loaded record set.
// It is read-only once constructed.
type Repository struct {
	individuals []*entities.Individual
	families    []*entities.Family

	individualIDs []string
	familyIDs     []string

	individualsByID map[string][]*entities.Individual
	familiesByID    map[string][]*entities.Family
}

// NewRepository indexes set and resolves every family's husband and wife identifiers.
// Records sharing an identifier are all kept, in load order.
func NewRepository(set *entities.RecordSet) *Repository {
	r := &Repository{
		individualsByID: make(map[string][]*entities.Individual),
		familiesByID:    make(map[string][]*entities.Family),
	}
	if set == nil {
		return r
	}

	r.individuals = set.Individuals
	r.families = set.Families

	for _, ind := range set.Individuals {
		if ind == nil {
			continue
		}
		if _, ok := r.individualsByID[ind.ID]; !ok {
			r.individualIDs = append(r.individualIDs, ind.ID)
		}
		r.individualsByID[ind.ID] = append(r.individualsByID[ind.ID], ind)
	}

	for _, fam := range set.Families {
		if fam == nil {
			continue
		}
		if _, ok := r.familiesByID[fam.ID]; !ok {
			r.familyIDs = append(r.familyIDs, fam.ID)
		}
		r.familiesByID[fam.ID] = append(r.familiesByID[fam.ID], fam)

		fam.Husbands = r.resolve(fam.HusbandID())
		fam.Wives = r.resolve(fam.WifeID())
	}

	return r
}

func (r *Repository) resolve(id string) []*entities.Individual {
	if id == "" {
		return nil
	}
	return r.individualsByID[id]
}

// Individuals returns every individual in load order.
func (r *Repository) Individuals() []*entities.Individual {
	return r.individuals
}

// Families returns every family in load order.
func (r *Repository) Families() []*entities.Family {
	return r.families
}

// IndividualIDs returns the distinct individual identifiers in first-seen order.
func (r *Repository) IndividualIDs() []string {
	return r.individualIDs
}

// FamilyIDs returns the distinct family identifiers in first-seen order.
func (r *Repository) FamilyIDs() []string {
	return r.familyIDs
}

// IndividualsByID returns every individual with the given identifier.
func (r *Repository) IndividualsByID(id string) []*entities.Individual {
	return r.individualsByID[id]
}

// FamiliesByID returns every family with the given identifier.
func (r *Repository) FamiliesByID(id string) []*entities.Family {
	return r.familiesByID[id]
}
