// Package entities contains core domain data structures.
package entities

// Link is a reference to another record together with the source line that declared it.
type Link struct {
	ID   string `json:"id"`
	Line int    `json:"line"`
}

// Individual is a person record (GEDCOM INDI).
type Individual struct {
	ID       string `json:"id"`
	Line     int    `json:"line"`
	Name     string `json:"name,omitempty"`
	SpouseOf []Link `json:"spouse_of,omitempty"` // FAMS
	ChildOf  []Link `json:"child_of,omitempty"`  // FAMC
}

// SpouseOfIDs returns the family identifiers the individual claims to be a spouse in.
func (i *Individual) SpouseOfIDs() []string {
	return linkIDs(i.SpouseOf)
}

// ChildOfIDs returns the family identifiers the individual claims to be a child of.
func (i *Individual) ChildOfIDs() []string {
	return linkIDs(i.ChildOf)
}

// IsSpouseOf reports whether the individual declares a spouse-of link to familyID.
func (i *Individual) IsSpouseOf(familyID string) bool {
	return containsID(i.SpouseOf, familyID)
}

// IsChildOf reports whether the individual declares a child-of link to familyID.
func (i *Individual) IsChildOf(familyID string) bool {
	return containsID(i.ChildOf, familyID)
}

func linkIDs(links []Link) []string {
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	return ids
}

func containsID(links []Link, id string) bool {
	for _, l := range links {
		if l.ID == id {
			return true
		}
	}
	return false
}
