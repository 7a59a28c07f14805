package entities

// Family is a family record (GEDCOM FAM).
// Husbands and Wives hold every individual the loader resolved for the husband and wife
// identifiers. They are empty when nothing matched and hold several entries when the
// identifier is duplicated.
type Family struct {
	ID       string `json:"id"`
	Line     int    `json:"line"`
	Husband  *Link  `json:"husband,omitempty"`
	Wife     *Link  `json:"wife,omitempty"`
	Children []Link `json:"children,omitempty"`

	Husbands []*Individual `json:"-"`
	Wives    []*Individual `json:"-"`
}

// HusbandID returns the husband identifier, or "" when none is declared.
func (f *Family) HusbandID() string {
	if f.Husband == nil {
		return ""
	}
	return f.Husband.ID
}

// WifeID returns the wife identifier, or "" when none is declared.
func (f *Family) WifeID() string {
	if f.Wife == nil {
		return ""
	}
	return f.Wife.ID
}

// ChildIDs returns the declared child identifiers in order.
func (f *Family) ChildIDs() []string {
	return linkIDs(f.Children)
}

// HasSpouse reports whether individualID is the declared husband or wife.
func (f *Family) HasSpouse(individualID string) bool {
	return (f.Husband != nil && f.Husband.ID == individualID) ||
		(f.Wife != nil && f.Wife.ID == individualID)
}

// HasChild reports whether individualID is a declared child.
func (f *Family) HasChild(individualID string) bool {
	return containsID(f.Children, individualID)
}

// RecordSet is the ordered output of a loader.
type RecordSet struct {
	Individuals []*Individual `json:"individuals"`
	Families    []*Family     `json:"families"`
}
