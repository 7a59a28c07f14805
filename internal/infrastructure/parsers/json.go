package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// JSONParser parses record sets from JSON format:
//
//	{"individuals": [{"id": "I1", "line": 3, "spouse_of": [{"id": "F1", "line": 5}]}],
//	 "families":    [{"id": "F1", "line": 9, "husband": {"id": "I1", "line": 10}}]}
type JSONParser struct{}

// Parse reads JSON from the reader and returns the record set.
func (p *JSONParser) Parse(r io.Reader) (*entities.RecordSet, error) {
	var set entities.RecordSet

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Records without an explicit line get their array position (1-indexed)
	for i, ind := range set.Individuals {
		if ind == nil {
			return nil, fmt.Errorf("individual %d: null record", i+1)
		}
		if ind.Line == 0 {
			ind.Line = i + 1
		}
	}
	for i, fam := range set.Families {
		if fam == nil {
			return nil, fmt.Errorf("family %d: null record", i+1)
		}
		if fam.Line == 0 {
			fam.Line = i + 1
		}
	}

	if set.Individuals == nil {
		set.Individuals = []*entities.Individual{}
	}
	if set.Families == nil {
		set.Families = []*entities.Family{}
	}

	return &set, nil
}
