package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

const (
	maxGEDCOMLine = 1024 * 1024
	utf8BOM       = "\ufeff"
)

// GEDCOMParser parses INDI and FAM records from GEDCOM text.
// Only the tags needed for cross-reference checks are interpreted; everything else is skipped.
type GEDCOMParser struct{}

// gedcomLine is a single "level [@xref@] TAG [value]" line.
type gedcomLine struct {
	level int
	xref  string
	tag   string
	value string
}

// Parse reads GEDCOM from the reader and returns the record set.
func (p *GEDCOMParser) Parse(r io.Reader) (*entities.RecordSet, error) {
	set := &entities.RecordSet{
		Individuals: []*entities.Individual{},
		Families:    []*entities.Family{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxGEDCOMLine)

	var (
		ind *entities.Individual
		fam *entities.Family
	)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if lineNum == 1 {
			text = strings.TrimPrefix(text, utf8BOM)
		}

		line, ok, err := parseGEDCOMLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if !ok {
			continue
		}

		if line.level == 0 {
			ind, fam = nil, nil
			switch line.tag {
			case "INDI":
				ind = &entities.Individual{ID: stripPointer(line.xref), Line: lineNum}
				set.Individuals = append(set.Individuals, ind)
			case "FAM":
				fam = &entities.Family{ID: stripPointer(line.xref), Line: lineNum}
				set.Families = append(set.Families, fam)
			}
			continue
		}

		if line.level != 1 {
			continue
		}

		switch {
		case ind != nil:
			applyIndividualTag(ind, line, lineNum)
		case fam != nil:
			applyFamilyTag(fam, line, lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading GEDCOM: %w", err)
	}

	return set, nil
}

func applyIndividualTag(ind *entities.Individual, line gedcomLine, lineNum int) {
	switch line.tag {
	case "NAME":
		ind.Name = strings.Join(strings.Fields(strings.ReplaceAll(line.value, "/", " ")), " ")
	case "FAMS":
		if id := stripPointer(line.value); id != "" {
			ind.SpouseOf = append(ind.SpouseOf, entities.Link{ID: id, Line: lineNum})
		}
	case "FAMC":
		if id := stripPointer(line.value); id != "" {
			ind.ChildOf = append(ind.ChildOf, entities.Link{ID: id, Line: lineNum})
		}
	}
}

func applyFamilyTag(fam *entities.Family, line gedcomLine, lineNum int) {
	id := stripPointer(line.value)
	if id == "" {
		return
	}
	switch line.tag {
	case "HUSB":
		fam.Husband = &entities.Link{ID: id, Line: lineNum}
	case "WIFE":
		fam.Wife = &entities.Link{ID: id, Line: lineNum}
	case "CHIL":
		fam.Children = append(fam.Children, entities.Link{ID: id, Line: lineNum})
	}
}

// parseGEDCOMLine splits a raw line. ok is false for blank lines.
func parseGEDCOMLine(text string) (gedcomLine, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return gedcomLine{}, false, nil
	}

	levelStr, rest, _ := strings.Cut(text, " ")
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 0 {
		return gedcomLine{}, false, fmt.Errorf("invalid level %q", levelStr)
	}

	var line gedcomLine
	line.level = level

	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, "@") {
		line.xref, rest, _ = strings.Cut(rest, " ")
		rest = strings.TrimLeft(rest, " ")
	}

	tag, value, _ := strings.Cut(rest, " ")
	if tag == "" {
		return gedcomLine{}, false, fmt.Errorf("missing tag")
	}
	line.tag = strings.ToUpper(tag)
	line.value = strings.TrimSpace(value)

	return line, true, nil
}

// stripPointer removes the @ delimiters from a GEDCOM cross-reference pointer.
func stripPointer(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, "@") && strings.HasSuffix(s, "@") {
		return s[1 : len(s)-1]
	}
	return s
}
