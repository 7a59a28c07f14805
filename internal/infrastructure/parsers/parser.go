// Package parsers provides loaders that turn genealogical record files into record sets.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// Parser defines the interface for parsing record sets from various formats.
type Parser interface {
	Parse(r io.Reader) (*entities.RecordSet, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "gedcom" (alias "ged"), "json".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "gedcom", "ged":
		return &GEDCOMParser{}
	case "json":
		return &JSONParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ged", ".gedcom":
		return &GEDCOMParser{}
	case ".json":
		return &JSONParser{}
	default:
		return nil
	}
}

// Resolve picks a parser by explicit format, falling back to the file extension
// when format is empty or "auto".
func Resolve(format, filename string) Parser {
	if format == "" || format == "auto" {
		return ForFile(filename)
	}
	return ForFormat(format)
}
