// Package handlers contains application use case handlers.
package handlers

import (
	"fmt"
	"os"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/infrastructure/parsers"
)

// loadFile parses a record file. format may be "auto" or empty to pick by extension.
func loadFile(filePath, format string) (*entities.RecordSet, error) {
	parser := parsers.Resolve(format, filePath)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	set, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return set, nil
}
