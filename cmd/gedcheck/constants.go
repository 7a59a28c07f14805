package main

import "time"

// Default limits for CLI commands.
const (
	DefaultSnapshotListLimit = 50
	WatchDebounce            = 500 * time.Millisecond
)

// Valid report formats.
var validFormats = []string{"text", "json", "csv"}
