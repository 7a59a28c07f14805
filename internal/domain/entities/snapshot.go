package entities

import "time"

// Snapshot describes a record set persisted by the record store.
type Snapshot struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Individuals int       `json:"individuals"`
	Families    int       `json:"families"`
	CreatedAt   time.Time `json:"created_at"`
}
