package mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// RecordStore is a mock implementation of ports.RecordStore backed by a map.
type RecordStore struct {
	Sets      map[string]*entities.RecordSet
	Snapshots []entities.Snapshot
	Err       error

	nextID int
}

// NewRecordStore creates a new mock RecordStore.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		Sets: make(map[string]*entities.RecordSet),
	}
}

// EnsureSchema returns the configured error.
func (m *RecordStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the store.
func (m *RecordStore) Close() error {
	return nil
}

// SaveSnapshot stores set under a sequential ID.
func (m *RecordStore) SaveSnapshot(_ context.Context, source string, set *entities.RecordSet) (*entities.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.nextID++
	snap := entities.Snapshot{
		ID:          fmt.Sprintf("snapshot-%d", m.nextID),
		Source:      source,
		Individuals: len(set.Individuals),
		Families:    len(set.Families),
		CreatedAt:   time.Now(),
	}
	m.Sets[snap.ID] = set
	m.Snapshots = append([]entities.Snapshot{snap}, m.Snapshots...)
	return &snap, nil
}

// LoadSnapshot returns the stored set.
func (m *RecordStore) LoadSnapshot(_ context.Context, id string) (*entities.RecordSet, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	set, ok := m.Sets[id]
	if !ok {
		return nil, errors.New("snapshot not found")
	}
	return set, nil
}

// ListSnapshots returns stored snapshots, newest first.
func (m *RecordStore) ListSnapshots(_ context.Context, limit int) ([]entities.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Snapshots) {
		return m.Snapshots[:limit], nil
	}
	return m.Snapshots, nil
}

// DeleteSnapshot removes a stored set.
func (m *RecordStore) DeleteSnapshot(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Sets, id)
	for i, s := range m.Snapshots {
		if s.ID == id {
			m.Snapshots = append(m.Snapshots[:i], m.Snapshots[i+1:]...)
			break
		}
	}
	return nil
}
