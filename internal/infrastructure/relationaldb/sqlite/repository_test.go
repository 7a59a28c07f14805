package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

// sampleSet has a duplicated individual ID and a family without a wife.
func sampleSet() *entities.RecordSet {
	return &entities.RecordSet{
		Individuals: []*entities.Individual{
			{ID: "I1", Line: 1, Name: "John Smith", SpouseOf: []entities.Link{{ID: "F1", Line: 2}, {ID: "F2", Line: 3}}},
			{ID: "I2", Line: 4, ChildOf: []entities.Link{{ID: "F1", Line: 5}}},
			{ID: "I1", Line: 6},
		},
		Families: []*entities.Family{
			{
				ID:       "F1",
				Line:     7,
				Husband:  &entities.Link{ID: "I1", Line: 8},
				Children: []entities.Link{{ID: "I2", Line: 9}, {ID: "I3", Line: 10}},
			},
		},
	}
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	tables := []string{"snapshots", "individuals", "individual_links", "families", "family_children"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_SaveAndLoadSnapshot(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	snap, err := repo.SaveSnapshot(ctx, "tree.ged", sampleSet())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "tree.ged", snap.Source)
	assert.Equal(t, 3, snap.Individuals)
	assert.Equal(t, 1, snap.Families)

	loaded, err := repo.LoadSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleSet(), loaded)
}

func TestRepository_SaveSnapshot_KeepsSnapshotsApart(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.SaveSnapshot(ctx, "a.ged", sampleSet())
	require.NoError(t, err)

	second, err := repo.SaveSnapshot(ctx, "b.ged", &entities.RecordSet{
		Individuals: []*entities.Individual{{ID: "X1", Line: 1}},
	})
	require.NoError(t, err)

	loaded, err := repo.LoadSnapshot(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Individuals, 1)
	assert.Equal(t, "X1", loaded.Individuals[0].ID)
	assert.Empty(t, loaded.Families)

	loaded, err = repo.LoadSnapshot(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Individuals, 3)
}

func TestRepository_SaveSnapshot_Errors(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("nil set", func(t *testing.T) {
		_, err := repo.SaveSnapshot(ctx, "x", nil)
		require.Error(t, err)
	})

	t.Run("nil record rolls back", func(t *testing.T) {
		_, err := repo.SaveSnapshot(ctx, "x", &entities.RecordSet{
			Individuals: []*entities.Individual{{ID: "I1", Line: 1}, nil},
		})
		require.Error(t, err)

		snapshots, err := repo.ListSnapshots(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})
}

func TestRepository_LoadSnapshot_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.LoadSnapshot(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRepository_ListSnapshots(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	timeNow = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	t.Cleanup(func() { timeNow = time.Now })

	for _, source := range []string{"one.ged", "two.ged", "three.ged"} {
		_, err := repo.SaveSnapshot(ctx, source, &entities.RecordSet{})
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		snapshots, err := repo.ListSnapshots(ctx, 0)
		require.NoError(t, err)
		require.Len(t, snapshots, 3)
		assert.Equal(t, "three.ged", snapshots[0].Source)
		assert.Equal(t, "one.ged", snapshots[2].Source)
	})

	t.Run("limit", func(t *testing.T) {
		snapshots, err := repo.ListSnapshots(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, snapshots, 2)
	})
}

func TestRepository_DeleteSnapshot(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	snap, err := repo.SaveSnapshot(ctx, "tree.ged", sampleSet())
	require.NoError(t, err)

	t.Run("delete cascades to records", func(t *testing.T) {
		require.NoError(t, repo.DeleteSnapshot(ctx, snap.ID))

		var count int
		require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM individual_links`).Scan(&count))
		assert.Equal(t, 0, count)
		require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM family_children`).Scan(&count))
		assert.Equal(t, 0, count)

		_, err := repo.LoadSnapshot(ctx, snap.ID)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("delete nonexistent snapshot", func(t *testing.T) {
		err := repo.DeleteSnapshot(ctx, "nonexistent")
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})
}
