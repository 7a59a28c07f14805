package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/gedcheck/internal/domain/mocks"
	"github.com/ersonp/gedcheck/internal/domain/ports"
	"github.com/ersonp/gedcheck/internal/infrastructure/config"
)

func TestInitHandler_Handle(t *testing.T) {
	t.Run("writes config and schema", func(t *testing.T) {
		tmpDir := t.TempDir()
		var openedPath string
		handler := NewInitHandler(func(path string) (ports.RecordStore, error) {
			openedPath = path
			return mocks.NewRecordStore(), nil
		})

		result, err := handler.Handle(t.Context(), tmpDir)
		require.NoError(t, err)

		assert.True(t, config.Exists(tmpDir))
		assert.Equal(t, config.ConfigFilePath(tmpDir), result.ConfigPath)
		assert.Equal(t, config.Default().SQLitePath(tmpDir), openedPath)
		assert.Equal(t, openedPath, result.DatabasePath)
	})

	t.Run("without store", func(t *testing.T) {
		tmpDir := t.TempDir()
		handler := NewInitHandler(nil)

		result, err := handler.Handle(t.Context(), tmpDir)
		require.NoError(t, err)
		assert.Empty(t, result.DatabasePath)
	})

	t.Run("already initialized", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, config.WriteDefault(tmpDir))

		_, err := NewInitHandler(nil).Handle(t.Context(), tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already initialized")
	})

	t.Run("schema error", func(t *testing.T) {
		tmpDir := t.TempDir()
		handler := NewInitHandler(func(string) (ports.RecordStore, error) {
			store := mocks.NewRecordStore()
			store.Err = errors.New("locked")
			return store, nil
		})

		_, err := handler.Handle(t.Context(), tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating snapshot schema")
	})
}
