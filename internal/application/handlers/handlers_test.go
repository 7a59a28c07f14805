package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const brokenGEDCOM = `0 HEAD
0 @I1@ INDI
1 NAME John /Smith/
1 FAMS @F1@
0 @I1@ INDI
1 NAME John /Smyth/
0 @F1@ FAM
1 HUSB @I1@
1 CHIL @I7@
0 TRLR
`

// writeFile writes content under a temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
