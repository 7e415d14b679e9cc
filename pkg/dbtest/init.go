package dbtest

import (
	"os"
	"path/filepath"
	"testing"

	fixtures "github.com/aquasecurity/bolt-fixtures"
	"github.com/stretchr/testify/require"

	"github.com/secincident/incident-db/pkg/db"
)

// InitDB loads the YAML fixtures into a fresh database under a temp dir and
// opens it. The caller must call db.Close.
func InitDB(t *testing.T, fixtureFiles []string) string {
	t.Helper()

	cacheDir := t.TempDir()
	dbPath := db.Path(cacheDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(dbPath), 0700))

	loader, err := fixtures.New(dbPath, fixtureFiles)
	require.NoError(t, err)
	require.NoError(t, loader.Load())
	require.NoError(t, loader.Close())

	require.NoError(t, db.Init(cacheDir))

	return cacheDir
}
