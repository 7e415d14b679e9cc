package vulnsrctest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/dbtest"
)

type Updater interface {
	Update(dir string) (err error)
}

type WantValues struct {
	Key   []string
	Value interface{}
}

type TestUpdateArgs struct {
	Dir        string
	WantValues []WantValues
	WantErr    string
	NoBuckets  [][]string
}

// TestUpdate runs the importer against args.Dir on a fresh database and
// compares the stored values.
func TestUpdate(t *testing.T, vulnsrc Updater, args TestUpdateArgs) {
	t.Helper()

	tempDir := t.TempDir()
	dbPath := db.Path(tempDir)

	err := db.Init(tempDir)
	require.NoError(t, err)
	defer db.Close()

	err = vulnsrc.Update(args.Dir)
	if args.WantErr != "" {
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), args.WantErr)
		return
	}

	require.NoError(t, err)
	require.NoError(t, db.Close()) // Need to close before dbtest.JSONEq is called
	for _, want := range args.WantValues {
		dbtest.JSONEq(t, dbPath, want.Key, want.Value, want.Key)
	}

	for _, noBucket := range args.NoBuckets {
		dbtest.NoBucket(t, dbPath, noBucket, noBucket)
	}
}
