package metadata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secincident/incident-db/pkg/metadata"
)

func TestClient(t *testing.T) {
	dbDir := t.TempDir()
	c := metadata.NewClient(dbDir)

	_, err := c.Get()
	assert.ErrorContains(t, err, "file open error")

	want := metadata.Metadata{
		Version:    1,
		Type:       "light",
		NextUpdate: time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
		UpdatedAt:  time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC),
		Counts:     map[string]int{"severity": 2},
	}
	require.NoError(t, c.Update(want))

	got, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.FileExists(t, metadata.Path(dbDir))

	require.NoError(t, c.Delete())
	assert.NoFileExists(t, metadata.Path(dbDir))
}
