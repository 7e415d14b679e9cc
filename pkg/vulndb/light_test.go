package vulndb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	fake "k8s.io/utils/clock/testing"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/dbtest"
	"github.com/secincident/incident-db/pkg/metadata"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/vulndb"
	"github.com/secincident/incident-db/pkg/vulnsrc"
)

func Test_lightDB_Build(t *testing.T) {
	tests := []struct {
		name         string
		severities   map[string]string
		wantSeverity map[string]types.Severity
		wantCounts   map[string]int
		wantErr      string
	}{
		{
			name: "happy path",
			severities: map[string]string{
				"CVE-2007-0001": "HIGH",
				"CVE-2007-0002": "MEDIUM",
			},
			wantSeverity: map[string]types.Severity{
				"CVE-2007-0001": types.SeverityHigh,
				"CVE-2007-0002": types.SeverityMedium,
			},
			wantCounts: map[string]int{"definition": 0, "severity": 2, "incident": 0},
		},
		{
			name: "broken severity",
			severities: map[string]string{
				"CVE-2007-0001": "BROKEN",
			},
			wantErr: "unknown severity: BROKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cacheDir := dbtest.InitDB(t, []string{"testdata/fixtures/definition.yaml"})
			defer db.Close()
			putSeverities(t, tt.severities)

			clock := fake.NewFakeClock(time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC))
			light := vulndb.New(db.TypeLight, cacheDir, 12*time.Hour,
				vulndb.WithClock(clock), vulndb.WithVulnSrcs(map[types.SourceID]vulnsrc.VulnSrc{}))
			err := light.Build(nil)
			if tt.wantErr != "" {
				require.NotNil(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			dbc := db.Config{}
			for name, want := range tt.wantSeverity {
				got, err := dbc.GetSeverity(name)
				require.NoError(t, err)
				assert.Equal(t, want, got, name)

				_, err = dbc.GetDefinition(name)
				assert.ErrorContains(t, err, "no such definition", name)
			}

			got, err := metadata.NewClient(db.Dir(cacheDir)).Get()
			require.NoError(t, err)
			assert.Equal(t, "light", got.Type)
			assert.Equal(t, tt.wantCounts, got.Counts)
		})
	}
}

// putSeverities writes raw values into the severity bucket.
func putSeverities(t *testing.T, severities map[string]string) {
	t.Helper()
	err := db.Config{}.BatchUpdate(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte("severity"))
		if err != nil {
			return err
		}
		for name, severity := range severities {
			if err = bkt.Put([]byte(name), []byte(severity)); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}
