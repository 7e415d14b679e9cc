package incident

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secincident/incident-db/pkg/sheet"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/vulnsrctest"
)

func TestVulnSrc_Update(t *testing.T) {
	tests := []struct {
		name       string
		dir        string
		wantValues []vulnsrctest.WantValues
		noBuckets  [][]string
		wantErr    string
	}{
		{
			name: "happy path",
			dir:  filepath.Join("testdata", "happy"),
			wantValues: []vulnsrctest.WantValues{
				{
					Key:   []string{"data-source", "incident"},
					Value: incidentSource,
				},
				{
					Key:   []string{"data-source", "socioeconomic"},
					Value: indicatorSource,
				},
				{
					Key: []string{"incident", "INC-0001"},
					Value: types.Incident{
						ID:          "INC-0001",
						Date:        lo.ToPtr(time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC)),
						Country:     "NL",
						Sector:      "Finance",
						Actor:       "unknown",
						Definitions: []string{"CVE-2007-0001", "CVE-2007-0002"},
						Loss:        lo.ToPtr(12000.5),
						Summary:     "Kernel DoS against trading hosts",
					},
				},
				{
					Key: []string{"incident", "INC-0002"},
					Value: types.Incident{
						ID:      "INC-0002",
						Country: "DE, Berlin",
						Sector:  "Government",
						Summary: "Defacement",
					},
				},
				{
					Key: []string{"socioeconomic", "NL", "gdp_per_capita", "2007"},
					Value: types.Indicator{
						Country: "NL",
						Name:    "gdp_per_capita",
						Year:    2007,
						Value:   50338.3,
						Unit:    "USD",
					},
				},
				{
					Key: []string{"socioeconomic", "DE", "population", "2007"},
					Value: types.Indicator{
						Country: "DE",
						Name:    "population",
						Year:    2007,
						Value:   82.3,
						Unit:    "million",
					},
				},
			},
		},
		{
			name: "without socioeconomic datasets",
			dir:  filepath.Join("testdata", "nosocio"),
			wantValues: []vulnsrctest.WantValues{
				{
					Key:   []string{"data-source", "incident"},
					Value: incidentSource,
				},
			},
			noBuckets: [][]string{
				{"socioeconomic"},
			},
		},
		{
			name:    "missing id",
			dir:     filepath.Join("testdata", "sad"),
			wantErr: "missing mandatory field",
		},
		{
			name:    "malformed date",
			dir:     filepath.Join("testdata", "baddate"),
			wantErr: "invalid field",
		},
		{
			name:    "no incident datasets",
			dir:     filepath.Join("testdata", "missing"),
			wantErr: "incident walk error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vulnsrctest.TestUpdate(t, NewVulnSrc(), vulnsrctest.TestUpdateArgs{
				Dir:        tt.dir,
				WantValues: tt.wantValues,
				NoBuckets:  tt.noBuckets,
				WantErr:    tt.wantErr,
			})
		})
	}
}

func Test_parseIncident(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		want    types.Incident
		wantErr error
	}{
		{
			name:   "minimal",
			fields: map[string]string{"id": " INC-1 "},
			want:   types.Incident{ID: "INC-1"},
		},
		{
			name:   "definitions are normalized",
			fields: map[string]string{"id": "INC-1", "definitions": "cve-2007-0001;;CVE-2007-0001 ; "},
			want:   types.Incident{ID: "INC-1", Definitions: []string{"CVE-2007-0001"}},
		},
		{
			name:    "blank id",
			fields:  map[string]string{"id": "  ", "country": "NL"},
			wantErr: ErrMissingField,
		},
		{
			name:    "malformed loss",
			fields:  map[string]string{"id": "INC-1", "loss": "12k"},
			wantErr: ErrInvalidField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIncident(sheet.NewRow(1, tt.fields))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_parseIndicator(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		want    types.Indicator
		wantErr error
	}{
		{
			name:   "happy path",
			fields: map[string]string{"country": "NL", "indicator": "population", "year": "2007", "value": "16.4"},
			want:   types.Indicator{Country: "NL", Name: "population", Year: 2007, Value: 16.4},
		},
		{
			name:    "missing indicator",
			fields:  map[string]string{"country": "NL", "year": "2007", "value": "16.4"},
			wantErr: ErrMissingField,
		},
		{
			name:    "malformed year",
			fields:  map[string]string{"country": "NL", "indicator": "population", "year": "FY07", "value": "16.4"},
			wantErr: ErrInvalidField,
		},
		{
			name:    "missing value",
			fields:  map[string]string{"country": "NL", "indicator": "population", "year": "2007"},
			wantErr: ErrInvalidField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndicator(sheet.NewRow(1, tt.fields))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
