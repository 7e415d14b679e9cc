package sheet_test

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secincident/incident-db/pkg/sheet"
)

func readAll(t *testing.T, r sheet.Reader) ([]sheet.Row, error) {
	t.Helper()
	var rows []sheet.Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		} else if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func TestCSVReader(t *testing.T) {
	mapping, err := sheet.LoadMapping("testdata/mapping.yaml")
	require.NoError(t, err)

	f, err := os.Open("testdata/incidents.csv")
	require.NoError(t, err)
	defer f.Close()

	r, err := sheet.NewCSVReader(f, mapping)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "date", "country", "definitions"}, r.Fields())

	rows, err := readAll(t, r)
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank rows are skipped")

	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "INC-0001", rows[0].Get("id"))
	assert.Equal(t, "2007-02-01", rows[0].Get("date"))
	assert.Equal(t, "CVE-2007-0001;CVE-2007-0002", rows[0].Get("definitions"))

	assert.Equal(t, 3, rows[1].Number)
	assert.Equal(t, "DE, Berlin", rows[1].Get("country"))
	v, ok := rows[1].Lookup("date")
	assert.True(t, ok)
	assert.Empty(t, v)
	_, ok = rows[1].Lookup("sector")
	assert.False(t, ok)
}

func TestCSVReader_WithoutMapping(t *testing.T) {
	r, err := sheet.NewCSVReader(strings.NewReader("\ufeffIncident ID,  Loss (USD)\nA-1,100\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"incident_id", "loss_(usd)"}, r.Fields())

	rows, err := readAll(t, r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].Get("loss_(usd)"))
}

func TestCSVReader_Empty(t *testing.T) {
	r, err := sheet.NewCSVReader(strings.NewReader(""), nil)
	require.NoError(t, err)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVReader_Ragged(t *testing.T) {
	f, err := os.Open("testdata/ragged.csv")
	require.NoError(t, err)
	defer f.Close()

	r, err := sheet.NewCSVReader(f, nil)
	require.NoError(t, err)

	rows, err := readAll(t, r)
	assert.ErrorIs(t, err, csv.ErrFieldCount)
	assert.Len(t, rows, 1)
}

func TestLoadMapping(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    sheet.Mapping
		wantErr string
	}{
		{
			name: "happy path",
			path: "testdata/mapping.yaml",
			want: sheet.Mapping{
				"incident_number": "id",
				"attack_date":     "date",
				"exploited_cves":  "definitions",
			},
		},
		{
			name:    "not a mapping",
			path:    "testdata/broken-mapping.yaml",
			wantErr: "yaml decode error",
		},
		{
			name:    "missing file",
			path:    "testdata/missing.yaml",
			wantErr: "file read error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sheet.LoadMapping(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
