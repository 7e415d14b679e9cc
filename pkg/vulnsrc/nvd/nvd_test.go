package nvd

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/vulnsrctest"
)

func TestVulnSrc_Update(t *testing.T) {
	published := time.Date(2007, 1, 2, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2007, 1, 5, 0, 0, 0, 0, time.UTC)

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
					Key:   []string{"data-source", "definition"},
					Value: source,
				},
				{
					Key: []string{"definition", "CVE-2007-0001"},
					Value: types.Definition{
						Name:                  "CVE-2007-0001",
						Type:                  "CVE",
						Published:             &published,
						Modified:              &modified,
						Severity:              types.SeverityHigh,
						CvssVersion:           "2.0",
						CvssBaseScore:         lo.ToPtr(7.8),
						CvssImpactSubscore:    lo.ToPtr(6.9),
						CvssExploitSubscore:   lo.ToPtr(10.0),
						AccessVector:          types.AccessVectorNetwork,
						AccessComplexity:      types.AccessComplexityLow,
						Authentication:        types.AuthenticationNone,
						ConfidentialityImpact: types.ImpactNone,
						IntegrityImpact:       types.ImpactNone,
						AvailabilityImpact:    types.ImpactComplete,
						PrimaryDescription:    "The kernel key management code allows local users to cause a denial of service.",
						LossType:              &types.LossType{Availability: true},
						RangeType:             &types.RangeType{Network: true},
						References: []types.Reference{
							{
								Source: "BID",
								URL:    "http://www.securityfocus.com/bid/22181",
								Name:   "22181",
								Patch:  true,
							},
						},
					},
				},
				{
					Key: []string{"definition", "CVE-2007-0002"},
					Value: types.Definition{
						Name:                  "CVE-2007-0002",
						Type:                  "CVE",
						Published:             lo.ToPtr(time.Date(2007, 1, 3, 0, 0, 0, 0, time.UTC)),
						Modified:              lo.ToPtr(time.Date(2007, 1, 3, 0, 0, 0, 0, time.UTC)),
						Severity:              types.SeverityMedium,
						CvssBaseScore:         lo.ToPtr(4.3),
						AccessVector:          types.AccessVectorNetwork,
						AccessComplexity:      types.AccessComplexityMedium,
						Authentication:        types.AuthenticationNone,
						ConfidentialityImpact: types.ImpactNone,
						IntegrityImpact:       types.ImpactPartial,
						AvailabilityImpact:    types.ImpactNone,
						PrimaryDescription:    "Cross-site scripting in the search page.",
						VulnerableSoftware: []types.Product{
							{
								Vendor:   "example",
								Name:     "search",
								Versions: []types.Version{{Number: "1.0", Previous: true}},
							},
						},
					},
				},
				{
					Key: []string{"definition", "CVE-2007-0003"},
					Value: types.Definition{
						Name:               "CVE-2007-0003",
						Type:               "CVE",
						Rejected:           true,
						Published:          lo.ToPtr(time.Date(2007, 1, 4, 0, 0, 0, 0, time.UTC)),
						Modified:           lo.ToPtr(time.Date(2007, 1, 6, 0, 0, 0, 0, time.UTC)),
						PrimaryDescription: "** REJECT ** DO NOT USE THIS CANDIDATE NUMBER.",
					},
				},
			},
		},
		{
			name: "overridden definition",
			dir:  filepath.Join("testdata", "override"),
			wantValues: []vulnsrctest.WantValues{
				{
					Key: []string{"definition", "CVE-2007-0002"},
					Value: types.Definition{
						Name:                  "CVE-2007-0002",
						Type:                  "CVE",
						Rejected:              true,
						Published:             lo.ToPtr(time.Date(2007, 1, 3, 0, 0, 0, 0, time.UTC)),
						Modified:              lo.ToPtr(time.Date(2007, 1, 3, 0, 0, 0, 0, time.UTC)),
						Severity:              types.SeverityHigh,
						CvssBaseScore:         lo.ToPtr(4.3),
						AccessVector:          types.AccessVectorNetwork,
						AccessComplexity:      types.AccessComplexityMedium,
						Authentication:        types.AuthenticationNone,
						ConfidentialityImpact: types.ImpactNone,
						IntegrityImpact:       types.ImpactPartial,
						AvailabilityImpact:    types.ImpactNone,
						PrimaryDescription:    "Cross-site scripting in the search page.",
						VulnerableSoftware: []types.Product{
							{
								Vendor:   "example",
								Name:     "search",
								Versions: []types.Version{{Number: "1.0", Previous: true}},
							},
						},
					},
				},
			},
			noBuckets: [][]string{
				{"severity"},
			},
		},
		{
			name:    "sad path",
			dir:     filepath.Join("testdata", "sad"),
			wantErr: "failed to parse NVD XML",
		},
		{
			name:    "no feed directory",
			dir:     filepath.Join("testdata", "missing"),
			wantErr: "walk dir error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := NewVulnSrc()
			vulnsrctest.TestUpdate(t, vs, vulnsrctest.TestUpdateArgs{
				Dir:        tt.dir,
				WantValues: tt.wantValues,
				NoBuckets:  tt.noBuckets,
				WantErr:    tt.wantErr,
			})
		})
	}
}

func TestVulnSrc_Commit(t *testing.T) {
	defs := []types.Definition{
		{
			Name:     "CVE-2007-0001",
			Severity: types.SeverityHigh,
		},
		{
			Name:     "CVE-2007-0003",
			Rejected: true,
		},
	}

	tests := []struct {
		name          string
		defs          []types.Definition
		putDataSource []db.PutDataSourceExpectation
		putDefinition []db.PutDefinitionExpectation
		putSeverity   []db.PutSeverityExpectation
		wantErr       string
	}{
		{
			name: "happy path",
			defs: defs,
			putDataSource: []db.PutDataSourceExpectation{
				{
					Args: db.PutDataSourceArgs{TxAnything: true, BktName: "definition", Source: source},
				},
			},
			putDefinition: []db.PutDefinitionExpectation{
				{
					Args: db.PutDefinitionArgs{TxAnything: true, Definition: defs[0]},
				},
				{
					Args: db.PutDefinitionArgs{TxAnything: true, Definition: defs[1]},
				},
			},
			putSeverity: []db.PutSeverityExpectation{
				{
					Args: db.PutSeverityArgs{TxAnything: true, Name: "CVE-2007-0001", Severity: types.SeverityHigh},
				},
			},
		},
		{
			name: "put definition error",
			defs: defs[:1],
			putDataSource: []db.PutDataSourceExpectation{
				{
					Args: db.PutDataSourceArgs{TxAnything: true, BktName: "definition", SourceAnything: true},
				},
			},
			putDefinition: []db.PutDefinitionExpectation{
				{
					Args:    db.PutDefinitionArgs{TxAnything: true, Definition: defs[0]},
					Returns: errors.New("disk full"),
				},
			},
			wantErr: "failed to put definition",
		},
		{
			name: "put data source error",
			defs: defs,
			putDataSource: []db.PutDataSourceExpectation{
				{
					Args:    db.PutDataSourceArgs{TxAnything: true, BktName: "definition", SourceAnything: true},
					Returns: errors.New("read only"),
				},
			},
			wantErr: "failed to put data source",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDBConfig := new(db.MockOperation)
			mockDBConfig.ApplyPutDataSourceExpectations(tt.putDataSource)
			mockDBConfig.ApplyPutDefinitionExpectations(tt.putDefinition)
			mockDBConfig.ApplyPutSeverityExpectations(tt.putSeverity)

			vs := VulnSrc{dbc: mockDBConfig, logger: log.WithPrefix("nvd")}
			err := vs.commit(&bolt.Tx{}, tt.defs)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			mockDBConfig.AssertExpectations(t)
		})
	}
}
