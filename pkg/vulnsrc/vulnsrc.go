package vulnsrc

import (
	"github.com/samber/lo"

	"github.com/secincident/incident-db/pkg/nvdxml"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/vulnsrc/incident"
	"github.com/secincident/incident-db/pkg/vulnsrc/nvd"
)

type VulnSrc interface {
	Name() types.SourceID
	Update(dir string) (err error)
}

var (
	// All holds the sources built by default.
	All = New()
)

// New returns every source, passing parseOpts to the NVD feed parser.
func New(parseOpts ...nvdxml.Option) []VulnSrc {
	return []VulnSrc{
		nvd.NewVulnSrc(nvd.WithParseOptions(parseOpts...)),
		incident.NewVulnSrc(),
	}
}

// Names lists the names of all sources, to be used as build targets.
func Names() []string {
	return lo.Map(All, func(src VulnSrc, _ int) string {
		return string(src.Name())
	})
}
