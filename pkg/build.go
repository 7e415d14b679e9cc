package pkg

import (
	"github.com/samber/lo"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/nvdxml"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/vulndb"
	"github.com/secincident/incident-db/pkg/vulnsrc"
)

func build(c *cli.Context) error {
	cacheDir := c.String("cache-dir")
	if err := db.Init(cacheDir); err != nil {
		return xerrors.Errorf("db init error: %w", err)
	}
	defer db.Close()

	targets := c.StringSlice("only-update")
	updateInterval := c.Duration("update-interval")

	dbType := db.TypeFull
	if c.Bool("light") {
		dbType = db.TypeLight
	}

	var parseOpts []nvdxml.Option
	if c.Bool("lenient-dates") {
		parseOpts = append(parseOpts, nvdxml.WithLenientDates())
	}
	srcs := lo.SliceToMap(vulnsrc.New(parseOpts...), func(src vulnsrc.VulnSrc) (types.SourceID, vulnsrc.VulnSrc) {
		return src.Name(), src
	})

	vdb := vulndb.New(dbType, cacheDir, updateInterval, vulndb.WithVulnSrcs(srcs))
	if err := vdb.Build(targets); err != nil {
		return xerrors.Errorf("build error: %w", err)
	}

	return nil
}
