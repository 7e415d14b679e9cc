package nvd

import (
	"context"
	"io"
	"path/filepath"

	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/nvdxml"
	"github.com/secincident/incident-db/pkg/overridedb"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/utils"
)

const (
	nvdDir = "nvd"

	// overridesFile holds local corrections to the feed, see overridedb.
	overridesFile = "overrides.yaml"

	definitionBucket = "definition"
)

var source = types.DataSource{
	ID:   "nvd",
	Name: "National Vulnerability Database (CVE XML 1.2)",
	URL:  "https://nvd.nist.gov/vuln/data-feeds",
}

type Option func(*VulnSrc)

// WithParseOptions passes options to the parser of every feed file.
func WithParseOptions(opts ...nvdxml.Option) Option {
	return func(vs *VulnSrc) {
		vs.parseOpts = append(vs.parseOpts, opts...)
	}
}

type VulnSrc struct {
	dbc       db.Operation
	logger    *log.Logger
	parseOpts []nvdxml.Option
}

func NewVulnSrc(opts ...Option) VulnSrc {
	vs := VulnSrc{
		dbc:    db.Config{},
		logger: log.WithPrefix(nvdDir),
	}
	for _, opt := range opts {
		opt(&vs)
	}
	return vs
}

func (vs VulnSrc) Name() types.SourceID {
	return source.ID
}

func (vs VulnSrc) Update(dir string) error {
	rootDir := utils.FeedDir(dir, nvdDir)
	eb := oops.In(nvdDir).With("root_dir", rootDir)

	var defs []types.Definition
	err := utils.FileWalk(rootDir, func(r io.Reader, path string) error {
		// Sessions are single-use, so every file gets its own.
		opts := append([]nvdxml.Option{nvdxml.WithLogger(vs.logger.With(log.FilePath(path)))}, vs.parseOpts...)
		parsed, err := nvdxml.Parse(context.Background(), r, opts...)
		if err != nil {
			return eb.With("file_path", path).Wrapf(err, "failed to parse NVD XML")
		}
		vs.logger.Debug("Parsed feed file", log.FilePath(path), log.Int("definitions", len(parsed)))
		defs = append(defs, parsed...)
		return nil
	}, ".xml")
	if err != nil {
		return eb.Wrapf(err, "walk error")
	}

	if err = vs.override(filepath.Join(rootDir, overridesFile), defs); err != nil {
		return eb.Wrapf(err, "override error")
	}

	if err = vs.save(defs); err != nil {
		return eb.Wrapf(err, "save error")
	}
	return nil
}

// override applies the corrections in path, if the file exists, to defs in place.
func (vs VulnSrc) override(path string, defs []types.Definition) error {
	if ok, err := utils.Exists(path); err != nil {
		return oops.Wrapf(err, "stat error")
	} else if !ok {
		return nil
	}

	overridden, err := overridedb.Load(path)
	if err != nil {
		return err
	}

	var n int
	for i := range defs {
		if overridden.Apply(&defs[i]) {
			n++
		}
	}
	vs.logger.Info("Applied overrides", log.FilePath(path), log.Int("definitions", n))
	return nil
}

func (vs VulnSrc) save(defs []types.Definition) error {
	vs.logger.Info("Saving NVD definitions", log.Int("definitions", len(defs)))
	err := vs.dbc.BatchUpdate(func(tx *bolt.Tx) error {
		return vs.commit(tx, defs)
	})
	if err != nil {
		return oops.Wrapf(err, "batch update error")
	}
	return nil
}

func (vs VulnSrc) commit(tx *bolt.Tx, defs []types.Definition) error {
	if err := vs.dbc.PutDataSource(tx, definitionBucket, source); err != nil {
		return oops.Wrapf(err, "failed to put data source")
	}

	for _, def := range defs {
		if err := vs.dbc.PutDefinition(tx, def); err != nil {
			return oops.Wrapf(err, "failed to put definition")
		}

		// Rejected entries are kept for reference but never indexed.
		if def.Rejected {
			continue
		}
		if err := vs.dbc.PutSeverity(tx, def.Name, def.Severity); err != nil {
			return oops.Wrapf(err, "failed to put severity")
		}
	}
	return nil
}
