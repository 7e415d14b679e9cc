package vulndb

import (
	"slices"
	"time"

	"github.com/samber/lo"
	"golang.org/x/xerrors"
	"k8s.io/utils/clock"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/metadata"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/vulnsrc"
)

// countedBuckets are reported in the metadata after a build.
var countedBuckets = []string{
	"definition",
	"severity",
	"incident",
}

type VulnDB interface {
	Build(targets []string) error
}

type Core struct {
	dbc            db.Config
	vulnSrcs       map[types.SourceID]vulnsrc.VulnSrc
	cacheDir       string
	updateInterval time.Duration
	clock          clock.Clock
}

type Option func(*Core)

func WithClock(clock clock.Clock) Option {
	return func(core *Core) {
		core.clock = clock
	}
}

func WithVulnSrcs(srcs map[types.SourceID]vulnsrc.VulnSrc) Option {
	return func(core *Core) {
		core.vulnSrcs = srcs
	}
}

func NewCore(cacheDir string, updateInterval time.Duration, opts ...Option) *Core {
	vulnSrcs := lo.SliceToMap(vulnsrc.All, func(src vulnsrc.VulnSrc) (types.SourceID, vulnsrc.VulnSrc) {
		return src.Name(), src
	})

	core := &Core{
		dbc:            db.Config{},
		vulnSrcs:       vulnSrcs,
		cacheDir:       cacheDir,
		updateInterval: updateInterval,
		clock:          clock.RealClock{},
	}

	for _, opt := range opts {
		opt(core)
	}

	return core
}

// Insert runs the given sources, or every registered source when targets is empty.
func (c Core) Insert(targets []string) error {
	if len(targets) == 0 {
		targets = lo.Map(lo.Keys(c.vulnSrcs), func(id types.SourceID, _ int) string {
			return string(id)
		})
		slices.Sort(targets)
	}

	log.Info("Updating incident database...")
	for _, target := range targets {
		src, ok := c.vulnSrcs[types.SourceID(target)]
		if !ok {
			return xerrors.Errorf("%s is not supported", target)
		}
		log.Info("Updating data...", log.String("source", target))

		if err := src.Update(c.cacheDir); err != nil {
			return xerrors.Errorf("%s update error: %w", target, err)
		}
	}
	return nil
}

// stamp records the build in the metadata bucket and in metadata.json.
func (c Core) stamp(dbType db.Type) error {
	counts := map[string]int{}
	for _, bkt := range countedBuckets {
		n, err := c.dbc.Count(bkt)
		if err != nil {
			return xerrors.Errorf("count error: %w", err)
		}
		counts[bkt] = n
	}

	now := c.clock.Now().UTC()
	md := db.Metadata{
		Version:    db.SchemaVersion,
		Type:       dbType,
		NextUpdate: now.Add(c.updateInterval),
		UpdatedAt:  now,
		Counts:     counts,
	}
	if err := c.dbc.SetMetadata(md); err != nil {
		return xerrors.Errorf("failed to save metadata: %w", err)
	}

	err := metadata.NewClient(db.Dir(c.cacheDir)).Update(metadata.Metadata{
		Version:    md.Version,
		Type:       md.Type.String(),
		NextUpdate: md.NextUpdate,
		UpdatedAt:  md.UpdatedAt,
		Counts:     md.Counts,
	})
	if err != nil {
		return xerrors.Errorf("failed to store metadata: %w", err)
	}

	log.Info("Database built", log.String("type", dbType.String()), log.Any("counts", counts))
	return nil
}

func New(dbType db.Type, cacheDir string, updateInterval time.Duration, opts ...Option) VulnDB {
	core := NewCore(cacheDir, updateInterval, opts...)

	switch dbType {
	case db.TypeLight:
		return lightDB{Core: core}
	default:
		return fullDB{Core: core}
	}
}
