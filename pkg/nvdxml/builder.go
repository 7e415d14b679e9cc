package nvdxml

import (
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/types"
)

type builderState int

const (
	stateIdle builderState = iota
	stateEntry
	stateLossTypes
	stateRange
)

func (s builderState) String() string {
	return [...]string{"idle", "entry", "loss-types", "range"}[s]
}

// definitionBuilder assembles one definition at a time from the element
// callbacks. All of its state belongs to a single parse.
type definitionBuilder struct {
	state   builderState
	def     *types.Definition
	loss    *types.LossType
	rng     *types.RangeType
	product *types.Product

	lenientDates bool
	logger       *log.Logger
	warn         func(error)
	emit         func(types.Definition)
}

func (b *definitionBuilder) violation(f *frame, format string, args ...any) error {
	return oops.With("node", f.name).With("state", b.state.String()).Wrapf(ErrProtocolViolation, format, args...)
}

func (b *definitionBuilder) requireEntry(f *frame) error {
	if b.state == stateIdle {
		return b.violation(f, "element outside of an entry")
	}
	return nil
}

func (b *definitionBuilder) openEntry(f *frame) error {
	if b.state != stateIdle {
		return b.violation(f, "nested entry")
	}

	name, ok := readString(f.attrs, "name")
	if !ok {
		return oops.With("node", f.name).With("attribute", "name").Wrapf(ErrMissingMandatoryField, "entry without a name")
	}
	eb := oops.With("definition", name)

	def := &types.Definition{Name: name}
	def.Type, _ = readString(f.attrs, "type")
	def.Rejected = readFlag(f.attrs, "reject")
	def.CvssVersion, _ = readString(f.attrs, "CVSS_version")

	var err error
	if def.Published, err = b.date(f.attrs, "published"); err != nil {
		return eb.Wrapf(err, "published date")
	}
	if def.Modified, err = b.date(f.attrs, "modified"); err != nil {
		return eb.Wrapf(err, "modified date")
	}

	if s, ok := readString(f.attrs, "severity"); ok {
		if severity, err := types.NewSeverity(s); err != nil {
			b.warn(eb.With("severity", s).Wrapf(ErrUnknownCode, "severity"))
		} else {
			def.Severity = severity
		}
	}

	for _, score := range []struct {
		attr string
		dst  **float64
	}{
		{"CVSS_base_score", &def.CvssBaseScore},
		{"CVSS_impact_subscore", &def.CvssImpactSubscore},
		{"CVSS_exploit_subscore", &def.CvssExploitSubscore},
	} {
		v, ok, err := readFloat(f.attrs, score.attr)
		if err != nil {
			return eb.Wrapf(err, "cvss score")
		} else if ok {
			*score.dst = &v
		}
	}

	if vector, ok := readString(f.attrs, "CVSS_vector"); ok {
		_, warnings := DecodeVector(def, vector)
		for _, w := range warnings {
			b.warn(eb.Wrap(w))
		}
	}

	b.def = def
	b.state = stateEntry
	return nil
}

// date applies the date policy: a present but malformed date fails the
// parse unless lenient dates were requested.
func (b *definitionBuilder) date(attrs Attributes, name string) (*time.Time, error) {
	t, ok, err := readDate(attrs, name)
	switch {
	case err != nil && b.lenientDates:
		b.warn(err)
		return nil, nil
	case err != nil:
		return nil, err
	case !ok:
		return nil, nil
	}
	return &t, nil
}

func (b *definitionBuilder) closeEntry(f *frame) error {
	if b.state != stateEntry {
		return b.violation(f, "entry closed while building %s", b.state)
	}
	b.emit(*b.def)
	b.def = nil
	b.state = stateIdle
	return nil
}

func (b *definitionBuilder) description(f *frame) error {
	if err := b.requireEntry(f); err != nil {
		return err
	}
	text := strings.TrimSpace(f.text.String())

	source, _ := readString(f.attrs, "source")
	switch source {
	case "cve":
		b.def.PrimaryDescription = text
	case "nvd":
		b.def.SecondaryDescription = text
	default:
		b.warn(oops.With("definition", b.def.Name).With("source", source).
			Wrapf(ErrUnknownDescriptionSource, "description dropped"))
	}
	return nil
}

func (b *definitionBuilder) openLossTypes(f *frame) error {
	if b.state != stateEntry {
		return b.violation(f, "loss types outside of an entry")
	}
	b.loss = &types.LossType{}
	b.state = stateLossTypes
	return nil
}

func (b *definitionBuilder) closeLossTypes(f *frame) error {
	if b.state != stateLossTypes {
		return b.violation(f, "unbalanced loss types")
	}
	b.loss.Definition = b.def.Name
	b.def.LossType = b.loss
	b.loss = nil
	b.state = stateEntry
	return nil
}

func (b *definitionBuilder) lossFlag(f *frame) error {
	if b.state != stateLossTypes {
		return b.violation(f, "loss flag outside of loss types")
	}
	switch f.kind {
	case kindAvailability:
		b.loss.Availability = true
	case kindConfidentiality:
		b.loss.Confidentiality = true
	case kindIntegrity:
		b.loss.Integrity = true
	case kindSecurityProtection:
		if readFlag(f.attrs, "admin") {
			b.loss.AdminSecurityProtection = true
		}
		if readFlag(f.attrs, "user") {
			b.loss.UserSecurityProtection = true
		}
		if readFlag(f.attrs, "other") {
			b.loss.OtherSecurityProtection = true
		}
	}
	return nil
}

func (b *definitionBuilder) openRange(f *frame) error {
	if b.state != stateEntry {
		return b.violation(f, "range outside of an entry")
	}
	b.rng = &types.RangeType{}
	b.state = stateRange
	return nil
}

func (b *definitionBuilder) closeRange(f *frame) error {
	if b.state != stateRange {
		return b.violation(f, "unbalanced range")
	}
	b.rng.Definition = b.def.Name
	b.def.RangeType = b.rng
	b.rng = nil
	b.state = stateEntry
	return nil
}

func (b *definitionBuilder) rangeFlag(f *frame) error {
	if b.state != stateRange {
		return b.violation(f, "range flag outside of range")
	}
	switch f.kind {
	case kindLocal:
		b.rng.Local = true
	case kindLocalNetwork:
		b.rng.LocalNetwork = true
	case kindNetwork:
		b.rng.Network = true
	case kindUserInit:
		b.rng.UserInit = true
	}
	return nil
}

func (b *definitionBuilder) reference(f *frame) error {
	if err := b.requireEntry(f); err != nil {
		return err
	}
	ref := types.Reference{
		Name:     strings.TrimSpace(f.text.String()),
		Patch:    readFlag(f.attrs, "patch"),
		Advisory: readFlag(f.attrs, "adv"),
	}
	ref.Source, _ = readString(f.attrs, "source")
	ref.URL, _ = readString(f.attrs, "url")
	b.def.References = append(b.def.References, ref)
	return nil
}

func (b *definitionBuilder) openProduct(f *frame) error {
	if err := b.requireEntry(f); err != nil {
		return err
	}
	b.product = &types.Product{}
	b.product.Vendor, _ = readString(f.attrs, "vendor")
	b.product.Name, _ = readString(f.attrs, "name")
	return nil
}

func (b *definitionBuilder) closeProduct(f *frame) error {
	if b.product == nil {
		return b.violation(f, "unbalanced product")
	}
	b.def.VulnerableSoftware = append(b.def.VulnerableSoftware, *b.product)
	b.product = nil
	return nil
}

func (b *definitionBuilder) version(f *frame) error {
	if b.product == nil {
		return b.violation(f, "version outside of a product")
	}
	num, ok := readString(f.attrs, "num")
	if !ok {
		b.logger.Debug("Version without a number", log.DefinitionName(b.def.Name))
		return nil
	}
	b.product.Versions = append(b.product.Versions, types.Version{
		Number:   num,
		Previous: readFlag(f.attrs, "prev"),
	})
	return nil
}

// inEntry reports whether a definition is being built.
func (b *definitionBuilder) inEntry() bool {
	return b.state != stateIdle
}
