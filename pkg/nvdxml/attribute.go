package nvdxml

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"
)

// DateLayout is the layout of the published and modified attributes.
const DateLayout = "2006-01-02"

// The readers below share one contract: ok is false when the attribute is
// missing or blank, err is set when it is present but cannot be parsed, and
// the value is only meaningful when ok is true and err is nil.

func readString(attrs Attributes, name string) (string, bool) {
	v, ok := attrs.Lookup(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func readFloat(attrs Attributes, name string) (float64, bool, error) {
	v, ok := readString(attrs, name)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, true, oops.With("attribute", name).With("value", v).Wrapf(ErrMalformedNumeric, "%s", err)
	}
	return f, true, nil
}

func readDate(attrs Attributes, name string) (time.Time, bool, error) {
	v, ok := readString(attrs, name)
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, true, oops.With("attribute", name).With("value", v).Wrapf(ErrMalformedDate, "%s", err)
	}
	return t, true, nil
}

// readFlag treats any non-blank value as true. The feed writes "1" but older
// files also carry "yes" or "true".
func readFlag(attrs Attributes, name string) bool {
	return attrs.Has(name)
}
