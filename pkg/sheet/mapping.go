package sheet

import (
	"os"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v2"
)

// Mapping maps spreadsheet header text to a canonical field name.
type Mapping map[string]string

type mappingFile struct {
	Columns map[string]string `yaml:"columns"`
}

// LoadMapping reads a YAML file of the form
//
//	columns:
//	  "Incident number": id
//	  "Attack date": date
func LoadMapping(path string) (Mapping, error) {
	eb := oops.With("file_path", path)

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, eb.Wrapf(err, "file read error")
	}

	var f mappingFile
	if err = yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, eb.Wrapf(err, "yaml decode error")
	}

	m := make(Mapping, len(f.Columns))
	for header, field := range f.Columns {
		m[normalize(header)] = strings.TrimSpace(field)
	}
	return m, nil
}

// Field resolves the canonical name of a header. Headers missing from the
// mapping fall back to their normalized form.
func (m Mapping) Field(header string) string {
	key := normalize(header)
	if field, ok := m[key]; ok && field != "" {
		return field
	}
	return key
}

// normalize turns "  Attack Date " into "attack_date".
func normalize(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(header)), "_")
}
