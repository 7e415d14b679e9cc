// Package overridedb corrects feed data that is known to be wrong upstream.
// Overrides are kept in a YAML file next to the feeds and applied by name.
package overridedb

import (
	"os"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v2"

	"github.com/secincident/incident-db/pkg/types"
)

type OverriddenDefinition struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Severity    string   `yaml:"severity"`
	Description string   `yaml:"description"`
	Reject      *bool    `yaml:"reject"`
}

type OverriddenData struct {
	Aliases     map[string]string
	Definitions map[string]OverriddenDefinition
}

// Load reads a YAML list of overridden definitions.
func Load(filename string) (*OverriddenData, error) {
	eb := oops.With("file_path", filename)

	f, err := os.Open(filename)
	if err != nil {
		return nil, eb.Wrapf(err, "file open error")
	}
	defer f.Close()

	var overridden []OverriddenDefinition
	if err = yaml.NewDecoder(f).Decode(&overridden); err != nil {
		return nil, eb.Wrapf(err, "yaml decode error")
	}

	result := &OverriddenData{
		Aliases:     map[string]string{},
		Definitions: map[string]OverriddenDefinition{},
	}
	for _, o := range overridden {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			return nil, eb.Errorf("override without a name")
		}
		if o.Severity != "" {
			if _, err = types.NewSeverity(o.Severity); err != nil {
				return nil, eb.With("definition", name).Wrapf(err, "invalid override")
			}
		}
		result.Definitions[name] = o
		for _, alias := range o.Aliases {
			result.Aliases[alias] = name
		}
	}
	return result, nil
}

// Apply overwrites the fields of def set by its override and reports whether
// there was one. Definitions are looked up by name first, then by alias.
func (d *OverriddenData) Apply(def *types.Definition) bool {
	if d == nil {
		return false
	}
	o, ok := d.Definitions[def.Name]
	if !ok {
		if name, found := d.Aliases[def.Name]; found {
			o, ok = d.Definitions[name]
		}
	}
	if !ok {
		return false
	}

	if o.Severity != "" {
		def.Severity, _ = types.NewSeverity(o.Severity)
	}
	if o.Description != "" {
		def.PrimaryDescription = o.Description
	}
	if o.Reject != nil {
		def.Rejected = *o.Reject
	}
	return true
}
