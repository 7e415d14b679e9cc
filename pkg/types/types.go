package types

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var (
	SeverityNames = []string{
		"UNKNOWN",
		"LOW",
		"MEDIUM",
		"HIGH",
		"CRITICAL",
	}
	SeverityColor = []func(a ...interface{}) string{
		color.New(color.FgCyan).SprintFunc(),
		color.New(color.FgBlue).SprintFunc(),
		color.New(color.FgYellow).SprintFunc(),
		color.New(color.FgHiRed).SprintFunc(),
		color.New(color.FgRed).SprintFunc(),
	}
)

// NewSeverity resolves a severity from its description. Feeds spell it
// "High", "HIGH" or "high", so the lookup ignores case.
func NewSeverity(severity string) (Severity, error) {
	for i, name := range SeverityNames {
		if strings.EqualFold(severity, name) {
			return Severity(i), nil
		}
	}
	return SeverityUnknown, fmt.Errorf("unknown severity: %s", severity)
}

func ColorizeSeverity(severity Severity) string {
	if severity < 0 || int(severity) >= len(SeverityNames) {
		severity = SeverityUnknown
	}
	return SeverityColor[severity](severity.String())
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(SeverityNames) {
		return SeverityNames[SeverityUnknown]
	}
	return SeverityNames[s]
}

type SourceID string

type DataSource struct {
	ID   SourceID `json:",omitempty"`
	Name string   `json:",omitempty"`
	URL  string   `json:",omitempty"`
}
