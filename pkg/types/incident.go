package types

import "time"

// Incident is one row of a security incident spreadsheet.
type Incident struct {
	ID          string
	Date        *time.Time `json:",omitempty"`
	Country     string     `json:",omitempty"`
	Sector      string     `json:",omitempty"`
	Actor       string     `json:",omitempty"`
	Definitions []string   `json:",omitempty"` // exploited CVE names
	Loss        *float64   `json:",omitempty"`
	Summary     string     `json:",omitempty"`
}

// Indicator is one socioeconomic measurement, e.g. GDP per capita of a country in a year.
type Indicator struct {
	Country string
	Name    string
	Year    int
	Value   float64
	Unit    string `json:",omitempty"`
}
