package types

import "time"

// Definition is one vulnerability record of a CVE feed, identified by Name.
type Definition struct {
	Name      string
	Type      string     `json:",omitempty"`
	Rejected  bool       `json:",omitempty"`
	Published *time.Time `json:",omitempty"`
	Modified  *time.Time `json:",omitempty"`
	Severity  Severity   `json:",omitempty"`

	CvssVersion         string   `json:",omitempty"`
	CvssBaseScore       *float64 `json:",omitempty"`
	CvssImpactSubscore  *float64 `json:",omitempty"`
	CvssExploitSubscore *float64 `json:",omitempty"`

	AccessVector          AccessVector     `json:",omitempty"`
	AccessComplexity      AccessComplexity `json:",omitempty"`
	Authentication        Authentication   `json:",omitempty"`
	ConfidentialityImpact Impact           `json:",omitempty"`
	IntegrityImpact       Impact           `json:",omitempty"`
	AvailabilityImpact    Impact           `json:",omitempty"`

	PrimaryDescription   string `json:",omitempty"` // source="cve"
	SecondaryDescription string `json:",omitempty"` // source="nvd"

	LossType           *LossType   `json:",omitempty"`
	RangeType          *RangeType  `json:",omitempty"`
	References         []Reference `json:",omitempty"`
	VulnerableSoftware []Product   `json:",omitempty"`
}

// LossType lists the security properties lost when the vulnerability is exploited.
type LossType struct {
	Availability            bool `json:",omitempty"`
	Confidentiality         bool `json:",omitempty"`
	Integrity               bool `json:",omitempty"`
	AdminSecurityProtection bool `json:",omitempty"`
	UserSecurityProtection  bool `json:",omitempty"`
	OtherSecurityProtection bool `json:",omitempty"`

	// Definition is the name of the owning definition, used for lookups only.
	Definition string `json:"-"`
}

// RangeType lists where an attack can be launched from.
type RangeType struct {
	Local        bool `json:",omitempty"`
	LocalNetwork bool `json:",omitempty"`
	Network      bool `json:",omitempty"`
	UserInit     bool `json:",omitempty"`

	Definition string `json:"-"`
}

type Reference struct {
	Source   string `json:",omitempty"`
	URL      string `json:",omitempty"`
	Name     string `json:",omitempty"`
	Patch    bool   `json:",omitempty"`
	Advisory bool   `json:",omitempty"`
}

type Product struct {
	Vendor   string    `json:",omitempty"`
	Name     string    `json:",omitempty"`
	Versions []Version `json:",omitempty"`
}

type Version struct {
	Number string `json:",omitempty"`
	// Previous marks "this version and all previous versions".
	Previous bool `json:",omitempty"`
}
