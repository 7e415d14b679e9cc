package types

// CVSS v2 base metrics. The zero value of each enum means "not set".

type AccessVector int

const (
	AccessVectorUnknown AccessVector = iota
	AccessVectorLocal
	AccessVectorAdjacentNetwork
	AccessVectorNetwork
)

type AccessComplexity int

const (
	AccessComplexityUnknown AccessComplexity = iota
	AccessComplexityHigh
	AccessComplexityMedium
	AccessComplexityLow
)

type Authentication int

const (
	AuthenticationUnknown Authentication = iota
	AuthenticationMultiple
	AuthenticationSingle
	AuthenticationNone
)

// Impact is shared by the confidentiality, integrity and availability metrics.
type Impact int

const (
	ImpactUnknown Impact = iota
	ImpactNone
	ImpactPartial
	ImpactComplete
)

var (
	accessVectorNames     = []string{"UNKNOWN", "LOCAL", "ADJACENT_NETWORK", "NETWORK"}
	accessComplexityNames = []string{"UNKNOWN", "HIGH", "MEDIUM", "LOW"}
	authenticationNames   = []string{"UNKNOWN", "MULTIPLE", "SINGLE", "NONE"}
	impactNames           = []string{"UNKNOWN", "NONE", "PARTIAL", "COMPLETE"}
)

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func (v AccessVector) String() string     { return enumName(accessVectorNames, int(v)) }
func (c AccessComplexity) String() string { return enumName(accessComplexityNames, int(c)) }
func (a Authentication) String() string   { return enumName(authenticationNames, int(a)) }
func (i Impact) String() string           { return enumName(impactNames, int(i)) }
