package nvdxml

import (
	"strings"

	"github.com/samber/oops"

	"github.com/secincident/incident-db/pkg/types"
)

var (
	accessVectorCodes = map[string]types.AccessVector{
		"L": types.AccessVectorLocal,
		"A": types.AccessVectorAdjacentNetwork,
		"N": types.AccessVectorNetwork,
	}
	accessComplexityCodes = map[string]types.AccessComplexity{
		"H": types.AccessComplexityHigh,
		"M": types.AccessComplexityMedium,
		"L": types.AccessComplexityLow,
	}
	authenticationCodes = map[string]types.Authentication{
		"M": types.AuthenticationMultiple,
		"S": types.AuthenticationSingle,
		"N": types.AuthenticationNone,
	}
	impactCodes = map[string]types.Impact{
		"N": types.ImpactNone,
		"P": types.ImpactPartial,
		"C": types.ImpactComplete,
	}
)

// vectorMetrics maps a vector key to a setter that assigns the decoded code
// onto a definition. A setter returns false for a code it does not know.
var vectorMetrics = map[string]func(def *types.Definition, code string) bool{
	"AV": func(def *types.Definition, code string) bool {
		v, ok := accessVectorCodes[code]
		if ok {
			def.AccessVector = v
		}
		return ok
	},
	"AC": func(def *types.Definition, code string) bool {
		v, ok := accessComplexityCodes[code]
		if ok {
			def.AccessComplexity = v
		}
		return ok
	},
	"Au": func(def *types.Definition, code string) bool {
		v, ok := authenticationCodes[code]
		if ok {
			def.Authentication = v
		}
		return ok
	},
	"C": func(def *types.Definition, code string) bool {
		v, ok := impactCodes[code]
		if ok {
			def.ConfidentialityImpact = v
		}
		return ok
	},
	"I": func(def *types.Definition, code string) bool {
		v, ok := impactCodes[code]
		if ok {
			def.IntegrityImpact = v
		}
		return ok
	},
	"A": func(def *types.Definition, code string) bool {
		v, ok := impactCodes[code]
		if ok {
			def.AvailabilityImpact = v
		}
		return ok
	},
}

// DecodeVector applies a CVSS v2 vector such as "(AV:N/AC:L/Au:N/C:N/I:N/A:C)"
// onto def. The first and last characters are the delimiters and are dropped.
// Later assignments of the same key overwrite earlier ones. Segments that are
// not exactly "key:value" are skipped silently; unknown keys and codes are
// skipped and returned as warnings. It returns the number of applied pairs.
func DecodeVector(def *types.Definition, vector string) (int, []error) {
	if len(vector) > 1 {
		vector = vector[1 : len(vector)-1]
	}

	var (
		applied  int
		warnings []error
	)
	for _, segment := range strings.Split(vector, "/") {
		kv := strings.Split(segment, ":")
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			continue
		}
		key, code := kv[0], kv[1]

		set, ok := vectorMetrics[key]
		if !ok {
			warnings = append(warnings, oops.With("key", key).With("vector", vector).
				Wrapf(ErrUnrecognizedVectorKey, "vector segment %q", segment))
			continue
		}
		if !set(def, code) {
			warnings = append(warnings, oops.With("key", key).With("code", code).
				Wrapf(ErrUnknownCode, "vector segment %q", segment))
			continue
		}
		applied++
	}
	return applied, warnings
}
