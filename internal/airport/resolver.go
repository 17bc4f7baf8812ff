// Package airport resolves free-text city names to IATA airport codes.
package airport

import (
	"strings"
	"unicode"
)

type entry struct {
	city string
	code string
}

// cityCodes is scanned in order for substring matches, so its order is part
// of the resolution behavior and must stay stable.
var cityCodes = []entry{
	// Colombia
	{"bogota", "BOG"},
	{"bogotá", "BOG"},
	{"medellin", "MDE"},
	{"medellín", "MDE"},
	{"cali", "CLO"},
	{"cartagena", "CTG"},
	{"barranquilla", "BAQ"},
	{"bucaramanga", "BGA"},
	{"pereira", "PEI"},
	{"santa marta", "SMR"},
	{"cucuta", "CUC"},
	{"cúcuta", "CUC"},

	// United States
	{"new york", "JFK"},
	{"nueva york", "JFK"},
	{"los angeles", "LAX"},
	{"chicago", "ORD"},
	{"miami", "MIA"},
	{"houston", "IAH"},
	{"san francisco", "SFO"},
	{"washington", "IAD"},
	{"boston", "BOS"},
	{"atlanta", "ATL"},
	{"dallas", "DFW"},
	{"orlando", "MCO"},
	{"seattle", "SEA"},
	{"las vegas", "LAS"},

	// Mexico
	{"mexico", "MEX"},
	{"méxico", "MEX"},
	{"ciudad de mexico", "MEX"},
	{"guadalajara", "GDL"},
	{"cancun", "CUN"},
	{"cancún", "CUN"},
	{"monterrey", "MTY"},

	// Europe
	{"madrid", "MAD"},
	{"barcelona", "BCN"},
	{"paris", "CDG"},
	{"parís", "CDG"},
	{"london", "LHR"},
	{"londres", "LHR"},
	{"rome", "FCO"},
	{"roma", "FCO"},
	{"amsterdam", "AMS"},
	{"berlin", "BER"},
	{"berlín", "BER"},
	{"lisbon", "LIS"},
	{"lisboa", "LIS"},
	{"milan", "MXP"},
	{"milán", "MXP"},
	{"frankfurt", "FRA"},
	{"zurich", "ZRH"},

	// Latin America
	{"buenos aires", "EZE"},
	{"santiago", "SCL"},
	{"lima", "LIM"},
	{"sao paulo", "GRU"},
	{"são paulo", "GRU"},
	{"rio de janeiro", "GIG"},
	{"quito", "UIO"},
	{"panama", "PTY"},
	{"panamá", "PTY"},
	{"san jose", "SJO"},
	{"san josé", "SJO"},

	// Asia
	{"tokyo", "NRT"},
	{"tokio", "NRT"},
	{"beijing", "PEK"},
	{"pekin", "PEK"},
	{"shanghai", "PVG"},
	{"dubai", "DXB"},
	{"singapore", "SIN"},
	{"singapur", "SIN"},
	{"hong kong", "HKG"},
	{"bangkok", "BKK"},
	{"seoul", "ICN"},
	{"seúl", "ICN"},

	// Oceania
	{"sydney", "SYD"},
	{"sídney", "SYD"},
	{"melbourne", "MEL"},
	{"auckland", "AKL"},
}

var exactCodes = func() map[string]string {
	m := make(map[string]string, len(cityCodes))
	for _, e := range cityCodes {
		m[e.city] = e.code
	}
	return m
}()

// Resolve maps a city name to an IATA code. When no table entry matches, the
// input is returned unchanged so the caller can fall back to model-based
// resolution.
func Resolve(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	// Already a code.
	if IsCode(name) {
		return name
	}

	normalized := strings.ToLower(strings.TrimSpace(name))

	if code, ok := exactCodes[normalized]; ok {
		return code
	}

	// Partial match, first entry wins.
	for _, e := range cityCodes {
		if strings.Contains(e.city, normalized) || strings.Contains(normalized, e.city) {
			return e.code
		}
	}

	return name
}

// IsCode reports whether s is a well-formed IATA code: exactly three
// uppercase letters.
func IsCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
