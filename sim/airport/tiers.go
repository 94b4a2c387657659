package airport

import "strings"

// Tier classifies airport complexity. Tier 1 hubs are the busiest and most
// volatile; tier 3 covers small regional fields.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
)

// tier1 holds the top-30 busiest airports (high volatility).
var tier1 = map[string]bool{
	"ATL": true, "DFW": true, "DEN": true, "ORD": true, "LAX": true,
	"JFK": true, "LAS": true, "MCO": true, "MIA": true, "CLT": true,
	"SEA": true, "PHX": true, "EWR": true, "SFO": true, "IAH": true,
	"BOS": true, "FLL": true, "MSP": true, "LGA": true, "DTW": true,
	"PHL": true, "SLC": true, "DCA": true, "SAN": true, "BWI": true,
	"TPA": true, "AUS": true, "IAD": true, "BNA": true, "MDW": true,
}

// tier2 holds regional hubs (more efficient).
var tier2 = map[string]bool{
	"PBI": true, "BUR": true, "SNA": true, "HOU": true, "DAL": true,
	"STL": true, "PDX": true, "SMF": true, "OAK": true, "RDU": true,
	"RSW": true,
}

// Classify returns the tier for an IATA code. Unknown codes are tier 3.
func Classify(code string) Tier {
	c := strings.ToUpper(code)
	switch {
	case tier1[c]:
		return Tier1
	case tier2[c]:
		return Tier2
	default:
		return Tier3
	}
}
