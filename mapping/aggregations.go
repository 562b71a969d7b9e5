package mapping

// AggregationTypes is the set of downsampling functions the module accepts,
// keyed by the lowercase token that goes on the wire. Used by validation
// before a CREATERULE or range query is submitted - the server is still the
// final authority.
var AggregationTypes = map[string]bool{
	"avg":   true,
	"sum":   true,
	"min":   true,
	"max":   true,
	"range": true,
	"count": true,
	"first": true,
	"last":  true,
	"std.p": true,
	"std.s": true,
	"var.p": true,
	"var.s": true,
}

// DuplicatePolicies is the set of accepted DUPLICATE_POLICY values.
var DuplicatePolicies = map[string]bool{
	"BLOCK": true,
	"FIRST": true,
	"LAST":  true,
	"MIN":   true,
	"MAX":   true,
}

// IsAggregationType reports whether token names a known aggregation function.
func IsAggregationType(token string) bool {
	return AggregationTypes[token]
}

// IsDuplicatePolicy reports whether token names a known duplicate policy.
func IsDuplicatePolicy(token string) bool {
	return DuplicatePolicies[token]
}
