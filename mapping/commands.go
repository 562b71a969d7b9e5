package mapping

// CommandNames maps each logical time series operation to the wire command
// name the RedisTimeSeries module registers. Builders look commands up here
// so the spelling lives in one place.
var CommandNames = map[string]string{
	"CREATE":     "TS.CREATE",
	"ALTER":      "TS.ALTER",
	"ADD":        "TS.ADD",
	"MADD":       "TS.MADD",
	"INCRBY":     "TS.INCRBY",
	"DECRBY":     "TS.DECRBY",
	"CREATERULE": "TS.CREATERULE",
	"DELETERULE": "TS.DELETERULE",
	"RANGE":      "TS.RANGE",
	"REVRANGE":   "TS.REVRANGE",
	"MRANGE":     "TS.MRANGE",
	"MREVRANGE":  "TS.MREVRANGE",
	"GET":        "TS.GET",
	"MGET":       "TS.MGET",
	"INFO":       "TS.INFO",
	"QUERYINDEX": "TS.QUERYINDEX",
}

// Keyword tokens for the optional command clauses. These are positional
// markers, each one introduces a contiguous keyword+value group.
const (
	KeywordRetention       = "RETENTION"
	KeywordUncompressed    = "UNCOMPRESSED"
	KeywordChunkSize       = "CHUNK_SIZE"
	KeywordDuplicatePolicy = "DUPLICATE_POLICY"
	KeywordLabels          = "LABELS"
	KeywordTimestamp       = "TIMESTAMP"
	KeywordCount           = "COUNT"
	KeywordAggregation     = "AGGREGATION"
	KeywordWithLabels      = "WITHLABELS"
	KeywordFilter          = "FILTER"
)
