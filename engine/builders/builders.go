package builders

import (
	"sort"
	"time"

	"github.com/tompro/redis-ts/engine/models"
	"github.com/tompro/redis-ts/mapping"
)

// ============================================================================
// COMMAND BUILDERS
// ============================================================================
//
// One builder per module command. Each returns the ordered token sequence
// ready to hand to the connection's generic Do primitive: command name first,
// then positional arguments, then the optional clauses in their fixed order.
// Builders are pure and never fail; inputs are validated before they reach
// this package.

// Create builds TS.CREATE key [RETENTION ms] [UNCOMPRESSED]
// [DUPLICATE_POLICY p] [CHUNK_SIZE n] [LABELS k v ...].
func Create(key string, opts models.Options) []interface{} {
	args := []interface{}{mapping.CommandNames["CREATE"], key}
	return appendOptions(args, opts, true)
}

// Alter builds TS.ALTER key [RETENTION ms] [DUPLICATE_POLICY p]
// [CHUNK_SIZE n] [LABELS k v ...]. The UNCOMPRESSED flag only applies at
// creation time and is never emitted here.
func Alter(key string, opts models.Options) []interface{} {
	args := []interface{}{mapping.CommandNames["ALTER"], key}
	return appendOptions(args, opts, false)
}

// Add builds TS.ADD key timestamp value.
func Add(key string, timestamp int64, value float64) []interface{} {
	return []interface{}{mapping.CommandNames["ADD"], key, writeTimestamp(timestamp), value}
}

// AddAutoTimestamp builds TS.ADD key * value, letting the server assign the
// sample time.
func AddAutoTimestamp(key string, value float64) []interface{} {
	return Add(key, models.ServerTimestamp, value)
}

// AddWithOptions builds TS.ADD key timestamp value [options...]. The series
// is created with the given options if it does not exist yet.
func AddWithOptions(key string, timestamp int64, value float64, opts models.Options) []interface{} {
	return appendOptions(Add(key, timestamp, value), opts, true)
}

// MAdd builds TS.MADD key ts val [key ts val ...].
func MAdd(samples []models.KeyedSample) []interface{} {
	args := make([]interface{}, 0, 1+3*len(samples))
	args = append(args, mapping.CommandNames["MADD"])
	for _, s := range samples {
		args = append(args, s.Key, writeTimestamp(s.Sample.Timestamp), s.Sample.Value)
	}
	return args
}

// IncrBy builds TS.INCRBY key value.
func IncrBy(key string, value float64) []interface{} {
	return counter("INCRBY", key, value)
}

// IncrByWithTimestamp builds TS.INCRBY key value TIMESTAMP ts.
func IncrByWithTimestamp(key string, value float64, timestamp int64) []interface{} {
	return counterWithTimestamp("INCRBY", key, value, timestamp)
}

// IncrByWithOptions builds TS.INCRBY key value [TIMESTAMP ts] [options...].
// Pass models.ServerTimestamp to omit the TIMESTAMP clause.
func IncrByWithOptions(key string, value float64, timestamp int64, opts models.Options) []interface{} {
	return counterWithOptions("INCRBY", key, value, timestamp, opts)
}

// DecrBy builds TS.DECRBY key value.
func DecrBy(key string, value float64) []interface{} {
	return counter("DECRBY", key, value)
}

// DecrByWithTimestamp builds TS.DECRBY key value TIMESTAMP ts.
func DecrByWithTimestamp(key string, value float64, timestamp int64) []interface{} {
	return counterWithTimestamp("DECRBY", key, value, timestamp)
}

// DecrByWithOptions builds TS.DECRBY key value [TIMESTAMP ts] [options...].
func DecrByWithOptions(key string, value float64, timestamp int64, opts models.Options) []interface{} {
	return counterWithOptions("DECRBY", key, value, timestamp, opts)
}

// CreateRule builds TS.CREATERULE source dest AGGREGATION type bucket.
func CreateRule(sourceKey, destKey string, agg models.Aggregation) []interface{} {
	args := []interface{}{mapping.CommandNames["CREATERULE"], sourceKey, destKey}
	return appendAggregation(args, agg)
}

// DeleteRule builds TS.DELETERULE source dest.
func DeleteRule(sourceKey, destKey string) []interface{} {
	return []interface{}{mapping.CommandNames["DELETERULE"], sourceKey, destKey}
}

// Range builds TS.RANGE key from to [COUNT n] [AGGREGATION type bucket].
func Range(key string, q models.RangeQuery) []interface{} {
	return rangeArgs("RANGE", key, q)
}

// RevRange builds TS.REVRANGE key from to [COUNT n] [AGGREGATION type bucket].
func RevRange(key string, q models.RangeQuery) []interface{} {
	return rangeArgs("REVRANGE", key, q)
}

// MRange builds TS.MRANGE from to [COUNT n] [AGGREGATION type bucket]
// [WITHLABELS] FILTER f ....
func MRange(q models.RangeQuery, filters models.FilterOptions) []interface{} {
	return multiRangeArgs("MRANGE", q, filters)
}

// MRevRange builds TS.MREVRANGE from to [COUNT n] [AGGREGATION type bucket]
// [WITHLABELS] FILTER f ....
func MRevRange(q models.RangeQuery, filters models.FilterOptions) []interface{} {
	return multiRangeArgs("MREVRANGE", q, filters)
}

// Get builds TS.GET key.
func Get(key string) []interface{} {
	return []interface{}{mapping.CommandNames["GET"], key}
}

// MGet builds TS.MGET [WITHLABELS] FILTER f ....
func MGet(filters models.FilterOptions) []interface{} {
	return appendFilters([]interface{}{mapping.CommandNames["MGET"]}, filters)
}

// Info builds TS.INFO key.
func Info(key string) []interface{} {
	return []interface{}{mapping.CommandNames["INFO"], key}
}

// QueryIndex builds TS.QUERYINDEX f .... The command takes bare filter
// tokens, it knows neither WITHLABELS nor the FILTER keyword.
func QueryIndex(filters models.FilterOptions) []interface{} {
	args := []interface{}{mapping.CommandNames["QUERYINDEX"]}
	return appendFilterTokens(args, filters.Filters)
}

// ============================================================================
// CLAUSE HELPERS
// ============================================================================

func counter(op, key string, value float64) []interface{} {
	return []interface{}{mapping.CommandNames[op], key, value}
}

func counterWithTimestamp(op, key string, value float64, timestamp int64) []interface{} {
	return append(counter(op, key, value), mapping.KeywordTimestamp, timestamp)
}

func counterWithOptions(op, key string, value float64, timestamp int64, opts models.Options) []interface{} {
	args := counter(op, key, value)
	if timestamp != models.ServerTimestamp {
		args = append(args, mapping.KeywordTimestamp, timestamp)
	}
	return appendOptions(args, opts, true)
}

func rangeArgs(op, key string, q models.RangeQuery) []interface{} {
	args := []interface{}{mapping.CommandNames[op], key, rangeTimestamp(q.From, "-"), rangeTimestamp(q.To, "+")}
	return appendRangeClauses(args, q)
}

func multiRangeArgs(op string, q models.RangeQuery, filters models.FilterOptions) []interface{} {
	args := []interface{}{mapping.CommandNames[op], rangeTimestamp(q.From, "-"), rangeTimestamp(q.To, "+")}
	args = appendRangeClauses(args, q)
	return appendFilters(args, filters)
}

func appendRangeClauses(args []interface{}, q models.RangeQuery) []interface{} {
	if q.Count > 0 {
		args = append(args, mapping.KeywordCount, q.Count)
	}
	if q.Aggregation != nil {
		args = appendAggregation(args, *q.Aggregation)
	}
	return args
}

// appendOptions emits the optional clauses of a series configuration in
// their fixed order: RETENTION, UNCOMPRESSED, DUPLICATE_POLICY, CHUNK_SIZE,
// LABELS. Absent options emit nothing.
func appendOptions(args []interface{}, opts models.Options, uncompressed bool) []interface{} {
	if opts.Retention > 0 {
		args = append(args, mapping.KeywordRetention, formatMs(opts.Retention))
	}
	if uncompressed && opts.Uncompressed {
		args = append(args, mapping.KeywordUncompressed)
	}
	if opts.DuplicatePolicy != "" {
		args = append(args, mapping.KeywordDuplicatePolicy, string(opts.DuplicatePolicy))
	}
	if opts.ChunkSize > 0 {
		args = append(args, mapping.KeywordChunkSize, opts.ChunkSize)
	}
	if len(opts.Labels) > 0 {
		args = append(args, mapping.KeywordLabels)
		for _, name := range sortedLabelNames(opts.Labels) {
			args = append(args, name, opts.Labels[name])
		}
	}
	return args
}

func appendAggregation(args []interface{}, agg models.Aggregation) []interface{} {
	return append(args, mapping.KeywordAggregation, string(agg.Type), formatMs(agg.Bucket))
}

// rangeTimestamp maps the sentinel bounds to their literal markers.
func rangeTimestamp(ts int64, open string) interface{} {
	if ts == models.EarliestTimestamp || ts == models.LatestTimestamp {
		return open
	}
	return ts
}

// writeTimestamp maps the server-time sentinel to the "*" marker.
func writeTimestamp(ts int64) interface{} {
	if ts == models.ServerTimestamp {
		return "*"
	}
	return ts
}

// formatMs truncates a duration to the module's millisecond resolution.
func formatMs(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}

// sortedLabelNames fixes the emission order of the label map so a given
// option bundle always serializes to the same token sequence.
func sortedLabelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
