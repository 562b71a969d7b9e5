package models

import (
	"math"
	"time"
)

// ============================================================================
// TIMESTAMPS
// ============================================================================

// Timestamps are 64-bit millisecond epoch values. The extreme values act as
// sentinels and are serialized to the module's literal markers instead of a
// number.
const (
	// EarliestTimestamp selects the oldest sample in a range query ("-").
	EarliestTimestamp int64 = math.MinInt64

	// LatestTimestamp selects the newest sample in a range query ("+").
	LatestTimestamp int64 = math.MaxInt64

	// ServerTimestamp lets the server assign the sample time on insert ("*").
	ServerTimestamp int64 = math.MinInt64
)

// ============================================================================
// SAMPLES
// ============================================================================

// Sample is a single timestamp/value pair of a time series.
type Sample struct {
	Timestamp int64
	Value     float64
}

// KeyedSample is a sample addressed to a specific series key, used by MADD.
type KeyedSample struct {
	Key    string
	Sample Sample
}

// ============================================================================
// SERIES OPTIONS (CREATE, ALTER, ADD, INCRBY, DECRBY)
// ============================================================================

// DuplicatePolicy controls how the server handles inserts for a timestamp
// that already holds a value.
type DuplicatePolicy string

const (
	PolicyBlock DuplicatePolicy = "BLOCK"
	PolicyFirst DuplicatePolicy = "FIRST"
	PolicyLast  DuplicatePolicy = "LAST"
	PolicyMin   DuplicatePolicy = "MIN"
	PolicyMax   DuplicatePolicy = "MAX"
)

// Options is the configuration bundle for a time series key. The zero value
// emits no optional clauses at all. Retention is truncated to milliseconds on
// the wire; Uncompressed is only respected by CREATE and the auto-creating
// write commands, ALTER drops it.
type Options struct {
	Retention       time.Duration
	Uncompressed    bool
	ChunkSize       int64
	DuplicatePolicy DuplicatePolicy
	Labels          map[string]string
}

// ============================================================================
// AGGREGATION
// ============================================================================

// AggregationType names a server-side downsampling function. The constant
// values are the lowercase wire tokens.
type AggregationType string

const (
	AggregationAvg   AggregationType = "avg"
	AggregationSum   AggregationType = "sum"
	AggregationMin   AggregationType = "min"
	AggregationMax   AggregationType = "max"
	AggregationRange AggregationType = "range"
	AggregationCount AggregationType = "count"
	AggregationFirst AggregationType = "first"
	AggregationLast  AggregationType = "last"
	AggregationStdP  AggregationType = "std.p"
	AggregationStdS  AggregationType = "std.s"
	AggregationVarP  AggregationType = "var.p"
	AggregationVarS  AggregationType = "var.s"
)

// Aggregation pairs a downsampling function with its bucket duration. Used
// both when declaring a compaction rule and when querying with aggregation.
type Aggregation struct {
	Type   AggregationType
	Bucket time.Duration
}

// ============================================================================
// RANGE QUERIES
// ============================================================================

// RangeQuery holds the bounds and optional clauses of a RANGE, REVRANGE,
// MRANGE or MREVRANGE call. From and To may be the timestamp sentinels.
// Count of zero emits no COUNT clause. The server validates From <= To.
type RangeQuery struct {
	From        int64
	To          int64
	Count       int64
	Aggregation *Aggregation
}

// WholeRange selects every sample of the queried series.
func WholeRange() RangeQuery {
	return RangeQuery{From: EarliestTimestamp, To: LatestTimestamp}
}

// ============================================================================
// FILTERS (MRANGE, MREVRANGE, MGET, QUERYINDEX)
// ============================================================================

// Filter is a single label predicate selecting series in multi-series
// queries. Compare is "=" or "!=" and Value holds the right-hand side of the
// predicate already in wire form: a plain value, an empty string for the
// presence/absence forms, or a "(v1,v2)" set. Use the constructors below
// rather than filling the struct by hand.
type Filter struct {
	Label   string
	Compare string
	Value   string
}

// Equals selects series whose label holds exactly value.
func Equals(label, value string) Filter {
	return Filter{Label: label, Compare: "=", Value: value}
}

// NotEquals selects series whose label does not hold value.
func NotEquals(label, value string) Filter {
	return Filter{Label: label, Compare: "!=", Value: value}
}

// HasLabel selects series that carry the label, regardless of its value.
// Serializes to the bare "label!=" form.
func HasLabel(label string) Filter {
	return Filter{Label: label, Compare: "!="}
}

// NotHasLabel selects series that do not carry the label. Serializes to the
// bare "label=" form.
func NotHasLabel(label string) Filter {
	return Filter{Label: label, Compare: "="}
}

// InSet selects series whose label holds any of the given values.
func InSet(label string, values ...string) Filter {
	return Filter{Label: label, Compare: "=", Value: setValue(values)}
}

// NotInSet selects series whose label holds none of the given values.
func NotInSet(label string, values ...string) Filter {
	return Filter{Label: label, Compare: "!=", Value: setValue(values)}
}

// FilterOptions bundles the filters of a multi-series query. WithLabels asks
// the server to return the label set of every matched series.
type FilterOptions struct {
	WithLabels bool
	Filters    []Filter
}

// ============================================================================
// RESULTS
// ============================================================================

// SeriesResult is the per-key result of an MRANGE or MREVRANGE call.
type SeriesResult struct {
	Labels  map[string]string
	Samples []Sample
}

// LatestResult is the per-key result of an MGET call. Sample is nil when the
// series holds no data.
type LatestResult struct {
	Labels map[string]string
	Sample *Sample
}

// Rule describes a compaction rule attached to a series.
type Rule struct {
	DestinationKey string
	Bucket         time.Duration
	Type           AggregationType
}

// SeriesInfo is the decoded TS.INFO record of a series. DuplicatePolicy is
// empty when the series uses the server default; SourceKey is empty unless
// the series is the destination of a compaction rule.
type SeriesInfo struct {
	TotalSamples       int64
	MemoryUsage        int64
	FirstTimestamp     int64
	LastTimestamp      int64
	Retention          time.Duration
	ChunkCount         int64
	MaxSamplesPerChunk int64
	ChunkSize          int64
	DuplicatePolicy    DuplicatePolicy
	SourceKey          string
	Labels             map[string]string
	Rules              []Rule
}
