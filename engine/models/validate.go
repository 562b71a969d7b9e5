package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tompro/redis-ts/mapping"
)

// ============================================================================
// ERRORS
// ============================================================================

var (
	ErrInvalidFilter   = errors.New("invalid time series filter")
	ErrInvalidArgument = errors.New("invalid time series argument")
)

// ============================================================================
// VALIDATION
// ============================================================================
//
// Validation catches requests that could never be valid on any server:
// empty label names, unknown enum tokens, negative sizes. Anything beyond
// that (range bounds, key existence, value semantics) is left to the server,
// which is the final authority on the command grammar.

// Validate checks the option bundle before it is serialized.
func (o Options) Validate() error {
	if o.Retention < 0 {
		return fmt.Errorf("%w: negative retention %s", ErrInvalidArgument, o.Retention)
	}
	if o.ChunkSize < 0 {
		return fmt.Errorf("%w: negative chunk size %d", ErrInvalidArgument, o.ChunkSize)
	}
	if o.DuplicatePolicy != "" && !mapping.IsDuplicatePolicy(string(o.DuplicatePolicy)) {
		return fmt.Errorf("%w: unknown duplicate policy %q", ErrInvalidArgument, o.DuplicatePolicy)
	}
	for name := range o.Labels {
		if name == "" {
			return fmt.Errorf("%w: empty label name", ErrInvalidArgument)
		}
	}
	return nil
}

// Validate checks the aggregation function and bucket duration.
func (a Aggregation) Validate() error {
	if !mapping.IsAggregationType(string(a.Type)) {
		return fmt.Errorf("%w: unknown aggregation type %q", ErrInvalidArgument, a.Type)
	}
	if a.Bucket <= 0 {
		return fmt.Errorf("%w: aggregation bucket must be positive, got %s", ErrInvalidArgument, a.Bucket)
	}
	return nil
}

// Validate checks the optional clauses of a range query.
func (q RangeQuery) Validate() error {
	if q.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidArgument, q.Count)
	}
	if q.Aggregation != nil {
		return q.Aggregation.Validate()
	}
	return nil
}

// Validate checks a single filter predicate. A label name that is empty or
// contains the comparison characters would serialize into a token the server
// parses as a different predicate, so those are rejected here.
func (f Filter) Validate() error {
	if f.Label == "" {
		return fmt.Errorf("%w: empty label name", ErrInvalidFilter)
	}
	if strings.ContainsAny(f.Label, "=!") {
		return fmt.Errorf("%w: label name %q contains comparison characters", ErrInvalidFilter, f.Label)
	}
	if f.Compare != "=" && f.Compare != "!=" {
		return fmt.Errorf("%w: unknown comparison %q", ErrInvalidFilter, f.Compare)
	}
	return nil
}

// Validate checks a filter bundle. Multi-series commands require at least
// one filter.
func (f FilterOptions) Validate() error {
	if len(f.Filters) == 0 {
		return fmt.Errorf("%w: at least one filter is required", ErrInvalidFilter)
	}
	for _, filter := range f.Filters {
		if err := filter.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// setValue renders a membership set as the "(v1,v2)" wire form.
func setValue(values []string) string {
	return "(" + strings.Join(values, ",") + ")"
}
