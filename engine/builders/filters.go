package builders

import (
	"github.com/tompro/redis-ts/engine/models"
	"github.com/tompro/redis-ts/mapping"
)

// FilterToken serializes a single label predicate to its wire token. The
// presence/absence forms keep their bare "label!=" / "label=" shape, set
// membership keeps the "(v1,v2)" value the constructor built.
func FilterToken(f models.Filter) string {
	return f.Label + f.Compare + f.Value
}

// appendFilters emits [WITHLABELS] FILTER f1 f2 ..., one token per filter.
func appendFilters(args []interface{}, filters models.FilterOptions) []interface{} {
	if filters.WithLabels {
		args = append(args, mapping.KeywordWithLabels)
	}
	args = append(args, mapping.KeywordFilter)
	return appendFilterTokens(args, filters.Filters)
}

func appendFilterTokens(args []interface{}, filters []models.Filter) []interface{} {
	for _, f := range filters {
		args = append(args, FilterToken(f))
	}
	return args
}
