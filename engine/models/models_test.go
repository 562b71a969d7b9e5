package models_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tompro/redis-ts/engine/models"
)

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name    string
		opts    models.Options
		wantErr error
	}{
		{"empty", models.Options{}, nil},
		{"full", models.Options{
			Retention:       time.Hour,
			Uncompressed:    true,
			ChunkSize:       4096,
			DuplicatePolicy: models.PolicyMax,
			Labels:          map[string]string{"sensor": "temperature"},
		}, nil},
		{"negative retention", models.Options{Retention: -time.Second}, models.ErrInvalidArgument},
		{"negative chunk size", models.Options{ChunkSize: -1}, models.ErrInvalidArgument},
		{"unknown policy", models.Options{DuplicatePolicy: "NEWEST"}, models.ErrInvalidArgument},
		{"empty label name", models.Options{Labels: map[string]string{"": "x"}}, models.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAggregationValidate(t *testing.T) {
	ok := models.Aggregation{Type: models.AggregationStdP, Bucket: time.Second}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	bad := []models.Aggregation{
		{Type: "median", Bucket: time.Second},
		{Type: models.AggregationAvg, Bucket: 0},
		{Type: models.AggregationAvg, Bucket: -time.Second},
	}
	for _, a := range bad {
		if err := a.Validate(); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidArgument", a, err)
		}
	}
}

func TestRangeQueryValidate(t *testing.T) {
	q := models.WholeRange()
	if err := q.Validate(); err != nil {
		t.Errorf("WholeRange().Validate() = %v, want nil", err)
	}

	q.Count = -1
	if err := q.Validate(); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("negative count: Validate() = %v, want ErrInvalidArgument", err)
	}

	q = models.WholeRange()
	q.Aggregation = &models.Aggregation{Type: "bogus", Bucket: time.Second}
	if err := q.Validate(); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("bad aggregation: Validate() = %v, want ErrInvalidArgument", err)
	}
}

func TestFilterValidate(t *testing.T) {
	cases := []struct {
		name    string
		filter  models.Filter
		wantErr error
	}{
		{"equals", models.Equals("sensor", "temperature"), nil},
		{"has label", models.HasLabel("region"), nil},
		{"empty label", models.Equals("", "x"), models.ErrInvalidFilter},
		{"label with equals", models.Equals("a=b", "x"), models.ErrInvalidFilter},
		{"label with bang", models.Equals("a!b", "x"), models.ErrInvalidFilter},
		{"unknown comparison", models.Filter{Label: "a", Compare: ">", Value: "1"}, models.ErrInvalidFilter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.filter.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestFilterOptionsRequireAFilter(t *testing.T) {
	if err := (models.FilterOptions{}).Validate(); !errors.Is(err, models.ErrInvalidFilter) {
		t.Errorf("Validate() = %v, want ErrInvalidFilter", err)
	}

	opts := models.FilterOptions{Filters: []models.Filter{models.Equals("a", "b")}}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestWholeRangeCoversEverything(t *testing.T) {
	q := models.WholeRange()
	if q.From != models.EarliestTimestamp || q.To != models.LatestTimestamp {
		t.Errorf("WholeRange() = %+v, want earliest/latest sentinels", q)
	}
}
