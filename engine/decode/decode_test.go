package decode_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tompro/redis-ts/engine/decode"
	"github.com/tompro/redis-ts/engine/models"
)

func TestStatusOK(t *testing.T) {
	if err := decode.StatusOK("OK"); err != nil {
		t.Errorf("StatusOK(\"OK\") = %v, want nil", err)
	}

	var decodeErr *decode.DecodeError
	if err := decode.StatusOK(int64(1)); !errors.As(err, &decodeErr) {
		t.Errorf("StatusOK(1) = %v, want DecodeError", err)
	}
}

func TestTimestamp(t *testing.T) {
	ts, err := decode.Timestamp(int64(123456789))
	if err != nil || ts != 123456789 {
		t.Errorf("Timestamp() = %d, %v, want 123456789, nil", ts, err)
	}

	var decodeErr *decode.DecodeError
	if _, err := decode.Timestamp("123"); !errors.As(err, &decodeErr) {
		t.Errorf("Timestamp(string) = %v, want DecodeError", err)
	}
}

func TestTimestamps(t *testing.T) {
	got, err := decode.Timestamps([]interface{}{int64(100), int64(200)})
	if err != nil {
		t.Fatalf("Timestamps() error: %v", err)
	}
	if want := []int64{100, 200}; !reflect.DeepEqual(got, want) {
		t.Errorf("Timestamps() = %v, want %v", got, want)
	}
}

func TestTimestampsRejectsNonIntegerElement(t *testing.T) {
	var decodeErr *decode.DecodeError
	_, err := decode.Timestamps([]interface{}{int64(100), "TSDB: timestamp too old"})
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Timestamps() = %v, want DecodeError", err)
	}
}

func TestSamplesPreservesOrder(t *testing.T) {
	reply := []interface{}{
		[]interface{}{int64(200), "2.5"},
		[]interface{}{int64(100), "1.5"},
	}
	got, err := decode.Samples(reply)
	if err != nil {
		t.Fatalf("Samples() error: %v", err)
	}
	want := []models.Sample{{Timestamp: 200, Value: 2.5}, {Timestamp: 100, Value: 1.5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Samples() = %v, want %v", got, want)
	}
}

func TestSamplesRejectsMalformedValue(t *testing.T) {
	var decodeErr *decode.DecodeError
	_, err := decode.Samples([]interface{}{[]interface{}{int64(100), "not-a-float"}})
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Samples() = %v, want DecodeError", err)
	}
}

func TestLatestSample(t *testing.T) {
	got, err := decode.LatestSample([]interface{}{int64(100), "36.5"})
	if err != nil {
		t.Fatalf("LatestSample() error: %v", err)
	}
	if want := (&models.Sample{Timestamp: 100, Value: 36.5}); !reflect.DeepEqual(got, want) {
		t.Errorf("LatestSample() = %v, want %v", got, want)
	}
}

func TestLatestSampleEmptyReplyMeansNoData(t *testing.T) {
	got, err := decode.LatestSample([]interface{}{})
	if err != nil {
		t.Fatalf("LatestSample() error: %v", err)
	}
	if got != nil {
		t.Errorf("LatestSample() = %v, want nil", got)
	}
}

func TestSeriesSet(t *testing.T) {
	reply := []interface{}{
		[]interface{}{
			"seriesA",
			[]interface{}{[]interface{}{"region", "eu"}},
			[]interface{}{
				[]interface{}{int64(100), "1.5"},
				[]interface{}{int64(200), "2.5"},
			},
		},
	}

	got, err := decode.SeriesSet(reply)
	if err != nil {
		t.Fatalf("SeriesSet() error: %v", err)
	}
	want := map[string]models.SeriesResult{
		"seriesA": {
			Labels:  map[string]string{"region": "eu"},
			Samples: []models.Sample{{Timestamp: 100, Value: 1.5}, {Timestamp: 200, Value: 2.5}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SeriesSet() = %v, want %v", got, want)
	}
}

func TestLatestSetEmptyLabelsAndMissingSample(t *testing.T) {
	reply := []interface{}{
		[]interface{}{"seriesA", []interface{}{}, []interface{}{int64(100), "1.5"}},
		[]interface{}{"seriesB", []interface{}{}, []interface{}{}},
	}

	got, err := decode.LatestSet(reply)
	if err != nil {
		t.Fatalf("LatestSet() error: %v", err)
	}
	a := got["seriesA"]
	if a.Labels == nil || len(a.Labels) != 0 {
		t.Errorf("seriesA labels = %v, want empty non-nil map", a.Labels)
	}
	if a.Sample == nil || a.Sample.Timestamp != 100 || a.Sample.Value != 1.5 {
		t.Errorf("seriesA sample = %v, want {100 1.5}", a.Sample)
	}
	if b := got["seriesB"]; b.Sample != nil {
		t.Errorf("seriesB sample = %v, want nil", b.Sample)
	}
}

func TestKeys(t *testing.T) {
	got, err := decode.Keys([]interface{}{"a", "b"})
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func infoReply() []interface{} {
	return []interface{}{
		"totalSamples", int64(1000),
		"memoryUsage", int64(4184),
		"firstTimestamp", int64(100),
		"lastTimestamp", int64(99100),
		"retentionTime", int64(60000),
		"chunkCount", int64(1),
		"chunkSize", int64(4096),
		"duplicatePolicy", nil,
		"sourceKey", nil,
		"labels", []interface{}{[]interface{}{"sensor", "temperature"}},
		"rules", []interface{}{
			[]interface{}{"temp_avg", int64(5000), "avg"},
		},
	}
}

func TestInfo(t *testing.T) {
	got, err := decode.Info(infoReply())
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	want := &models.SeriesInfo{
		TotalSamples:   1000,
		MemoryUsage:    4184,
		FirstTimestamp: 100,
		LastTimestamp:  99100,
		Retention:      time.Minute,
		ChunkCount:     1,
		ChunkSize:      4096,
		Labels:         map[string]string{"sensor": "temperature"},
		Rules: []models.Rule{
			{DestinationKey: "temp_avg", Bucket: 5 * time.Second, Type: models.AggregationAvg},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Info() = %+v, want %+v", got, want)
	}
}

func TestInfoSkipsUnknownFields(t *testing.T) {
	reply := append(infoReply(), "keySelfName", "temp:1")
	if _, err := decode.Info(reply); err != nil {
		t.Errorf("Info() with unknown field: %v, want nil", err)
	}
}

func TestInfoRequiresCoreFields(t *testing.T) {
	reply := []interface{}{
		"totalSamples", int64(1000),
		"chunkCount", int64(1),
	}
	var decodeErr *decode.DecodeError
	if _, err := decode.Info(reply); !errors.As(err, &decodeErr) {
		t.Errorf("Info() without retentionTime = %v, want DecodeError", err)
	}
}

func TestDecodeErrorMessageNamesShape(t *testing.T) {
	_, err := decode.Timestamp(nil)
	var decodeErr *decode.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Timestamp(nil) = %v, want DecodeError", err)
	}
	if decodeErr.Expected != "integer timestamp" {
		t.Errorf("Expected = %q, want %q", decodeErr.Expected, "integer timestamp")
	}
}
