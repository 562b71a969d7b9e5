package decode

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tompro/redis-ts/engine/models"
)

// ============================================================================
// REPLY DECODERS
// ============================================================================
//
// The generic command primitive surfaces replies as dynamically typed values:
// int64 for integers, string for simple and bulk strings, []interface{} for
// arrays, nil for null replies. Each decoder pattern-matches the shape its
// command family expects and fails with a DecodeError otherwise - no implicit
// coercion. Null replies ("no data") are the caller's business and never
// reach this package.

// StatusOK decodes the simple-string reply of CREATE, ALTER, CREATERULE and
// DELETERULE.
func StatusOK(reply interface{}) error {
	if s, ok := reply.(string); ok && s == "OK" {
		return nil
	}
	return unexpected(`status "OK"`, reply)
}

// Timestamp decodes the integer reply of ADD, INCRBY and DECRBY: the
// millisecond timestamp assigned to the written sample.
func Timestamp(reply interface{}) (int64, error) {
	ts, ok := reply.(int64)
	if !ok {
		return 0, unexpected("integer timestamp", reply)
	}
	return ts, nil
}

// Timestamps decodes the MADD reply, one assigned timestamp per written
// sample. A per-sample error reply surfaces as a DecodeError naming the
// offending element.
func Timestamps(reply interface{}) ([]int64, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("array of integer timestamps", reply)
	}
	out := make([]int64, len(elems))
	for i, e := range elems {
		ts, ok := e.(int64)
		if !ok {
			return nil, unexpected(fmt.Sprintf("integer timestamp at index %d", i), e)
		}
		out[i] = ts
	}
	return out, nil
}

// Samples decodes the RANGE/REVRANGE reply: an array of [timestamp, value]
// pairs. Order is preserved as returned by the server.
func Samples(reply interface{}) ([]models.Sample, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("array of samples", reply)
	}
	out := make([]models.Sample, len(elems))
	for i, e := range elems {
		s, err := sample(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// LatestSample decodes the GET reply. An empty array means the series holds
// no data and decodes to nil without error.
func LatestSample(reply interface{}) (*models.Sample, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("sample pair", reply)
	}
	if len(elems) == 0 {
		return nil, nil
	}
	s, err := sample(reply)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SeriesSet decodes the MRANGE/MREVRANGE reply: one [key, labels, samples]
// entry per matched series, keyed by series key.
func SeriesSet(reply interface{}) (map[string]models.SeriesResult, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("array of series entries", reply)
	}
	out := make(map[string]models.SeriesResult, len(elems))
	for _, e := range elems {
		key, labelPart, samplePart, err := seriesEntry(e)
		if err != nil {
			return nil, err
		}
		labels, err := labelSet(labelPart)
		if err != nil {
			return nil, err
		}
		samples, err := Samples(samplePart)
		if err != nil {
			return nil, err
		}
		out[key] = models.SeriesResult{Labels: labels, Samples: samples}
	}
	return out, nil
}

// LatestSet decodes the MGET reply: one [key, labels, sample] entry per
// matched series. The sample slot holds a flat [timestamp, value] pair, or
// an empty array when the series has no data.
func LatestSet(reply interface{}) (map[string]models.LatestResult, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("array of series entries", reply)
	}
	out := make(map[string]models.LatestResult, len(elems))
	for _, e := range elems {
		key, labelPart, samplePart, err := seriesEntry(e)
		if err != nil {
			return nil, err
		}
		labels, err := labelSet(labelPart)
		if err != nil {
			return nil, err
		}
		latest, err := LatestSample(samplePart)
		if err != nil {
			return nil, err
		}
		out[key] = models.LatestResult{Labels: labels, Sample: latest}
	}
	return out, nil
}

// Keys decodes the QUERYINDEX reply: a flat array of series keys.
func Keys(reply interface{}) ([]string, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("array of series keys", reply)
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		key, ok := e.(string)
		if !ok {
			return nil, unexpected(fmt.Sprintf("series key at index %d", i), e)
		}
		out[i] = key
	}
	return out, nil
}

// ============================================================================
// TS.INFO
// ============================================================================

// The fields an INFO reply must carry to be usable; everything else is
// optional and unknown field names are skipped for forward compatibility.
var requiredInfoFields = []string{"totalSamples", "retentionTime", "chunkCount"}

// Info decodes the TS.INFO reply, a flat alternating array of field names
// and values.
func Info(reply interface{}) (*models.SeriesInfo, error) {
	elems, ok := reply.([]interface{})
	if !ok {
		return nil, unexpected("array of info fields", reply)
	}
	info := &models.SeriesInfo{}
	seen := make(map[string]bool, len(elems)/2)
	for i := 0; i+1 < len(elems); i += 2 {
		name, ok := elems[i].(string)
		if !ok {
			return nil, unexpected(fmt.Sprintf("info field name at index %d", i), elems[i])
		}
		if err := infoField(info, name, elems[i+1]); err != nil {
			return nil, err
		}
		seen[name] = true
	}
	for _, name := range requiredInfoFields {
		if !seen[name] {
			return nil, unexpected(fmt.Sprintf("info reply containing field %q", name), reply)
		}
	}
	return info, nil
}

func infoField(info *models.SeriesInfo, name string, value interface{}) error {
	switch name {
	case "totalSamples":
		return infoInt(&info.TotalSamples, name, value)
	case "memoryUsage":
		return infoInt(&info.MemoryUsage, name, value)
	case "firstTimestamp":
		return infoInt(&info.FirstTimestamp, name, value)
	case "lastTimestamp":
		return infoInt(&info.LastTimestamp, name, value)
	case "retentionTime":
		ms, ok := value.(int64)
		if !ok {
			return unexpected(`integer value for info field "retentionTime"`, value)
		}
		info.Retention = time.Duration(ms) * time.Millisecond
		return nil
	case "chunkCount":
		return infoInt(&info.ChunkCount, name, value)
	case "maxSamplesPerChunk":
		return infoInt(&info.MaxSamplesPerChunk, name, value)
	case "chunkSize":
		return infoInt(&info.ChunkSize, name, value)
	case "duplicatePolicy":
		// Nil when the series relies on the server default.
		if value == nil {
			return nil
		}
		policy, ok := value.(string)
		if !ok {
			return unexpected(`string value for info field "duplicatePolicy"`, value)
		}
		info.DuplicatePolicy = models.DuplicatePolicy(policy)
		return nil
	case "sourceKey":
		if value == nil {
			return nil
		}
		key, ok := value.(string)
		if !ok {
			return unexpected(`string value for info field "sourceKey"`, value)
		}
		info.SourceKey = key
		return nil
	case "labels":
		labels, err := labelSet(value)
		if err != nil {
			return err
		}
		info.Labels = labels
		return nil
	case "rules":
		rules, err := ruleSet(value)
		if err != nil {
			return err
		}
		info.Rules = rules
		return nil
	default:
		// Unknown field: skip, newer module versions add fields freely.
		return nil
	}
}

func infoInt(dst *int64, name string, value interface{}) error {
	n, ok := value.(int64)
	if !ok {
		return unexpected(fmt.Sprintf("integer value for info field %q", name), value)
	}
	*dst = n
	return nil
}

func ruleSet(value interface{}) ([]models.Rule, error) {
	elems, ok := value.([]interface{})
	if !ok {
		return nil, unexpected("array of compaction rules", value)
	}
	rules := make([]models.Rule, 0, len(elems))
	for _, e := range elems {
		parts, ok := e.([]interface{})
		if !ok || len(parts) < 3 {
			return nil, unexpected("[dest, bucket, aggregation] rule entry", e)
		}
		dest, ok := parts[0].(string)
		if !ok {
			return nil, unexpected("rule destination key", parts[0])
		}
		bucket, ok := parts[1].(int64)
		if !ok {
			return nil, unexpected("rule bucket duration", parts[1])
		}
		agg, ok := parts[2].(string)
		if !ok {
			return nil, unexpected("rule aggregation type", parts[2])
		}
		rules = append(rules, models.Rule{
			DestinationKey: dest,
			Bucket:         time.Duration(bucket) * time.Millisecond,
			Type:           models.AggregationType(agg),
		})
	}
	return rules, nil
}

// ============================================================================
// SHARED SHAPES
// ============================================================================

// sample decodes a [timestamp, value-as-string] pair.
func sample(v interface{}) (models.Sample, error) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) < 2 {
		return models.Sample{}, unexpected("[timestamp, value] pair", v)
	}
	ts, ok := pair[0].(int64)
	if !ok {
		return models.Sample{}, unexpected("integer sample timestamp", pair[0])
	}
	raw, ok := pair[1].(string)
	if !ok {
		return models.Sample{}, unexpected("string sample value", pair[1])
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.Sample{}, unexpected("floating point sample value", raw)
	}
	return models.Sample{Timestamp: ts, Value: value}, nil
}

// seriesEntry splits a [key, labels, samples] entry of a multi-series reply.
func seriesEntry(v interface{}) (string, interface{}, interface{}, error) {
	parts, ok := v.([]interface{})
	if !ok || len(parts) < 3 {
		return "", nil, nil, unexpected("[key, labels, samples] entry", v)
	}
	key, ok := parts[0].(string)
	if !ok {
		return "", nil, nil, unexpected("series key", parts[0])
	}
	return key, parts[1], parts[2], nil
}

// labelSet decodes an array of [name, value] pairs. An empty array decodes
// to an empty, non-nil map: withheld labels and absent labels look the same.
func labelSet(v interface{}) (map[string]string, error) {
	elems, ok := v.([]interface{})
	if !ok {
		return nil, unexpected("array of label pairs", v)
	}
	labels := make(map[string]string, len(elems))
	for _, e := range elems {
		pair, ok := e.([]interface{})
		if !ok || len(pair) < 2 {
			return nil, unexpected("[name, value] label pair", e)
		}
		name, ok := pair[0].(string)
		if !ok {
			return nil, unexpected("label name", pair[0])
		}
		value, ok := pair[1].(string)
		if !ok {
			return nil, unexpected("label value", pair[1])
		}
		labels[name] = value
	}
	return labels, nil
}
