package redists

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tompro/redis-ts/engine/builders"
	"github.com/tompro/redis-ts/engine/decode"
	"github.com/tompro/redis-ts/engine/models"
)

// ============================================================================
// CLIENT
// ============================================================================

// Client exposes the RedisTimeSeries command set on a borrowed connection.
// Every method is a single request/reply transformation: validate the typed
// request, build the token sequence, run it through the connection, decode
// the reply. Errors raised by the connection itself (network, server error
// replies) pass through unchanged; the only errors minted here are the
// models validation sentinels and decode.DecodeError.
type Client struct {
	conn Conn
}

func (c *Client) do(ctx context.Context, args []interface{}) (interface{}, error) {
	return c.conn.Do(ctx, args...).Result()
}

// ============================================================================
// SERIES MANAGEMENT
// ============================================================================

// Create creates a new time series under key with the given options.
func (c *Client) Create(ctx context.Context, key string, opts models.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	reply, err := c.do(ctx, builders.Create(key, opts))
	if err != nil {
		return err
	}
	return decode.StatusOK(reply)
}

// Alter changes retention, chunk size, duplicate policy or labels of an
// existing series. Compression of an existing series cannot change, so the
// Uncompressed option is ignored here.
func (c *Client) Alter(ctx context.Context, key string, opts models.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	reply, err := c.do(ctx, builders.Alter(key, opts))
	if err != nil {
		return err
	}
	return decode.StatusOK(reply)
}

// Info returns the configuration and state record of a series.
func (c *Client) Info(ctx context.Context, key string) (*models.SeriesInfo, error) {
	reply, err := c.do(ctx, builders.Info(key))
	if err != nil {
		return nil, err
	}
	return decode.Info(reply)
}

// ============================================================================
// WRITES
// ============================================================================

// Add appends a sample and returns the timestamp the server stored it under.
func (c *Client) Add(ctx context.Context, key string, timestamp int64, value float64) (int64, error) {
	return c.write(ctx, builders.Add(key, timestamp, value))
}

// AddAutoTimestamp appends a sample stamped with the server's current time.
func (c *Client) AddAutoTimestamp(ctx context.Context, key string, value float64) (int64, error) {
	return c.write(ctx, builders.AddAutoTimestamp(key, value))
}

// AddWithOptions appends a sample, creating the series with the given
// options if it does not exist yet. Pass models.ServerTimestamp to let the
// server assign the sample time.
func (c *Client) AddWithOptions(ctx context.Context, key string, timestamp int64, value float64, opts models.Options) (int64, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	return c.write(ctx, builders.AddWithOptions(key, timestamp, value, opts))
}

// MAdd appends samples to one or more series in a single round trip and
// returns the assigned timestamps in submission order.
func (c *Client) MAdd(ctx context.Context, samples ...models.KeyedSample) ([]int64, error) {
	if len(samples) == 0 {
		return nil, errors.New("redists: MAdd requires at least one sample")
	}
	reply, err := c.do(ctx, builders.MAdd(samples))
	if err != nil {
		return nil, err
	}
	return decode.Timestamps(reply)
}

// IncrBy adds value to the latest sample, stamped with server time.
func (c *Client) IncrBy(ctx context.Context, key string, value float64) (int64, error) {
	return c.write(ctx, builders.IncrBy(key, value))
}

// IncrByWithTimestamp adds value to the latest sample at an explicit time.
func (c *Client) IncrByWithTimestamp(ctx context.Context, key string, value float64, timestamp int64) (int64, error) {
	return c.write(ctx, builders.IncrByWithTimestamp(key, value, timestamp))
}

// IncrByWithOptions adds value to the latest sample, creating the series
// with the given options if needed.
func (c *Client) IncrByWithOptions(ctx context.Context, key string, value float64, timestamp int64, opts models.Options) (int64, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	return c.write(ctx, builders.IncrByWithOptions(key, value, timestamp, opts))
}

// DecrBy subtracts value from the latest sample, stamped with server time.
func (c *Client) DecrBy(ctx context.Context, key string, value float64) (int64, error) {
	return c.write(ctx, builders.DecrBy(key, value))
}

// DecrByWithTimestamp subtracts value from the latest sample at an explicit
// time.
func (c *Client) DecrByWithTimestamp(ctx context.Context, key string, value float64, timestamp int64) (int64, error) {
	return c.write(ctx, builders.DecrByWithTimestamp(key, value, timestamp))
}

// DecrByWithOptions subtracts value from the latest sample, creating the
// series with the given options if needed.
func (c *Client) DecrByWithOptions(ctx context.Context, key string, value float64, timestamp int64, opts models.Options) (int64, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	return c.write(ctx, builders.DecrByWithOptions(key, value, timestamp, opts))
}

func (c *Client) write(ctx context.Context, args []interface{}) (int64, error) {
	reply, err := c.do(ctx, args)
	if err != nil {
		return 0, err
	}
	return decode.Timestamp(reply)
}

// ============================================================================
// COMPACTION RULES
// ============================================================================

// CreateRule links sourceKey to destKey through a downsampling aggregation.
func (c *Client) CreateRule(ctx context.Context, sourceKey, destKey string, agg models.Aggregation) error {
	if err := agg.Validate(); err != nil {
		return err
	}
	reply, err := c.do(ctx, builders.CreateRule(sourceKey, destKey, agg))
	if err != nil {
		return err
	}
	return decode.StatusOK(reply)
}

// DeleteRule removes the compaction rule between sourceKey and destKey.
func (c *Client) DeleteRule(ctx context.Context, sourceKey, destKey string) error {
	reply, err := c.do(ctx, builders.DeleteRule(sourceKey, destKey))
	if err != nil {
		return err
	}
	return decode.StatusOK(reply)
}

// ============================================================================
// QUERIES
// ============================================================================

// Range returns the samples of key within the query bounds, oldest first.
func (c *Client) Range(ctx context.Context, key string, q models.RangeQuery) ([]models.Sample, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	reply, err := c.do(ctx, builders.Range(key, q))
	if err != nil {
		return nil, err
	}
	return decode.Samples(reply)
}

// RevRange returns the samples of key within the query bounds, newest first.
func (c *Client) RevRange(ctx context.Context, key string, q models.RangeQuery) ([]models.Sample, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	reply, err := c.do(ctx, builders.RevRange(key, q))
	if err != nil {
		return nil, err
	}
	return decode.Samples(reply)
}

// MRange queries every series matched by the filters, oldest samples first,
// keyed by series key. Label maps stay empty unless WithLabels is set.
func (c *Client) MRange(ctx context.Context, q models.RangeQuery, filters models.FilterOptions) (map[string]models.SeriesResult, error) {
	return c.multiRange(ctx, q, filters, builders.MRange)
}

// MRevRange queries every series matched by the filters, newest samples
// first, keyed by series key.
func (c *Client) MRevRange(ctx context.Context, q models.RangeQuery, filters models.FilterOptions) (map[string]models.SeriesResult, error) {
	return c.multiRange(ctx, q, filters, builders.MRevRange)
}

func (c *Client) multiRange(ctx context.Context, q models.RangeQuery, filters models.FilterOptions,
	build func(models.RangeQuery, models.FilterOptions) []interface{}) (map[string]models.SeriesResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	reply, err := c.do(ctx, build(q, filters))
	if err != nil {
		return nil, err
	}
	return decode.SeriesSet(reply)
}

// Get returns the latest sample of key, or nil when the series holds no
// data yet.
func (c *Client) Get(ctx context.Context, key string) (*models.Sample, error) {
	reply, err := c.do(ctx, builders.Get(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decode.LatestSample(reply)
}

// MGet returns the latest sample of every series matched by the filters,
// keyed by series key. Series without data appear with a nil sample.
func (c *Client) MGet(ctx context.Context, filters models.FilterOptions) (map[string]models.LatestResult, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	reply, err := c.do(ctx, builders.MGet(filters))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]models.LatestResult{}, nil
		}
		return nil, err
	}
	return decode.LatestSet(reply)
}

// QueryIndex returns the keys of every series matched by the filters.
func (c *Client) QueryIndex(ctx context.Context, filters models.FilterOptions) ([]string, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	reply, err := c.do(ctx, builders.QueryIndex(filters))
	if err != nil {
		return nil, err
	}
	return decode.Keys(reply)
}
