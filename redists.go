// Package redists formats and parses commands of the RedisTimeSeries module
// on top of an existing go-redis connection. The package owns no network
// stack, pooling or retry logic of its own: it borrows a connection-like
// value for the duration of each call, turns a typed request into the token
// sequence the module expects, hands it to the connection's generic Do
// primitive and decodes the raw reply into a typed result.
//
//	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379", Protocol: 2})
//	ts := redists.Wrap(rdb)
//
//	err := ts.Create(ctx, "sensor:temp", models.Options{
//		Retention: time.Hour,
//		Labels:    map[string]string{"sensor": "temperature"},
//	})
//
// The decoders expect the RESP2 reply shapes the module documents, so
// connections should be configured with Protocol: 2.
//
// Commands can also be queued on a redis.Pipeliner (its Do defers execution
// until Exec); build the token sequences with the engine/builders package
// and decode the collected replies with engine/decode afterwards.
package redists

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Conn is the slice of the go-redis surface this wrapper needs: the generic
// command primitive. *redis.Client, *redis.ClusterClient,
// redis.UniversalClient and redis.Pipeliner all satisfy it.
type Conn interface {
	Do(ctx context.Context, args ...interface{}) *redis.Cmd
}

// Wrap borrows an existing go-redis connection and exposes the time series
// command set on it. The connection's lifecycle stays with the caller.
func Wrap(conn Conn) *Client {
	return &Client{conn: conn}
}
