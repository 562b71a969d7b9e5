package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kingpin"
	"github.com/redis/go-redis/v9"

	redists "github.com/tompro/redis-ts"
	"github.com/tompro/redis-ts/engine/models"
)

var (
	app     = kingpin.New("redis-ts", "Command line helper for the RedisTimeSeries module.")
	addr    = app.Flag("redis-address", "Address of the Redis server.").Envar("REDIS_ADDRESS").Default("127.0.0.1:6379").String()
	timeout = app.Flag("timeout", "Per command timeout.").Default("5s").Duration()

	createCmd          = app.Command("create", "Create a time series key.")
	createKey          = createCmd.Arg("key", "Series key.").Required().String()
	createRetention    = createCmd.Flag("retention", "Maximum sample age, 0 keeps everything.").Duration()
	createChunkSize    = createCmd.Flag("chunk-size", "Chunk allocation size in bytes.").Int64()
	createUncompressed = createCmd.Flag("uncompressed", "Disable chunk compression.").Bool()
	createLabels       = createCmd.Flag("label", "Label attached to the series, name=value. Repeatable.").StringMap()

	addCmd       = app.Command("add", "Append a sample to a series.")
	addKey       = addCmd.Arg("key", "Series key.").Required().String()
	addValue     = addCmd.Arg("value", "Sample value.").Required().Float64()
	addTimestamp = addCmd.Flag("timestamp", "Millisecond timestamp, server time when omitted.").Default("-1").Int64()

	getCmd = app.Command("get", "Print the latest sample of a series.")
	getKey = getCmd.Arg("key", "Series key.").Required().String()

	rangeCmd   = app.Command("range", "Print the samples of a series.")
	rangeKey   = rangeCmd.Arg("key", "Series key.").Required().String()
	rangeFrom  = rangeCmd.Flag("from", "Start timestamp, earliest when omitted.").Default("-1").Int64()
	rangeTo    = rangeCmd.Flag("to", "End timestamp, latest when omitted.").Default("-1").Int64()
	rangeCount = rangeCmd.Flag("count", "Maximum number of samples.").Int64()

	mrangeCmd     = app.Command("mrange", "Print samples of every series matching the filters.")
	mrangeLabels  = mrangeCmd.Flag("with-labels", "Include series labels in the output.").Bool()
	mrangeFilters = mrangeCmd.Arg("filter", "Label filter, label=value or label!=value.").Required().Strings()

	infoCmd = app.Command("info", "Print the info record of a series.")
	infoKey = infoCmd.Arg("key", "Series key.").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	rdb := redis.NewClient(&redis.Options{Addr: *addr, Protocol: 2})
	defer rdb.Close()

	ts := redists.Wrap(rdb)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch command {
	case createCmd.FullCommand():
		opts := models.Options{
			Retention:    *createRetention,
			Uncompressed: *createUncompressed,
			ChunkSize:    *createChunkSize,
			Labels:       *createLabels,
		}
		if err := ts.Create(ctx, *createKey, opts); err != nil {
			log.Fatalf("create %s: %v", *createKey, err)
		}
		fmt.Printf("created %s\n", *createKey)

	case addCmd.FullCommand():
		timestamp := *addTimestamp
		if timestamp < 0 {
			timestamp = models.ServerTimestamp
		}
		stored, err := ts.Add(ctx, *addKey, timestamp, *addValue)
		if err != nil {
			log.Fatalf("add %s: %v", *addKey, err)
		}
		fmt.Printf("%s %d %g\n", *addKey, stored, *addValue)

	case getCmd.FullCommand():
		sample, err := ts.Get(ctx, *getKey)
		if err != nil {
			log.Fatalf("get %s: %v", *getKey, err)
		}
		if sample == nil {
			fmt.Printf("%s: no data\n", *getKey)
			return
		}
		fmt.Printf("%s %d %g\n", *getKey, sample.Timestamp, sample.Value)

	case rangeCmd.FullCommand():
		q := models.WholeRange()
		if *rangeFrom >= 0 {
			q.From = *rangeFrom
		}
		if *rangeTo >= 0 {
			q.To = *rangeTo
		}
		q.Count = *rangeCount
		samples, err := ts.Range(ctx, *rangeKey, q)
		if err != nil {
			log.Fatalf("range %s: %v", *rangeKey, err)
		}
		for _, s := range samples {
			fmt.Printf("%d %g\n", s.Timestamp, s.Value)
		}

	case mrangeCmd.FullCommand():
		filters, err := parseFilters(*mrangeFilters)
		if err != nil {
			log.Fatalf("mrange: %v", err)
		}
		results, err := ts.MRange(ctx, models.WholeRange(), models.FilterOptions{
			WithLabels: *mrangeLabels,
			Filters:    filters,
		})
		if err != nil {
			log.Fatalf("mrange: %v", err)
		}
		for key, series := range results {
			fmt.Printf("%s %v\n", key, series.Labels)
			for _, s := range series.Samples {
				fmt.Printf("  %d %g\n", s.Timestamp, s.Value)
			}
		}

	case infoCmd.FullCommand():
		info, err := ts.Info(ctx, *infoKey)
		if err != nil {
			log.Fatalf("info %s: %v", *infoKey, err)
		}
		fmt.Printf("samples:   %d\n", info.TotalSamples)
		fmt.Printf("retention: %s\n", info.Retention)
		fmt.Printf("chunks:    %d\n", info.ChunkCount)
		fmt.Printf("labels:    %v\n", info.Labels)
		for _, rule := range info.Rules {
			fmt.Printf("rule:      %s %s %s\n", rule.DestinationKey, rule.Type, rule.Bucket)
		}
	}
}

// parseFilters turns command line filter expressions into label predicates.
// Only the equality forms are offered here; the set and presence forms are
// library-level features.
func parseFilters(exprs []string) ([]models.Filter, error) {
	filters := make([]models.Filter, 0, len(exprs))
	for _, expr := range exprs {
		if label, value, ok := strings.Cut(expr, "!="); ok {
			filters = append(filters, models.NotEquals(label, value))
			continue
		}
		label, value, ok := strings.Cut(expr, "=")
		if !ok {
			return nil, fmt.Errorf("filter %q: expected label=value or label!=value", expr)
		}
		filters = append(filters, models.Equals(label, value))
	}
	return filters, nil
}
