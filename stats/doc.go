// Package stats holds the measurement domain model the daemon client
// consumes: measures, measurements, views, aggregations, and tags. The
// types here are plain data; aggregation itself happens in the daemon.
package stats
