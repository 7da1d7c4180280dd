// Package stream defines the baseline sequential IO vocabulary for capstream:
// interface aliases over the standard io interfaces, the readahead and flush
// contracts, a closed error kind taxonomy, composite operations with
// interruption-tolerant retry semantics, and a small set of concrete stream
// implementations (cursor, limiter, null source, infinite source, and
// discarding sink).
package stream
