// Package mapper turns raw source records into catalog entities using a
// compiled mapping configuration.
//
// Per record the flow is fetched → filtered (selector.query) → mapped
// (entity builder) → emitted or rejected. Per-record failures never abort a
// batch: a type mismatch on an optional field degrades that field to null,
// and a record whose identifier cannot be resolved is rejected and reported.
//
// Structure:
//
//	types.go     - Record, Iterator, Result, RejectedError
//	builder.go   - selector match + entity construction
//	processor.go - batch and stream processing over a loaded config
package mapper
