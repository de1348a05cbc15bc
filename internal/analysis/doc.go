// Package analysis holds the pure measurements taken over a user's schedule:
// calendar density, break gaps, nightly sleep opportunity and task pressure.
//
// Every function is a read-only computation over its arguments. Timestamps are
// expected in canonical form (see utils.Canonicalize).
package analysis
