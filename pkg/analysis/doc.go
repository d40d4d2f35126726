// Package analysis scores resume text and mines achievements from it.
//
// The engine is deterministic: the same text always produces the same
// report, so scores are reproducible across runs and safe to cache.
// AI never participates in quality scoring; optional AI enrichment
// lives in pkg/match and pkg/rocket.
package analysis
