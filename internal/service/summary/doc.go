// Package summary implements the period summary engine.
//
// A summary request fetches a user's journal entries for a window, aggregates
// them (count, per-category histogram, mean rating, zero-filled per-day
// counts), classifies the window into a coarse RangeLabel used as the advice
// cache partition, and attaches an AI suggestion: a fresh cached one when
// available, otherwise a newly generated one that is then appended to the
// cache.
//
// Only entry store failures abort a request. Cache and generator problems
// degrade to a textual suggestion.
//
// The service depends on the interfaces in repository.go. It never imports
// net/http or database/sql directly.
package summary
