// Package entry implements the mood journal entry service: creating entries,
// listing a user's journal, and the ranged fetch the summary engine reads.
//
// Timestamps are assigned here in UTC; repositories must hand them back in
// UTC as well.
package entry
