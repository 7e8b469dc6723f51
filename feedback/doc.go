// Package feedback turns service comments into live ranges on a document and
// owns them for the lifetime of a feedback batch.
//
// A comment goes through validation once (Materializer). Survivors become
// Handles whose ranges follow document edits; they are never re-derived from
// their original offsets. A List is the single owner of live handles and
// releases every handle it drops.
package feedback
