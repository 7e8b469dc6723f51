// Package mockservice is a local stand-in for the grammar feedback service.
// It serves POST /grammar_feedback with a small deterministic rule set so the
// client can be exercised offline.
package mockservice
