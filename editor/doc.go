// Package editor provides the Bubble Tea front end: an essay editor backed by
// the document package that submits drafts for feedback and renders the
// returned comments as highlights.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering, the feedback card and the submission session.
package editor
