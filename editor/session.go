package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
	"github.com/iw2rmb/redline/feedback"
)

// FeedbackClient submits one draft for feedback. *api.Client implements it.
type FeedbackClient interface {
	GrammarFeedback(ctx context.Context, req api.Request) (api.Response, error)
}

const (
	msgEmptyText    = "Please enter some text before submitting."
	msgDraftLimit   = "Maximum draft limit (%d) reached."
	msgUnknownError = "An unknown error occurred."
)

var errNoClient = errors.New("no feedback service configured")

// FeedbackResultMsg carries a finished submission back to Update.
type FeedbackResultMsg struct {
	Seq      uint64
	Response api.Response
	Err      error
}

type pendingSubmission struct {
	seq         uint64
	text        string
	fingerprint string
	draft       int
}

// Session drives draft submissions and owns the feedback list.
type Session struct {
	client    FeedbackClient
	userID    string
	system    api.SystemChoice
	maxDrafts int
	log       zerolog.Logger

	materializer *feedback.Materializer
	list         *feedback.List

	draft   int
	loading bool
	banner  string
	seq     uint64
	pending pendingSubmission
	report  feedback.Report
}

func newSession(cfg Config) *Session {
	log := cfg.Logger.With().Str("component", "session").Logger()
	var opts []feedback.MaterializerOption
	if cfg.IDFunc != nil {
		opts = append(opts, feedback.WithIDFunc(cfg.IDFunc))
	}
	return &Session{
		client:       cfg.Client,
		userID:       cfg.UserID,
		system:       cfg.SystemChoice,
		maxDrafts:    cfg.MaxDrafts,
		log:          log,
		materializer: feedback.NewMaterializer(cfg.Logger, opts...),
		list:         feedback.NewList(),
		draft:        1,
	}
}

// Draft is the number the next submission will carry.
func (s *Session) Draft() int { return s.draft }
func (s *Session) MaxDrafts() int { return s.maxDrafts }
func (s *Session) Loading() bool { return s.loading }
func (s *Session) Banner() string { return s.banner }
func (s *Session) SystemChoice() api.SystemChoice { return s.system }
func (s *Session) List() *feedback.List { return s.list }

// LastReport is the materialization report of the last successful
// submission.
func (s *Session) LastReport() feedback.Report { return s.report }

// ToggleSystem switches between the rule-based and the LLM-based backend.
// It is ignored while a submission is in flight.
func (s *Session) ToggleSystem() {
	if s.loading {
		return
	}
	if s.system == api.SystemRuleBased {
		s.system = api.SystemLLMBased
	} else {
		s.system = api.SystemRuleBased
	}
}

// Submit captures the flattened text of d and returns the command that sends
// it. It returns nil when a submission is already in flight or the draft is
// refused; a refusal sets the banner. On acceptance the current feedback is
// released and d becomes read-only until the result arrives.
func (s *Session) Submit(d *document.Document) tea.Cmd {
	if s.loading {
		return nil
	}
	text := d.Text()
	switch {
	case strings.TrimSpace(text) == "":
		s.banner = msgEmptyText
		return nil
	case s.draft > s.maxDrafts:
		s.banner = fmt.Sprintf(msgDraftLimit, s.maxDrafts)
		return nil
	}

	s.loading = true
	s.banner = ""
	s.list.Clear()
	d.SetReadOnly(true)

	s.seq++
	s.pending = pendingSubmission{
		seq:         s.seq,
		text:        text,
		fingerprint: document.Fingerprint(text),
		draft:       s.draft,
	}
	req := api.Request{
		UserID:       s.userID,
		SystemChoice: s.system,
		DraftNumber:  s.draft,
		Text:         text,
	}

	s.log.Info().
		Int("draft", req.DraftNumber).
		Str("system", string(req.SystemChoice)).
		Int("text_len", document.FlatLen(d)).
		Msg("submitting draft")

	client, seq := s.client, s.seq
	return func() tea.Msg {
		if client == nil {
			return FeedbackResultMsg{Seq: seq, Err: errNoClient}
		}
		resp, err := client.GrammarFeedback(context.Background(), req)
		return FeedbackResultMsg{Seq: seq, Response: resp, Err: err}
	}
}

// Apply finishes the in-flight submission with msg. Results for any other
// submission are ignored. It reports whether msg was applied.
func (s *Session) Apply(d *document.Document, msg FeedbackResultMsg) bool {
	if !s.loading || msg.Seq != s.pending.seq {
		s.log.Debug().Uint64("seq", msg.Seq).Msg("ignoring stale feedback result")
		return false
	}
	s.loading = false
	d.SetReadOnly(false)

	if msg.Err != nil {
		s.banner = api.Message(msg.Err)
		if s.banner == "" {
			s.banner = msgUnknownError
		}
		s.list.Clear()
		s.log.Error().Err(msg.Err).Int("draft", s.pending.draft).Msg("feedback request failed")
		return true
	}

	if fp := document.Fingerprint(d.Text()); fp != s.pending.fingerprint {
		s.log.Warn().
			Str("submitted", s.pending.fingerprint).
			Str("current", fp).
			Msg("document changed while feedback was pending")
	}

	if msg.Response.FeedbackList == nil {
		s.list.Clear()
		s.report = feedback.Report{}
		s.log.Info().Str("response_id", msg.Response.ResponseID).Msg("no feedback items received")
		return true
	}

	handles, report := s.materializer.Materialize(d, s.pending.text, msg.Response.FeedbackList)
	s.list.Replace(handles)
	s.report = report
	s.draft++

	s.log.Info().
		Str("response_id", msg.Response.ResponseID).
		Int("received", report.Received).
		Int("dropped", len(report.Dropped)).
		Msg("feedback applied")
	return true
}
