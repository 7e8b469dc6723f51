package mockservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iw2rmb/redline/api"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req api.Request
	if err := parseJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: api.Message(err)})
		return
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-r.Context().Done():
			return
		}
	}

	comments := Check(req.Text)
	if comments == nil {
		comments = []api.Comment{}
	}
	s.log.Debug().
		Str("user_id", req.UserID).
		Int("draft", req.DraftNumber).
		Int("comments", len(comments)).
		Msg("feedback computed")

	writeJSON(w, http.StatusOK, api.Response{
		ResponseID:   s.newID(),
		FeedbackList: comments,
		Metadata: map[string]any{
			"system_choice": string(req.SystemChoice),
			"draft_number":  req.DraftNumber,
			"model":         "rules",
		},
	})
}

// parseJSON decodes exactly one JSON object into dst, rejecting unknown
// fields and bodies larger than maxBodyBytes.
func parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
