package api

// SystemChoice selects the service's feedback backend.
type SystemChoice string

const (
	SystemRuleBased SystemChoice = "rule-based"
	SystemLLMBased  SystemChoice = "llm-based"
)

// Request is the body of POST /grammar_feedback. Text must be the flattened
// document exactly as offsets will be measured against it.
type Request struct {
	UserID       string       `json:"user_id" validate:"required"`
	SystemChoice SystemChoice `json:"system_choice" validate:"required,oneof=rule-based llm-based"`
	DraftNumber  int          `json:"draft_number" validate:"min=1"`
	Text         string       `json:"text" validate:"required"`
}

// Comment is one feedback item. Only the global offsets and the prose fields
// are interpreted by the client; the local offsets are passed through.
type Comment struct {
	Index               int    `json:"index"`
	Source              string `json:"source"`
	Corrected           string `json:"corrected"`
	HighlightStart      Offset `json:"highlight_start"`
	HighlightEnd        Offset `json:"highlight_end"`
	HighlightText       string `json:"highlight_text"`
	ErrorTag            string `json:"error_tag"`
	FeedbackExplanation string `json:"feedback_explanation"`
	FeedbackSuggestion  string `json:"feedback_suggestion"`

	GlobalHighlightStart Offset `json:"global_highlight_start"`
	GlobalHighlightEnd   Offset `json:"global_highlight_end"`
}

// Response is the body returned by POST /grammar_feedback.
type Response struct {
	ResponseID   string         `json:"response_id"`
	// FeedbackList is nil when the body carries no list (absent or null),
	// and empty when the service found nothing.
	FeedbackList []Comment      `json:"feedback_list"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
