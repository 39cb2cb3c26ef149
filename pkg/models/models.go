package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	ParentID  uuid.UUID `json:"parent_id,omitempty"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Published time.Time `json:"published"`
}

// Verdict is the outcome of checking a comment. Text holds the redacted
// comment when Censored is set and the comment was not blocked.
type Verdict struct {
	CommentID uuid.UUID `json:"comment_id"`
	Censored  bool      `json:"censored"`
	Blocked   bool      `json:"blocked"`
	Text      string    `json:"text,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Diagnostic describes how a text was seen by the censor.
type Diagnostic struct {
	Text      string `json:"text"`
	Canonical string `json:"canonical"`
	Separated string `json:"separated"`
	Result    string `json:"result"`
	Censored  bool   `json:"censored"`
	ElapsedNs int64  `json:"elapsed_ns"`
}
