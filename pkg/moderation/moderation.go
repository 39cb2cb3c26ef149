// Package moderation turns censor results into verdicts for comments.
package moderation

import (
	"antiswear/pkg/censor"
	"antiswear/pkg/models"
)

// Policy decides what happens to a comment that contained blacklisted words.
type Policy struct {
	// Block rejects the comment instead of redacting it.
	Block bool `toml:"blockSwear"`
	// Message is attached to verdicts of censored comments.
	Message string `toml:"swearMessage"`
}

// Judge runs comment through c and applies the policy.
func (p Policy) Judge(c *censor.Censor, comment models.Comment) models.Verdict {
	v := models.Verdict{CommentID: comment.ID}

	redacted, changed := c.Process(comment.Text)
	if !changed {
		v.Text = comment.Text
		return v
	}

	v.Censored = true
	v.Message = p.Message
	if p.Block {
		v.Blocked = true
		return v
	}
	v.Text = redacted

	return v
}
