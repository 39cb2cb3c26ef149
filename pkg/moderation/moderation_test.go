package moderation

import (
	"testing"

	"github.com/gofrs/uuid"

	"antiswear/pkg/censor"
	"antiswear/pkg/models"
)

func TestPolicy_Judge(t *testing.T) {
	c := censor.New()
	c.AddBlacklist(censor.NewPair("idiot", "id**t"))

	id, err := uuid.NewV4()
	if err != nil {
		t.Fatalf("failed to generate uuid: %v", err)
	}

	tests := []struct {
		name   string
		policy Policy
		text   string
		want   models.Verdict
	}{
		{
			name:   "Clean comment",
			policy: Policy{Message: "watch your language"},
			text:   "have a nice day",
			want:   models.Verdict{CommentID: id, Text: "have a nice day"},
		},
		{
			name:   "Redacted comment",
			policy: Policy{Message: "watch your language"},
			text:   "you idiot",
			want:   models.Verdict{CommentID: id, Censored: true, Text: "you id**t", Message: "watch your language"},
		},
		{
			name:   "Blocked comment",
			policy: Policy{Block: true},
			text:   "you idiot",
			want:   models.Verdict{CommentID: id, Censored: true, Blocked: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Judge(c, models.Comment{ID: id, Text: tt.text})
			if got != tt.want {
				t.Errorf("want verdict %+v, got %+v", tt.want, got)
			}
		})
	}
}
