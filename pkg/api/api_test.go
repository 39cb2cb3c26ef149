package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"antiswear/pkg/censor"
	"antiswear/pkg/models"
	"antiswear/pkg/moderation"
)

const testRequestID = "9b4f6c5d-1a32-4d8f-b5a6-23c9e1f7d2a1"

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	exitCode := m.Run()
	os.Exit(exitCode)
}

func newTestAPI(t *testing.T, policy moderation.Policy) *API {
	t.Helper()

	c := censor.New()
	err := c.LoadFromJSON("../censor/test_data/words.json")
	if err != nil {
		t.Fatalf("failed to load words for censor: %v", err)
	}

	api, err := New("", c, policy, nil)
	if err != nil {
		t.Fatalf("failed to create API: %v", err)
	}

	return api
}

func postComment(t *testing.T, api *API, text string) *httptest.ResponseRecorder {
	t.Helper()

	targetPostID, err := uuid.NewV4()
	if err != nil {
		t.Fatalf("failed to generate uuid: %v", err)
	}
	var testComment = models.Comment{
		PostID: targetPostID,
		Author: "John Doe",
		Text:   text,
	}

	b, err := json.Marshal(testComment)
	if err != nil {
		t.Fatalf("failed to marshal comment: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewReader(b))
	req.Header.Set("X-Request-Id", testRequestID)
	rr := httptest.NewRecorder()
	api.Router().ServeHTTP(rr, req)

	return rr
}

func TestAPI_checkComment(t *testing.T) {
	api := newTestAPI(t, moderation.Policy{})

	rr := postComment(t, api, "Have a nice day")
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
	}

	var v models.Verdict
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode verdict: %v", err)
	}
	if v.Censored || v.Text != "Have a nice day" {
		t.Errorf("unexpected verdict for clean comment: %+v", v)
	}
	if rr.Header().Get("X-Request-Id") != testRequestID {
		t.Errorf("want request id %s echoed, got %q", testRequestID, rr.Header().Get("X-Request-Id"))
	}
}

func TestAPI_checkCommentRedacted(t *testing.T) {
	api := newTestAPI(t, moderation.Policy{Message: "mind your language"})

	rr := postComment(t, api, "you are an idiot")
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
	}

	var v models.Verdict
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode verdict: %v", err)
	}
	if !v.Censored || v.Blocked {
		t.Errorf("want censored, not blocked verdict, got %+v", v)
	}
	if v.Text != "you are an id**t" {
		t.Errorf("want text %q, got %q", "you are an id**t", v.Text)
	}
	if v.Message != "mind your language" {
		t.Errorf("want message %q, got %q", "mind your language", v.Message)
	}
}

func TestAPI_checkCommentBanned(t *testing.T) {
	api := newTestAPI(t, moderation.Policy{Block: true})

	rr := postComment(t, api, "you are an idiot")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want status code %v, got status code %v", http.StatusUnprocessableEntity, rr.Code)
	}
}

func TestAPI_checkCommentBadBody(t *testing.T) {
	api := newTestAPI(t, moderation.Policy{})

	req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	api.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want status code %v, got status code %v", http.StatusBadRequest, rr.Code)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("request id was not generated")
	}
}

func TestAPI_testText(t *testing.T) {
	api := newTestAPI(t, moderation.Policy{})

	b, err := json.Marshal(TestRequest{Text: "you are an idiot"})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(b))
	rr := httptest.NewRecorder()
	api.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
	}

	var diag models.Diagnostic
	if err := json.NewDecoder(rr.Body).Decode(&diag); err != nil {
		t.Fatalf("failed to decode diagnostic: %v", err)
	}
	if !diag.Censored {
		t.Error("want text censored")
	}
	if diag.Result != "you are an id**t" {
		t.Errorf("want result %q, got %q", "you are an id**t", diag.Result)
	}
	if diag.Canonical != "iuirinidiut" {
		t.Errorf("want canonical %q, got %q", "iuirinidiut", diag.Canonical)
	}
	if diag.Separated != "iu iri in idiut" {
		t.Errorf("want separated %q, got %q", "iu iri in idiut", diag.Separated)
	}
}

func TestAPI_dictionaryStats(t *testing.T) {
	api := newTestAPI(t, moderation.Policy{})

	req := httptest.NewRequest(http.MethodGet, "/dictionary", nil)
	rr := httptest.NewRecorder()
	api.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
	}

	var stats DictionaryStats
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.Blacklist != 6 || stats.Whitelist != 3 {
		t.Errorf("want 6 blacklist and 3 whitelist entries, got %+v", stats)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("want content type application/json, got %q", ct)
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abcdef", "abcdef"},
		{testRequestID, "9b4f6c..."},
	}
	for _, tt := range tests {
		if got := shorten(tt.in); got != tt.want {
			t.Errorf("shorten(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
