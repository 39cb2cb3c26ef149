package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseLogger(t *testing.T) {
	rr := httptest.NewRecorder()
	lw := New(rr)

	if lw.Status() != http.StatusOK {
		t.Errorf("want default status %d, got %d", http.StatusOK, lw.Status())
	}

	lw.Header().Set("Content-Type", "application/json")
	lw.WriteHeader(http.StatusUnprocessableEntity)
	if _, err := lw.Write([]byte(`{"censored":true}`)); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	if lw.Status() != http.StatusUnprocessableEntity {
		t.Errorf("want status %d, got %d", http.StatusUnprocessableEntity, lw.Status())
	}
	if lw.Size() != len(`{"censored":true}`) {
		t.Errorf("want size %d, got %d", len(`{"censored":true}`), lw.Size())
	}
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status not forwarded: got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Error("header not forwarded")
	}
}
