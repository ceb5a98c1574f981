package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	handler := WithRequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/autos", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", rec.Code)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}

	entry := logs.All()[0]
	fields := entry.ContextMap()
	if fields["method"] != "POST" {
		t.Errorf("method field = %v; want POST", fields["method"])
	}
	if fields["path"] != "/autos" {
		t.Errorf("path field = %v; want /autos", fields["path"])
	}
	if fields["status"] != int64(http.StatusCreated) {
		t.Errorf("status field = %v; want 201", fields["status"])
	}
}
