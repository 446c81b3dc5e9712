package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusWriterRecordsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	sw.WriteHeader(http.StatusInternalServerError)

	if sw.status != http.StatusNotFound {
		t.Errorf("expected first status to stick, got %d", sw.status)
	}
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.Write([]byte("body"))

	if sw.status != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", sw.status)
	}
	if rr.Body.String() != "body" {
		t.Errorf("expected body passthrough, got %q", rr.Body.String())
	}
}

func TestStatusWriterHijackUnsupported(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	if _, _, err := sw.Hijack(); err == nil {
		t.Error("expected error when underlying writer cannot hijack")
	}
	if sw.hijacked {
		t.Error("expected hijacked flag to stay unset")
	}
}
