package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestEchoRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(Echo))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	for _, msg := range []string{"hello", "world"} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		_, got, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(got) != msg {
			t.Errorf("expected echo %q, got %q", msg, got)
		}
	}
}

func TestEchoRejectsPlainHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(Echo))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-upgrade request, got %d", resp.StatusCode)
	}
}
