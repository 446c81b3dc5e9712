package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ronniefr/api-logger/accesslog"
)

func newTestLogger(t *testing.T, opts accesslog.Options) *accesslog.Logger {
	t.Helper()
	l, err := accesslog.New(opts)
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return l
}

var textLine = regexp.MustCompile(`^\[(INFO|WARN|ERROR)\] \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z [A-Z]+ \S+ - Status: \d+ - Duration: (\d+)ms\n$`)

func TestLoggingSuccessLine(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	got := buf.String()
	if !textLine.MatchString(got) {
		t.Fatalf("line does not match contract: %q", got)
	}
	if !strings.Contains(got, "GET /ping - Status: 200") {
		t.Errorf("unexpected line: %q", got)
	}
	if !strings.HasPrefix(got, "[INFO] ") {
		t.Errorf("expected info level, got %q", got)
	}
}

func TestLoggingMeasuresDuration(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"city":"london"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/weather/london", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	got := buf.String()
	if !strings.Contains(got, "GET /weather/london - Status: 200") {
		t.Fatalf("unexpected line: %q", got)
	}
	m := textLine.FindStringSubmatch(got)
	if m == nil {
		t.Fatalf("line does not match contract: %q", got)
	}
	ms, err := strconv.Atoi(m[2])
	if err != nil {
		t.Fatalf("parse duration: %v", err)
	}
	if ms < 50 {
		t.Errorf("expected duration >= 50ms, got %dms", ms)
	}
}

func TestLoggingPanicLoggedAndReRaised(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	boom := errors.New("something went wrong")
	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(boom)
	}))

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	rr := httptest.NewRecorder()

	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		h.ServeHTTP(rr, req)
	}()

	if recovered == nil {
		t.Fatal("expected panic to propagate")
	}
	if recovered != boom {
		t.Fatalf("expected original panic value, got %v", recovered)
	}

	got := buf.String()
	if !strings.HasPrefix(got, "[ERROR] ") {
		t.Fatalf("expected error line, got %q", got)
	}
	if !strings.Contains(got, "POST /items - Status: 500") {
		t.Errorf("unexpected line: %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", got)
	}
}

func TestLoggingPanicValuePassthrough(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("not an error value")
	}))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rr := httptest.NewRecorder()

	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		h.ServeHTTP(rr, req)
	}()

	if recovered != "not an error value" {
		t.Fatalf("expected original panic value, got %v", recovered)
	}
	if !strings.HasPrefix(buf.String(), "[ERROR] ") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestLoggingStatusLevels(t *testing.T) {
	cases := []struct {
		status int
		prefix string
	}{
		{http.StatusOK, "[INFO] "},
		{http.StatusNotFound, "[WARN] "},
		{http.StatusServiceUnavailable, "[ERROR] "},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		l := newTestLogger(t, accesslog.Options{Writer: &buf})

		h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if !strings.HasPrefix(buf.String(), tc.prefix) {
			t.Errorf("status %d: expected prefix %q, got %q", tc.status, tc.prefix, buf.String())
		}
	}
}

func TestLoggingImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/implicit", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), "- Status: 200") {
		t.Errorf("expected implicit 200, got %q", buf.String())
	}
}

func TestLoggingEachRequestLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/a", "/b"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "GET /a ") || !strings.Contains(lines[1], "GET /b ") {
		t.Errorf("unexpected lines: %q", lines)
	}
}

func TestLoggingRecordFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, accesslog.Options{Format: accesslog.FormatJSON, Writer: &buf})

	h := RequestID(Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/search?q=go&token=secret", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if got["path"] != "/search" {
		t.Errorf("expected path /search, got %v", got["path"])
	}
	if got["query_params"] != "q=go&token=secret" {
		t.Errorf("expected raw query, got %v", got["query_params"])
	}
	if got["client_host"] != "203.0.113.7" {
		t.Errorf("expected forwarded client, got %v", got["client_host"])
	}
	if got["user_agent"] != "test-agent" {
		t.Errorf("expected user agent, got %v", got["user_agent"])
	}
	id, _ := got["request_id"].(string)
	if id == "" {
		t.Error("expected request_id to be set")
	}
	if rr.Header().Get("X-Request-ID") != id {
		t.Errorf("expected response header to match logged id %q", id)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggingHijackedUpgrade(t *testing.T) {
	var buf syncBuffer
	l := newTestLogger(t, accesslog.Options{Writer: &buf})

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	h := Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.WriteMessage(mt, msg)
	}))

	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, msg, err := conn.ReadMessage(); err != nil || string(msg) != "hello" {
		t.Fatalf("echo failed: %v %q", err, msg)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if strings.Contains(buf.String(), "GET /ws - Status: 101") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 101 line, got %q", buf.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.9:4321"
	if got := clientIP(r); got != "192.0.2.9" {
		t.Errorf("expected remote host, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.2, 192.0.2.9")
	if got := clientIP(r); got != "198.51.100.2" {
		t.Errorf("expected first forwarded hop, got %q", got)
	}
}
