package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_GeneratesNew(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		if rid, _ := c.Get("request_id").(string); rid == "" {
			t.Error("expected request_id to be generated")
		}
		return c.String(http.StatusOK, "ok")
	}

	if err := RequestID()(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	RequestID()(okHandler)(c)

	if got := rec.Header().Get(RequestIDHeader); got != "my-custom-id" {
		t.Errorf("expected my-custom-id in response header, got %s", got)
	}
	if got := c.Get("request_id"); got != "my-custom-id" {
		t.Errorf("expected my-custom-id on context, got %v", got)
	}
}

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "req-1")

	if err := Logger(logger)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["request_id"] != "req-1" || line["path"] != "/test" || line["status"] != float64(200) {
		t.Errorf("unexpected log line %v", line)
	}
}

func TestLogger_UsesHTTPErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/missing", nil), httptest.NewRecorder())

	Logger(logger)(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})(c)

	var line map[string]interface{}
	json.Unmarshal(buf.Bytes(), &line)
	if line["status"] != float64(404) || line["level"] != "warn" {
		t.Errorf("unexpected log line %v", line)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/panic", nil), httptest.NewRecorder())

	err := Recovery(zerolog.Nop())(func(echo.Context) error {
		panic("test panic")
	})(c)

	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", httpErr.Code)
	}
}

func TestRecovery_LogsRequestContext(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/advisory/dose", nil), httptest.NewRecorder())
	c.Set("request_id", "rid-42")

	err := Recovery(zerolog.New(&buf))(func(echo.Context) error {
		panic(io.ErrUnexpectedEOF)
	})(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	body, _ := httpErr.Message.(map[string]string)
	if body["request_id"] != "rid-42" {
		t.Errorf("expected request id in error body, got %v", httpErr.Message)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["path"] != "/api/v1/advisory/dose" || entry["method"] != http.MethodPost || entry["request_id"] != "rid-42" {
		t.Errorf("missing request fields in %v", entry)
	}
	if entry["error"] != io.ErrUnexpectedEOF.Error() {
		t.Errorf("expected panic error logged, got %v", entry["error"])
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("expected http.ErrAbortHandler to propagate, got %v", r)
		}
	}()
	Recovery(zerolog.Nop())(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})(c)
}

func TestRecovery_PassesThrough(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ok", nil), httptest.NewRecorder())

	if err := Recovery(zerolog.Nop())(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	SecurityHeaders()(okHandler)(c)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
		"Referrer-Policy":        "no-referrer",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 1 << 20},
		{"1M", 1 << 20},
		{"2MB", 2 << 20},
		{"512K", 512 << 10},
		{"1g", 1 << 30},
		{"2048", 2048},
		{"lots", 1 << 20},
		{"-5", 1 << 20},
	}
	for _, tt := range tests {
		if got := ParseLimit(tt.in); got != tt.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBodyLimit_ContentLength(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 20)))
	c := e.NewContext(req, httptest.NewRecorder())

	err := BodyLimit("10")(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestBodyLimit_StreamingBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 20)))
	req.ContentLength = -1
	c := e.NewContext(req, httptest.NewRecorder())

	err := BodyLimit("10")(func(c echo.Context) error {
		_, err := io.ReadAll(c.Request().Body)
		return err
	})(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 while reading, got %v", err)
	}
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	c := e.NewContext(req, httptest.NewRecorder())

	err := BodyLimit("1K")(func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if string(body) != `{"a":1}` {
			t.Errorf("unexpected body %q", body)
		}
		return err
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRateLimit_Exhausted(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	h := mw(okHandler)

	for i := 0; i < 2; i++ {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if err := h(c); err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	e := echo.New()
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})(okHandler)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		if err := h(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Errorf("first request from %s should pass, got %v", ip, err)
		}
	}
}

func TestRateLimit_Skipper(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		Skipper:           func(echo.Context) bool { return true },
	}
	h := RateLimit(cfg)(okHandler)
	for i := 0; i < 3; i++ {
		if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())); err != nil {
			t.Fatalf("skipped request failed: %v", err)
		}
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(1, 1, start)
	if ok, _ := b.take(start); !ok {
		t.Fatal("first take should succeed")
	}
	if ok, retry := b.take(start); ok || retry < 1 {
		t.Fatalf("second take should fail with retry, got ok=%v retry=%d", ok, retry)
	}
	if ok, _ := b.take(start.Add(time.Second)); !ok {
		t.Fatal("take after refill should succeed")
	}
}

func TestRequestTimeout_Exceeded(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequestTimeout(10 * time.Millisecond)(func(c echo.Context) error {
		<-c.Request().Context().Done()
		return c.Request().Context().Err()
	})(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %v", err)
	}
}

func TestRequestTimeout_Completes(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	var hasDeadline bool
	err := RequestTimeout(time.Second)(func(c echo.Context) error {
		_, hasDeadline = c.Request().Context().Deadline()
		return nil
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasDeadline {
		t.Error("expected request context deadline")
	}
}

func TestRequestTimeout_Disabled(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	RequestTimeout(0)(func(c echo.Context) error {
		if _, ok := c.Request().Context().Deadline(); ok {
			t.Error("expected no deadline when timeout is disabled")
		}
		return nil
	})(c)
}

func TestAudit_RecordsAdvisoryCalls(t *testing.T) {
	var entries []AuditEntry
	rec := AuditRecorderFunc(func(e AuditEntry) error {
		entries = append(entries, e)
		return nil
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisory/dose", strings.NewReader(`{}`))
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("request_id", "req-123")

	if err := Audit(zerolog.Nop(), rec)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Action != "advisory.dose" || got.RequestID != "req-123" || got.StatusCode != http.StatusOK {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestAudit_SkipsReferenceReads(t *testing.T) {
	called := false
	rec := AuditRecorderFunc(func(AuditEntry) error {
		called = true
		return nil
	})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/medications", nil), httptest.NewRecorder())
	Audit(zerolog.Nop(), rec)(okHandler)(c)
	if called {
		t.Error("GET reference reads should not be audited")
	}
}

func TestAudit_CapturesErrorStatus(t *testing.T) {
	var got AuditEntry
	rec := AuditRecorderFunc(func(e AuditEntry) error {
		got = e
		return nil
	})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/cds-services/drug-interactions", nil), httptest.NewRecorder())
	Audit(zerolog.Nop(), rec)(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	})(c)

	if got.StatusCode != http.StatusBadRequest || got.Action != "cds.drug-interactions" {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestAuditAction(t *testing.T) {
	tests := []struct {
		method, path, want string
	}{
		{http.MethodPost, "/api/v1/advisory/protocol", "advisory.protocol"},
		{http.MethodPost, "/cds-services/medication-safety/feedback", "cds.medication-safety.feedback"},
		{http.MethodGet, "/cds-services", ""},
		{http.MethodPost, "/api/v1/advisory/", ""},
		{http.MethodPost, "/api/v1/protocols", ""},
	}
	for _, tt := range tests {
		if got := auditAction(tt.method, tt.path); got != tt.want {
			t.Errorf("auditAction(%s %s) = %q, want %q", tt.method, tt.path, got, tt.want)
		}
	}
}
