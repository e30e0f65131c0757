package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	var seenCtx string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtx, _ = r.Context().Value(RequestIDKey).(string)
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("Expected request header populated for downstream handlers")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seenCtx == "" {
		t.Error("Expected request id on context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seenCtx {
		t.Errorf("Expected response header %q, got %q", seenCtx, got)
	}
}

func TestRequestID_PreservesProvided(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("Expected provided id echoed, got %q", got)
	}
}

func TestSession_MintsCookie(t *testing.T) {
	var ctxID string
	handler := Session(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ctxID == "" {
		t.Fatal("Expected session id on context")
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("Expected %s cookie set, got %v", SessionCookie, cookies)
	}
	if cookies[0].Value != ctxID {
		t.Errorf("Expected cookie %q to match context id %q", cookies[0].Value, ctxID)
	}
}

func TestSession_ReusesCookie(t *testing.T) {
	var ctxID string
	handler := Session(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "existing-session"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ctxID != "existing-session" {
		t.Errorf("Expected existing session reused, got %q", ctxID)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie for a returning session")
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rr.Code)
	}

	var resp map[string]map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if resp["error"]["code"] != "RATE_LIMITED" {
		t.Errorf("Expected RATE_LIMITED code, got %v", resp["error"])
	}
}

func TestRateLimiter_SeparateAddresses(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("Expected %s within its own limit, got %d", addr, rr.Code)
		}
	}
}

func TestLog_FallsBackToStandardLogger(t *testing.T) {
	if Log(context.Background()) == nil {
		t.Fatal("Expected a usable logger without middleware")
	}
}

func TestLogger_AttachesEntry(t *testing.T) {
	base := logrus.New()
	base.SetOutput(io.Discard)

	var got logrus.FieldLogger
	handler := Logger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Log(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got == nil {
		t.Fatal("Expected request-scoped entry on context")
	}
	if got == logrus.StandardLogger() {
		t.Error("Expected the middleware's entry, got the fallback")
	}
}
