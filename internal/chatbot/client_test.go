package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"shopassist/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// echoServer replies with a fixed record and captures every request body.
func echoServer(t *testing.T, reply models.ChatResponse) (*httptest.Server, *[]models.ChatRequest) {
	t.Helper()
	var seen []models.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("Expected path /chat, got %s", r.URL.Path)
		}
		var req models.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		seen = append(seen, req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}))
	return srv, &seen
}

func TestSend_AppendsPairInOrder(t *testing.T) {
	srv, seen := echoServer(t, models.ChatResponse{
		Success:                 true,
		Response:                "We have sunglasses in stock.",
		RecommendedProducts:     []string{"OLJCESPC7Z"},
		TotalProductsConsidered: 9,
	})
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	resp := c.Send(context.Background(), "do you sell sunglasses?")

	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.Response != "We have sunglasses in stock." {
		t.Errorf("Expected reply text, got %q", resp.Response)
	}

	history := c.History()
	if len(history) != 2 {
		t.Fatalf("Expected 2 transcript lines, got %d", len(history))
	}
	if history[0] != "User: do you sell sunglasses?" {
		t.Errorf("Expected user line first, got %q", history[0])
	}
	if history[1] != "Assistant: We have sunglasses in stock." {
		t.Errorf("Expected assistant line second, got %q", history[1])
	}

	if len(*seen) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(*seen))
	}
	if (*seen)[0].Message != "do you sell sunglasses?" {
		t.Errorf("Expected raw message on the wire, got %q", (*seen)[0].Message)
	}
	if len((*seen)[0].History) != 0 {
		t.Errorf("Expected empty history on first send, got %v", (*seen)[0].History)
	}
}

func TestSend_EmptyHistoryMarshalsAsArray(t *testing.T) {
	var rawBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rawBody = string(body)
		json.NewEncoder(w).Encode(models.ChatResponse{Success: true, Response: "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	c.Send(context.Background(), "hi")

	if !strings.Contains(rawBody, `"history":[]`) {
		t.Errorf("Expected empty history to serialize as [], got body %s", rawBody)
	}
}

func TestSend_HistoryWindowCapped(t *testing.T) {
	srv, seen := echoServer(t, models.ChatResponse{Success: true, Response: "noted"})
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	for i := 0; i < 7; i++ {
		c.Send(context.Background(), fmt.Sprintf("msg %d", i))
	}

	// Seventh request rides on 12 accumulated lines; only the last 10 travel.
	last := (*seen)[6]
	if len(last.History) != 10 {
		t.Fatalf("Expected history capped at 10 lines, got %d", len(last.History))
	}
	if last.History[0] != "User: msg 1" {
		t.Errorf("Expected oldest lines dropped from the wire, got first %q", last.History[0])
	}
	if last.History[9] != "Assistant: noted" {
		t.Errorf("Expected newest line last, got %q", last.History[9])
	}

	// The full view keeps everything.
	if got := len(c.History()); got != 14 {
		t.Errorf("Expected full transcript of 14 lines, got %d", got)
	}
}

func TestSend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	resp := c.Send(context.Background(), "hello")

	if !reflect.DeepEqual(resp, models.FallbackResponse()) {
		t.Errorf("Expected exact fallback record, got %+v", resp)
	}
	if len(c.History()) != 0 {
		t.Errorf("Expected transcript unchanged after failure, got %d lines", len(c.History()))
	}
}

func TestSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, WithLogger(testLogger()))
	resp := c.Send(context.Background(), "hello")

	if !reflect.DeepEqual(resp, models.FallbackResponse()) {
		t.Errorf("Expected exact fallback record, got %+v", resp)
	}
	if len(c.History()) != 0 {
		t.Errorf("Expected transcript unchanged after failure, got %d lines", len(c.History()))
	}
}

func TestSend_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	resp := c.Send(context.Background(), "hello")

	if !reflect.DeepEqual(resp, models.FallbackResponse()) {
		t.Errorf("Expected exact fallback record, got %+v", resp)
	}
	if len(c.History()) != 0 {
		t.Errorf("Expected transcript unchanged after failure, got %d lines", len(c.History()))
	}
}

func TestSend_PassesThroughUnsuccessfulRecord(t *testing.T) {
	srv, _ := echoServer(t, models.ChatResponse{Success: false, Response: "catalog offline"})
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	resp := c.Send(context.Background(), "hi")

	if resp.Success {
		t.Error("Expected success=false passed through")
	}
	if resp.Response != "catalog offline" {
		t.Errorf("Expected service text passed through, got %q", resp.Response)
	}

	// A parsed 2xx still appends, whatever the flag says.
	history := c.History()
	if len(history) != 2 {
		t.Fatalf("Expected pair appended, got %d lines", len(history))
	}
	if history[1] != "Assistant: catalog offline" {
		t.Errorf("Expected raw assistant line, got %q", history[1])
	}
}

func TestSend_MissingFieldsDecodeToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	resp := c.Send(context.Background(), "hi")

	if resp.Success || resp.Response != "" || resp.RecommendedProducts != nil || resp.TotalProductsConsidered != 0 {
		t.Errorf("Expected zero values for absent fields, got %+v", resp)
	}
	if got := len(c.History()); got != 2 {
		t.Errorf("Expected pair appended on parsed 2xx, got %d lines", got)
	}
}

func TestSend_TransmitsEmptyMessage(t *testing.T) {
	srv, seen := echoServer(t, models.ChatResponse{Success: true, Response: "?"})
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	c.Send(context.Background(), "")

	if len(*seen) != 1 {
		t.Fatalf("Expected the empty message to be transmitted, got %d requests", len(*seen))
	}
	if (*seen)[0].Message != "" {
		t.Errorf("Expected empty message on the wire, got %q", (*seen)[0].Message)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	srv, _ := echoServer(t, models.ChatResponse{Success: true, Response: "hello"})
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	c.Send(context.Background(), "hi")

	history := c.History()
	history[0] = "User: tampered"

	if got := c.History()[0]; got != "User: hi" {
		t.Errorf("Expected transcript unaffected by caller mutation, got %q", got)
	}
}

func TestClearHistory(t *testing.T) {
	srv, seen := echoServer(t, models.ChatResponse{Success: true, Response: "hello"})
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	c.Send(context.Background(), "first")
	c.ClearHistory()

	if got := len(c.History()); got != 0 {
		t.Fatalf("Expected empty transcript after clear, got %d lines", got)
	}

	c.Send(context.Background(), "second")
	if got := (*seen)[1].History; len(got) != 0 {
		t.Errorf("Expected empty history after clear, got %v", got)
	}
}

func TestCall_WindowIsCallerSupplied(t *testing.T) {
	srv, seen := echoServer(t, models.ChatResponse{Success: true, Response: "ok"})
	defer srv.Close()

	history := []string{"User: a", "Assistant: b"}
	if _, err := Call(context.Background(), http.DefaultClient, srv.URL+"/", "next", history); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if !reflect.DeepEqual((*seen)[0].History, history) {
		t.Errorf("Expected caller history on the wire, got %v", (*seen)[0].History)
	}
}
