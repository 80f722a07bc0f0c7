package kb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAsk_True(t *testing.T) {
	var gotQuery, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"head":{},"boolean":true}`))
	}))
	defer server.Close()

	client := NewSPARQLClient(server.URL, 5*time.Second, "test-agent", nil)
	entailed, err := client.Ask(context.Background(), "Q90", "P1376", "Q142")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if !entailed {
		t.Error("expected true")
	}

	if !strings.Contains(gotQuery, "ASK { wd:Q90 wdt:P1376 wd:Q142 . }") {
		t.Errorf("unexpected query: %s", gotQuery)
	}
	if gotAccept != "application/sparql-results+json" {
		t.Errorf("unexpected Accept header: %s", gotAccept)
	}
}

func TestAsk_False(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"boolean":false}`))
	}))
	defer server.Close()

	client := NewSPARQLClient(server.URL, 5*time.Second, "test-agent", nil)
	entailed, err := client.Ask(context.Background(), "Q64", "P1376", "Q142")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if entailed {
		t.Error("expected false")
	}
}

func TestAsk_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewSPARQLClient(server.URL, 5*time.Second, "test-agent", nil)
	if _, err := client.Ask(context.Background(), "Q90", "P1376", "Q142"); err == nil {
		t.Error("expected error on 429")
	}
}

func TestAsk_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewSPARQLClient(server.URL, 5*time.Second, "test-agent", nil)
	if _, err := client.Ask(context.Background(), "Q90", "P1376", "Q142"); err == nil {
		t.Error("expected decode error")
	}
}
