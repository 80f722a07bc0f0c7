package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPZeroShot_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req zeroShotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.CandidateLabels) != 2 {
			t.Errorf("unexpected labels: %v", req.CandidateLabels)
		}
		_, _ = w.Write([]byte(`{"labels":["yes","no"],"scores":[0.87,0.13]}`))
	}))
	defer server.Close()

	ranked, err := NewHTTPZeroShot(server.URL, 5*time.Second).Classify(context.Background(), "Certainly it is.", []string{"yes", "no"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].Label != "yes" || ranked[0].Score != 0.87 {
		t.Errorf("unexpected top label: %+v", ranked[0])
	}
}

func TestHTTPZeroShot_LengthMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"labels":["yes","no"],"scores":[0.9]}`))
	}))
	defer server.Close()

	if _, err := NewHTTPZeroShot(server.URL, 5*time.Second).Classify(context.Background(), "text", []string{"yes", "no"}); err == nil {
		t.Error("expected error on label/score mismatch")
	}
}

func TestHTTPZeroShot_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := NewHTTPZeroShot(server.URL, 5*time.Second).Classify(context.Background(), "text", []string{"yes", "no"}); err == nil {
		t.Error("expected error on 502")
	}
}
