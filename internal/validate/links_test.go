package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/veritas/internal/model"
)

func newTestProber() *Prober {
	return NewProber(5*time.Second, "test-agent", 2_000_000, 2, "", "", "")
}

func TestProbe_LabelFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>x</title><script>var paris = 0;</script></head>
			<body><p>Paris is the capital and largest city of France.</p></body></html>`))
	}))
	defer server.Close()

	entities := []model.LinkedEntity{{Mention: "Paris", Label: "Paris", URL: server.URL + "/wiki/Paris"}}

	results := newTestProber().Probe(context.Background(), entities)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].IsAccessible {
		t.Errorf("expected accessible, got %+v", results[0])
	}
	if !results[0].LabelFound {
		t.Errorf("expected label found, got %+v", results[0])
	}
	if results[0].StatusCode != http.StatusOK {
		t.Errorf("unexpected status: %d", results[0].StatusCode)
	}
}

func TestProbe_LabelMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><p>This page is about something else entirely.</p></body></html>`))
	}))
	defer server.Close()

	entities := []model.LinkedEntity{{Mention: "Paris", Label: "Paris", URL: server.URL + "/wiki/Paris"}}

	results := newTestProber().Probe(context.Background(), entities)
	if !results[0].IsAccessible || results[0].LabelFound {
		t.Errorf("expected accessible page without the label, got %+v", results[0])
	}
}

func TestProbe_ScriptTextIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><script>document.title = "Paris";</script><p>other content</p></body></html>`))
	}))
	defer server.Close()

	entities := []model.LinkedEntity{{Mention: "Paris", Label: "Paris", URL: server.URL + "/p"}}

	results := newTestProber().Probe(context.Background(), entities)
	if results[0].LabelFound {
		t.Error("label occurrences inside scripts must not count")
	}
}

func TestProbe_DeadLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	entities := []model.LinkedEntity{{Mention: "Gone", Label: "Gone", URL: server.URL + "/gone"}}

	results := newTestProber().Probe(context.Background(), entities)
	if results[0].IsAccessible {
		t.Errorf("404 must not be accessible: %+v", results[0])
	}
	if results[0].StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status: %d", results[0].StatusCode)
	}
}

func TestProbe_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte(`<html><body>secret</body></html>`))
	}))
	defer server.Close()

	entities := []model.LinkedEntity{{Mention: "x", Label: "x", URL: server.URL + "/private/page"}}

	results := newTestProber().Probe(context.Background(), entities)
	if results[0].Error != "blocked by robots.txt" {
		t.Errorf("expected robots block, got %+v", results[0])
	}
}

func TestProbe_SkipsEntitiesWithoutURL(t *testing.T) {
	entities := []model.LinkedEntity{{Mention: "unresolved"}}

	if results := newTestProber().Probe(context.Background(), entities); results != nil {
		t.Errorf("expected no results, got %+v", results)
	}
}

func TestVisibleText(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head>
		<body><noscript>enable js</noscript><p>Hello <b>World</b></p><iframe>frame</iframe></body></html>`

	text, err := visibleText(html)
	if err != nil {
		t.Fatalf("visibleText failed: %v", err)
	}
	for _, forbidden := range []string{"color:red", "enable js", "frame"} {
		if strings.Contains(text, forbidden) {
			t.Errorf("text must not contain %q: %q", forbidden, text)
		}
	}
	if !strings.Contains(text, "Hello") || !strings.Contains(text, "World") {
		t.Errorf("expected visible text, got %q", text)
	}
}
