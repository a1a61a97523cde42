package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mythwatch/mythwatch/internal/model"
)

func testFetcher(apiBase, apiKey string) *Fetcher {
	return NewFetcher(
		model.NewsConfig{APIKey: apiKey, BaseURL: apiBase, Topic: "mpox", PageSize: 3},
		model.HTTPConfig{UserAgent: "Mythwatch/0.1"},
	)
}

func TestHeadlines_FromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("Missing API key header")
		}
		if q := r.URL.Query().Get("q"); q != "mpox" {
			t.Errorf("Query topic = %q, want mpox", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "Mpox cases decline in Europe", "url": "https://example.com/a"},
				{"title": "", "url": "https://example.com/skip"},
				{"title": "New vaccine guidance issued", "url": "https://example.com/b"}
			]
		}`))
	}))
	defer server.Close()

	f := testFetcher(server.URL, "test-key")
	items, err := f.Headlines(context.Background())
	if err != nil {
		t.Fatalf("Headlines failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Got %d items, want 2 (entry without title skipped)", len(items))
	}
	if items[0].Title != "Mpox cases decline in Europe" {
		t.Errorf("First title = %q", items[0].Title)
	}
}

func TestHeadlines_APIErrorFallsBackToNewsroom(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": "apiKeyInvalid", "message": "bad key"}`))
	}))
	defer api.Close()

	newsroom := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		_, _ = w.Write([]byte(`<html><body>
			<a href="/news/item/mpox-update-1">Mpox situation update</a>
			<a href="/about">About us</a>
			<a href="/news/item/mpox-update-1">Mpox situation update</a>
			<a href="/news/item/vaccine-rollout"><span>Vaccine</span> rollout begins</a>
		</body></html>`))
	}))
	defer newsroom.Close()

	f := testFetcher(api.URL, "bad-key")
	f.newsroomURL = newsroom.URL + "/news"

	items, err := f.Headlines(context.Background())
	if err != nil {
		t.Fatalf("Headlines failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Got %d items, want 2 after dedupe and filtering", len(items))
	}
	if items[1].Title != "Vaccine rollout begins" {
		t.Errorf("Second title = %q, want whitespace-joined anchor text", items[1].Title)
	}
}

func TestHeadlines_RobotsDisallowed(t *testing.T) {
	newsroom := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /news\n"))
			return
		}
		t.Error("Page fetched despite robots.txt disallow")
	}))
	defer newsroom.Close()

	f := testFetcher("", "")
	f.newsroomURL = newsroom.URL + "/news"

	if _, err := f.Headlines(context.Background()); err == nil {
		t.Fatal("Expected an error when robots.txt disallows the page")
	}
}

func TestParseNewsroom_LimitsResults(t *testing.T) {
	base, _ := url.Parse("https://example.org/news")
	page := `<html><body>
		<a href="/news/item/one">One</a>
		<a href="/news/item/two">Two</a>
		<a href="/news/item/three">Three</a>
	</body></html>`

	items := parseNewsroom(page, base, 2)
	if len(items) != 2 {
		t.Fatalf("Got %d items, want limit of 2", len(items))
	}
	if items[0].URL != "https://example.org/news/item/one" {
		t.Errorf("URL = %q, want resolved absolute URL", items[0].URL)
	}
}
