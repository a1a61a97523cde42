package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mythwatch/mythwatch/internal/model"
)

type stubClaims struct {
	result model.ClassificationResult
	gotIn  string
}

func (s *stubClaims) Classify(_ context.Context, text string) model.ClassificationResult {
	s.gotIn = text
	return s.result
}

type stubRouter struct {
	resp model.Response
	user string
}

func (s *stubRouter) Process(_ context.Context, userID, _ string) model.Response {
	s.user = userID
	return s.resp
}

func newTestServer(claims *stubClaims, router *stubRouter) *httptest.Server {
	s := NewServer(model.HTTPConfig{Addr: ":0"}, claims, router)
	return httptest.NewServer(s.Handler())
}

func TestClassifyEndpoint(t *testing.T) {
	claims := &stubClaims{result: model.ClassificationResult{
		Label:       model.LabelMisinformation,
		Explanation: "contradicts evidence",
		Reason:      "known hoax",
		CitationURL: "https://www.who.int/news-room/fact-sheets/detail/mpox",
		Confidence:  0.95,
	}}
	server := newTestServer(claims, &stubRouter{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/classify", "application/json",
		strings.NewReader(`{"text": "Monkeypox is a hoax"}`))
	if err != nil {
		t.Fatalf("POST /classify failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["label"] != "Misinformation" {
		t.Errorf("label = %v, want Misinformation", body["label"])
	}
	if body["source_url"] != "https://www.who.int/news-room/fact-sheets/detail/mpox" {
		t.Errorf("source_url = %v, unexpected", body["source_url"])
	}
	if body["score"] != 0.95 {
		t.Errorf("score = %v, want 0.95", body["score"])
	}
	if claims.gotIn != "mpox is a hoax" {
		t.Errorf("Classifier input = %q, want normalized text", claims.gotIn)
	}
}

func TestClassifyEndpoint_MissingText(t *testing.T) {
	server := newTestServer(&stubClaims{}, &stubRouter{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/classify", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST /classify failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", resp.StatusCode)
	}
}

func TestClassifyEndpoint_MethodNotAllowed(t *testing.T) {
	server := newTestServer(&stubClaims{}, &stubRouter{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/classify")
	if err != nil {
		t.Fatalf("GET /classify failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", resp.StatusCode)
	}
}

func TestMessageEndpoint(t *testing.T) {
	router := &stubRouter{resp: model.Response{
		Intent: model.IntentGreeting,
		Text:   "Hi there! How can I help you today?",
	}}
	server := newTestServer(&stubClaims{}, router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/message", "application/json",
		strings.NewReader(`{"user_id": "u42", "text": "hello"}`))
	if err != nil {
		t.Fatalf("POST /message failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body model.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Intent != model.IntentGreeting {
		t.Errorf("intent = %q, want greeting", body.Intent)
	}
	if router.user != "u42" {
		t.Errorf("Routed user = %q, want u42", router.user)
	}
}

func TestMessageEndpoint_AnonymousDefault(t *testing.T) {
	router := &stubRouter{}
	server := newTestServer(&stubClaims{}, router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/message", "application/json",
		strings.NewReader(`{"text": "hello"}`))
	if err != nil {
		t.Fatalf("POST /message failed: %v", err)
	}
	_ = resp.Body.Close()

	if router.user != "anonymous" {
		t.Errorf("Routed user = %q, want anonymous", router.user)
	}
}

func TestRootEndpoint(t *testing.T) {
	server := newTestServer(&stubClaims{}, &stubRouter{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.StatusCode)
	}
}
