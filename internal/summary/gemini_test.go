package summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGeminiSummarize(t *testing.T) {
	var gotPath, gotKey, gotPrompt string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		body, _ := io.ReadAll(r.Body)
		var req generateRequest
		json.Unmarshal(body, &req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "  A short summary.  "}},
				}},
			},
		})
	}))
	defer srv.Close()

	g := NewGemini(srv.URL, "test-key", "gemini-1.5-flash", 5*time.Second)

	got, err := g.Summarize(context.Background(), "a very long note about milk")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "A short summary." {
		t.Errorf("expected trimmed summary, got %q", got)
	}

	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key in query, got %q", gotKey)
	}
	if !strings.HasPrefix(gotPrompt, "Summarize the following note in 2-3 sentences:") {
		t.Errorf("unexpected prompt %q", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "a very long note about milk") {
		t.Errorf("expected note text in prompt, got %q", gotPrompt)
	}
}

func TestGeminiSummarizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 403, "message": "API key invalid"},
		})
	}))
	defer srv.Close()

	g := NewGemini(srv.URL, "bad-key", "gemini-1.5-flash", 5*time.Second)

	_, err := g.Summarize(context.Background(), "text")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "API key invalid") {
		t.Errorf("expected provider message in error, got %q", err.Error())
	}
}

func TestGeminiSummarizeEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	g := NewGemini(srv.URL, "key", "gemini-1.5-flash", 5*time.Second)

	if _, err := g.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected an error for an empty response")
	}
}

func TestGeminiSummarizeUnreachable(t *testing.T) {
	g := NewGemini("http://127.0.0.1:1", "key", "gemini-1.5-flash", time.Second)

	if _, err := g.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected a network error")
	}
}
