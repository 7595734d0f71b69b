package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eduai-labs/eduai-backend/internal/ai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ai.GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := ai.NewGeminiClient("test-key", "gemini-2.5-flash")
	client.BaseURL = srv.URL
	return client
}

func candidateResponse(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return b
}

func TestGenerate_ReturnsCandidateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write(candidateResponse("generated text"))
	})

	got, err := client.Generate(context.Background(), "say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "generated text" {
		t.Errorf("text = %q, want %q", got, "generated text")
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	contents, _ := gotBody["contents"].([]any)
	if len(contents) != 1 {
		t.Fatalf("contents length = %d, want 1", len(contents))
	}
}

func TestChat_SendsHistoryThenMessage(t *testing.T) {
	var gotBody struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write(candidateResponse("ok"))
	})

	history := []ai.Message{{Role: "user", Text: "q1"}, {Role: "model", Text: "a1"}}
	if _, err := client.Chat(context.Background(), history, "q2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotBody.Contents) != 3 {
		t.Fatalf("contents length = %d, want 3", len(gotBody.Contents))
	}
	last := gotBody.Contents[2]
	if last.Role != "user" || last.Parts[0].Text != "q2" {
		t.Errorf("last turn = %+v, want user/q2", last)
	}
}

func TestGenerate_APIError_SurfacesStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "say hi")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("want error mentioning 429, got %v", err)
	}
}

func TestGenerate_NoCandidates_IsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	if _, err := client.Generate(context.Background(), "say hi"); err == nil {
		t.Error("want error on empty candidates")
	}
}
