package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avoronov/docqa/internal/core/domain"
)

func newGenerateCaptureServer(t *testing.T, reply string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		*captured = payload
		_ = json.NewEncoder(w).Encode(map[string]string{"response": reply})
	}))
}

func TestGenerateAnswerJoinsChunksWithBlankLines(t *testing.T) {
	var captured map[string]any
	server := newGenerateCaptureServer(t, "Paris.", &captured)
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	gen := NewGenerator(client, GeneratorOptions{MaxTokens: 250, Temperature: 0.2})
	answer, err := gen.GenerateAnswer(context.Background(), "What is the capital of France?", []domain.RetrievedChunk{
		{Text: "first chunk", Source: "a.pdf", Score: 0.9},
		{Text: "second chunk", Source: "b.pdf", Score: 0.7},
	})
	if err != nil {
		t.Fatalf("GenerateAnswer() error = %v", err)
	}
	if answer != "Paris." {
		t.Fatalf("unexpected answer %q", answer)
	}

	prompt, _ := captured["prompt"].(string)
	if !strings.Contains(prompt, "first chunk\n\nsecond chunk") {
		t.Fatalf("expected blank-line separated context, got %q", prompt)
	}
	if !strings.Contains(prompt, "What is the capital of France?") {
		t.Fatalf("expected question in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, domain.NoAnswerSentinel) {
		t.Fatalf("expected sentinel instruction in prompt")
	}

	opts, _ := captured["options"].(map[string]any)
	if opts["temperature"].(float64) != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", opts["temperature"])
	}
	if opts["num_predict"].(float64) != 250 {
		t.Fatalf("expected num_predict 250, got %v", opts["num_predict"])
	}
}

func TestRouterClassifiesAtZeroTemperature(t *testing.T) {
	var captured map[string]any
	server := newGenerateCaptureServer(t, "documents", &captured)
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	router := NewRouter(client)
	reply, err := router.ClassifyQuery(context.Background(), "what does my thesis say about chunking?")
	if err != nil {
		t.Fatalf("ClassifyQuery() error = %v", err)
	}
	if reply != "documents" {
		t.Fatalf("unexpected reply %q", reply)
	}

	opts, _ := captured["options"].(map[string]any)
	if opts["temperature"].(float64) != 0 {
		t.Fatalf("expected temperature 0, got %v", opts["temperature"])
	}
	prompt, _ := captured["prompt"].(string)
	if !strings.Contains(prompt, "documents or web") {
		t.Fatalf("expected routing instruction in prompt, got %q", prompt)
	}
}

func TestEmbedQuerySharesBatchPath(t *testing.T) {
	var batchSize int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		var payload struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		batchSize = len(payload.Input)
		vectors := make([][]float32, len(payload.Input))
		for i := range vectors {
			vectors[i] = []float32{0.1, 0.2}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": vectors})
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	embedder := NewEmbedder(client)

	vector, err := embedder.EmbedQuery(context.Background(), "hello")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if batchSize != 1 {
		t.Fatalf("expected query embedded as batch of one, got %d", batchSize)
	}
	if len(vector) != 2 {
		t.Fatalf("expected 2-dim vector, got %d", len(vector))
	}
}

func TestEmbedErrorsCarryKindAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	embedder := NewEmbedder(client)
	_, err := embedder.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestEmbedCountMismatchIsEmbeddingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{{0.1}}})
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	embedder := NewEmbedder(client)
	_, err := embedder.Embed(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
}
