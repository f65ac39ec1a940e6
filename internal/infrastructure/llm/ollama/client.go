package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/infrastructure/resilience"
)

// Client talks to one Ollama host. It is constructed once in bootstrap and
// shared by the embedder, the generator and the route classifier so every
// caller goes through the same connection pool and model pair.
type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, genModel, embedModel string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	request := map[string]any{
		"model": e.client.embedModel,
		"input": texts,
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := e.client.postJSON(ctx, "/api/embed", request, &response, "embed"); err != nil {
		return nil, domain.WrapError(domain.ErrEmbeddingFailed, "embed texts", err)
	}
	if len(response.Embeddings) != len(texts) {
		return nil, domain.WrapError(
			domain.ErrEmbeddingFailed,
			"embed texts",
			fmt.Errorf("embeddings/texts mismatch: %d/%d", len(response.Embeddings), len(texts)),
		)
	}
	return response.Embeddings, nil
}

// EmbedQuery reuses the batch path so query vectors live in the same
// embedding space as chunk vectors.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, domain.WrapError(domain.ErrEmbeddingFailed, "embed query", fmt.Errorf("empty embedding result"))
	}
	return vectors[0], nil
}

type GeneratorOptions struct {
	MaxTokens   int
	Temperature float64
}

type Generator struct {
	client *Client
	opts   GeneratorOptions
}

func NewGenerator(client *Client, opts GeneratorOptions) *Generator {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 250
	}
	return &Generator{client: client, opts: opts}
}

func (g *Generator) GenerateAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error) {
	text, err := g.client.generateText(ctx, buildAnswerPrompt(question, chunks), g.opts)
	if err != nil {
		return "", domain.WrapError(domain.ErrGenerationFailed, "generate answer", err)
	}
	return text, nil
}

func (g *Generator) SummarizeSearchResults(ctx context.Context, question, digest string) (string, error) {
	text, err := g.client.generateText(ctx, buildWebSummaryPrompt(question, digest), g.opts)
	if err != nil {
		return "", domain.WrapError(domain.ErrGenerationFailed, "summarize search results", err)
	}
	return text, nil
}

type Router struct {
	client *Client
}

func NewRouter(client *Client) *Router {
	return &Router{client: client}
}

// ClassifyQuery returns the raw model reply; the caller parses it.
func (r *Router) ClassifyQuery(ctx context.Context, query string) (string, error) {
	reply, err := r.client.generateText(ctx, buildRoutePrompt(query), GeneratorOptions{
		MaxTokens:   8,
		Temperature: 0,
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrClassificationFailed, "classify query", err)
	}
	return reply, nil
}

func (c *Client) generateText(ctx context.Context, prompt string, opts GeneratorOptions) (string, error) {
	reqBody := map[string]any{
		"model":  c.genModel,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": opts.Temperature,
			"num_predict": opts.MaxTokens,
		},
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}
