package bootstrap

import (
	"context"
	"fmt"

	"github.com/avoronov/docqa/internal/config"
	"github.com/avoronov/docqa/internal/core/ports"
	"github.com/avoronov/docqa/internal/core/usecase"
	"github.com/avoronov/docqa/internal/infrastructure/chunking"
	"github.com/avoronov/docqa/internal/infrastructure/extractor"
	"github.com/avoronov/docqa/internal/infrastructure/extractor/pdf"
	"github.com/avoronov/docqa/internal/infrastructure/extractor/plaintext"
	"github.com/avoronov/docqa/internal/infrastructure/extractor/spreadsheet"
	"github.com/avoronov/docqa/internal/infrastructure/llm/ollama"
	"github.com/avoronov/docqa/internal/infrastructure/queue/nats"
	"github.com/avoronov/docqa/internal/infrastructure/repository/postgres"
	"github.com/avoronov/docqa/internal/infrastructure/resilience"
	"github.com/avoronov/docqa/internal/infrastructure/search/serpapi"
	"github.com/avoronov/docqa/internal/infrastructure/storage/localfs"
	"github.com/avoronov/docqa/internal/infrastructure/vector/qdrant"
)

// App wires adapters to use cases. Both binaries share this assembly; the
// API never calls ProcessUC and the worker never calls AskUC, but building
// the full graph in one place keeps the wiring honest.
type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.DocumentRepository
	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	AskUC     ports.QuestionService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient, ollama.GeneratorOptions{
		MaxTokens:   cfg.AnswerMaxTokens,
		Temperature: cfg.AnswerTemperature,
	})
	classifier := ollama.NewRouter(ollamaClient)

	index := qdrant.New(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)
	searcher := serpapi.New(cfg.SerpAPIURL, cfg.SerpAPIKey, executor)

	chunker := chunking.NewSplitter(cfg.ChunkWindowWords, cfg.ChunkStrideWords)
	extract := extractor.NewDispatcher(
		pdf.NewExtractor(storage),
		spreadsheet.NewExtractor(storage),
		plaintext.NewExtractor(storage),
	)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, extract, chunker, embedder, index)

	routeUC := usecase.NewRouteUseCase(classifier)
	retrieveUC := usecase.NewRetrieveUseCase(embedder, index, cfg.RAGTopK)
	answerUC := usecase.NewAnswerUseCase(generator)
	askUC := usecase.NewAskUseCase(routeUC, retrieveUC, answerUC, searcher, generator, cfg.WebSearchResults)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		AskUC:     askUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
