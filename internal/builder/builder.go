package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyassist/rag-backend/internal/api"
	assistantapi "github.com/studyassist/rag-backend/internal/api/assistant"
	"github.com/studyassist/rag-backend/internal/chunker"
	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/document"
	"github.com/studyassist/rag-backend/internal/embedding"
	"github.com/studyassist/rag-backend/internal/llm"
	"github.com/studyassist/rag-backend/internal/pkg/validator"
	"github.com/studyassist/rag-backend/internal/prompt"
	"github.com/studyassist/rag-backend/internal/session"
	"github.com/studyassist/rag-backend/internal/usecase/assistant"
	"github.com/studyassist/rag-backend/internal/vectorstore"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	if err := setupUnidocLicense(cfg.UnidocLicenseAPIKey, logger); err != nil {
		return nil, fmt.Errorf("setup unidoc license: %w", err)
	}

	// Setup the vector store backend
	vectors, db, err := setupVectorStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup vector store: %w", err)
	}

	// Initialize the document pipeline
	loader := document.NewLoader()
	splitter := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	logger.Info("Document pipeline initialized",
		zap.Int("chunk_size", cfg.ChunkSize),
		zap.Int("chunk_overlap", cfg.ChunkOverlap),
	)

	// Initialize model clients (with mock support)
	var embedder assistant.Embedder
	var llmClient assistant.CompletionClient

	if cfg.EnableMocks {
		logger.Info("Using mock clients for model services")
		embedder = embedding.NewMockEmbedder(logger)
		llmClient = llm.NewMockClient(prompt.FallbackAnswer, logger)
	} else {
		logger.Info("Using real clients for model services",
			zap.String("embedding_provider", cfg.EmbeddingCfg.Provider),
			zap.String("llm_provider", cfg.LLMCfg.Provider),
		)
		embedder, err = embedding.NewEmbedder(cfg, logger)
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("setup embedder: %w", err)
		}
		llmClient, err = llm.NewClient(cfg, logger)
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("setup llm client: %w", err)
		}
	}

	// Initialize session store
	sessions := session.NewStore(cfg.SessionCfg)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionCfg.TTL),
	)

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	assistantUC := assistant.NewUsecase(
		loader,
		splitter,
		embedder,
		vectors,
		llmClient,
		sessions,
		cfg.RetrievalTopK,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	assistantHandler := assistantapi.NewHandler(assistantUC, cfg.FileUploadCfg, fileValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(assistantHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// setupVectorStore builds the configured backend. The postgres backend
// also returns the owning pool so the app can close it on shutdown.
func setupVectorStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (vectorstore.Store, *pgxpool.Pool, error) {
	switch cfg.VectorStoreCfg.Backend {
	case config.VectorBackendMemory:
		logger.Info("Using in-memory vector store")
		return vectorstore.NewMemoryStore(), nil, nil

	case config.VectorBackendPostgres:
		db, err := setupDatabase(ctx, cfg.VectorStoreCfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("setup database: %w", err)
		}

		logger.Info("Running database migrations")
		if err := vectorstore.RunMigrations(cfg.VectorStoreCfg.MigrationsPath, cfg.VectorStoreCfg.DatabaseURL); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		return vectorstore.NewPostgresStore(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown vector store backend: %s", cfg.VectorStoreCfg.Backend)
	}
}

func closeDB(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}
