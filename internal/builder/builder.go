package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/faq-backend/internal/api"
	chatapi "github.com/futig/faq-backend/internal/api/chat"
	"github.com/futig/faq-backend/internal/config"
	"github.com/futig/faq-backend/internal/integration/embedding"
	"github.com/futig/faq-backend/internal/integration/llm"
	"github.com/futig/faq-backend/internal/integration/source"
	"github.com/futig/faq-backend/internal/pkg/splitter"
	"github.com/futig/faq-backend/internal/pkg/validator"
	chatuc "github.com/futig/faq-backend/internal/usecase/chat"
	"go.uber.org/zap"
)

func Build() (*App, error) {
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

	// Initialize external service connectors (with mock support)
	var sourceConnector chatuc.SourceConnector
	var embeddingConnector chatuc.EmbeddingConnector
	var llmConnector chatuc.CompletionConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		sourceConnector = source.NewMockConnector(logger)
		embeddingConnector = embedding.NewMockConnector(logger)
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		sourceConnector = source.NewConnector(cfg.SourceConnectorCfg, logger)
		embeddingConnector = embedding.NewConnector(cfg.EmbeddingConnectorCfg, logger)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	// Index builder: rebuild per request by default, TTL-cached when
	// configured.
	split := splitter.New(cfg.ChatCfg.ChunkSize, cfg.ChatCfg.ChunkOverlap)
	var indexBuilder chatuc.IndexBuilder = chatuc.NewRebuildIndexBuilder(sourceConnector, split, embeddingConnector)
	if cfg.ChatCfg.IndexCacheTTL > 0 {
		logger.Info("Using cached index builder", zap.Duration("ttl", cfg.ChatCfg.IndexCacheTTL))
		indexBuilder = chatuc.NewCachedIndexBuilder(indexBuilder, cfg.ChatCfg.IndexCacheTTL)
	}

	// Initialize use case
	chatUC := chatuc.NewUsecase(
		cfg.ChatCfg,
		indexBuilder,
		embeddingConnector,
		llmConnector,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handler and router
	chatHandler := chatapi.NewHandler(chatUC, validator.NewValidator())
	router := api.SetupRouter(chatHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

func setupLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	return cfg.Build()
}
