package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/faq-backend/internal/config"
	"github.com/futig/faq-backend/internal/entity"
	"github.com/futig/faq-backend/internal/integration/common"
	pkghttp "github.com/futig/faq-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector computes text embeddings via an OpenAI-compatible service.
type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// EmbedBatch embeds all texts in one batched call and returns vectors in
// input order. Failure is reported as entity.ErrEmbeddingService and must
// abort the request rather than yield an empty index.
func (c *Connector) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Info(ctx, "embedding texts", zap.Int("text_count", len(texts)))

	req := &entity.EmbeddingRequest{
		Model: c.config.Model,
		Input: texts,
	}

	var resp entity.EmbeddingResponse
	err := retry.Do(func() error {
		resp = entity.EmbeddingResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbeddingsEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrEmbeddingService, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", entity.ErrEmbeddingService, len(texts), len(resp.Data))
	}

	vectors := make([][]float64, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, fmt.Errorf("%w: vector index %d out of range", entity.ErrEmbeddingService, item.Index)
		}
		vectors[item.Index] = item.Embedding
	}

	ctxzap.Info(ctx, "texts embedded", zap.Int("vector_count", len(vectors)))

	return vectors, nil
}
