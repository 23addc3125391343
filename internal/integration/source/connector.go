package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/faq-backend/internal/config"
	"github.com/futig/faq-backend/internal/entity"
	"github.com/futig/faq-backend/internal/integration/common"
	pkghttp "github.com/futig/faq-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector fetches FAQ records from the content API. One outbound call per
// invocation, no caching.
type Connector struct {
	config    config.SourceConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.SourceConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Fetch retrieves the FAQ list and normalizes each record into a flat
// question/answer pair. Any upstream failure is reported as
// entity.ErrSourceUnavailable so the caller can degrade to an empty corpus.
func (c *Connector) Fetch(ctx context.Context) ([]entity.FaqEntry, error) {
	ctxzap.Info(ctx, "fetching FAQ corpus from content API")

	var resp entity.FaqListResponse
	err := c.connector.DoRequest(ctx, http.MethodGet, c.config.FaqsEndpoint, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSourceUnavailable, err)
	}

	entries := extractEntries(resp)

	ctxzap.Info(ctx, "FAQ corpus fetched", zap.Int("entry_count", len(entries)))

	return entries, nil
}

// extractEntries flattens raw FAQ items. Only the first text node of the
// first answer block is read; multi-paragraph answers lose content beyond
// the first block. Known limitation inherited from the source schema
// handling, kept rather than silently extended.
func extractEntries(resp entity.FaqListResponse) []entity.FaqEntry {
	entries := make([]entity.FaqEntry, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.Attributes.Question == "" {
			continue
		}
		var answer string
		if len(item.Attributes.Answer) > 0 && len(item.Attributes.Answer[0].Children) > 0 {
			answer = item.Attributes.Answer[0].Children[0].Text
		}
		entries = append(entries, entity.FaqEntry{
			Question: item.Attributes.Question,
			Answer:   answer,
		})
	}
	return entries
}
