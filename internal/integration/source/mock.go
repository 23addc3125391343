package source

import (
	"context"

	"github.com/futig/faq-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector serves a small fixed FAQ corpus so the service can run
// without a content API.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Fetch(ctx context.Context) ([]entity.FaqEntry, error) {
	entries := []entity.FaqEntry{
		{
			Question: "What is Strapi?",
			Answer:   "Strapi is an open-source headless CMS for building customizable APIs.",
		},
		{
			Question: "How do I create a content type?",
			Answer:   "Open the Content-Type Builder in the admin panel and add a new collection type with its fields.",
		},
		{
			Question: "Does Strapi support roles and permissions?",
			Answer:   "Yes, the Users & Permissions plugin lets you define roles and restrict API access per endpoint.",
		},
	}

	ctxzap.Info(ctx, "[MOCK] serving fixed FAQ corpus", zap.Int("entry_count", len(entries)))

	return entries, nil
}
