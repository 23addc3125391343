package llm

import (
	"context"
	"strings"

	"github.com/futig/faq-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without a model. Rephrase prompts echo the last
// user question; answer prompts echo the stuffed context so callers can see
// what retrieval produced.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatCompletionMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion", zap.Int("message_count", len(messages)))

	// Rephrase prompts end with the search-query instruction; return the
	// last real user message as the standalone query.
	if len(messages) > 0 && strings.Contains(messages[len(messages)-1].Content, "generate a search query") {
		for i := len(messages) - 2; i >= 0; i-- {
			if messages[i].Role == entity.RoleUser {
				return messages[i].Content, nil
			}
		}
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("[MOCK] Based on the provided context: ")
	if len(messages) > 0 && messages[0].Role == "system" {
		sb.WriteString(firstLineOfContext(messages[0].Content))
	}
	return sb.String(), nil
}

func firstLineOfContext(system string) string {
	const marker = "this information:"
	idx := strings.Index(system, marker)
	if idx < 0 {
		return "no context supplied"
	}
	rest := strings.TrimSpace(system[idx+len(marker):])
	if nl := strings.IndexByte(rest, '\n'); nl > 0 {
		rest = rest[:nl]
	}
	if rest == "" {
		return "no context supplied"
	}
	return rest
}
