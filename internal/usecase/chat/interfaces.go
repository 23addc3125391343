package chat

import (
	"context"

	"github.com/futig/faq-backend/internal/entity"
	"github.com/futig/faq-backend/internal/pkg/vectorindex"
)

// SourceConnector fetches the FAQ corpus from the content API.
type SourceConnector interface {
	Fetch(ctx context.Context) ([]entity.FaqEntry, error)
}

// EmbeddingConnector turns texts into embedding vectors, batched.
type EmbeddingConnector interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// CompletionConnector runs one chat completion and returns the model text.
type CompletionConnector interface {
	Complete(ctx context.Context, messages []entity.ChatCompletionMessage) (string, error)
}

// IndexBuilder produces the vector index the retriever searches. The
// default implementation rebuilds it from scratch on every call; cached or
// incremental implementations can be substituted without touching the
// endpoint logic.
type IndexBuilder interface {
	Build(ctx context.Context) (*vectorindex.Index, error)
}
