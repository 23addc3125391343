package chat

import (
	"context"
	"strings"

	"github.com/futig/faq-backend/internal/config"
	"github.com/futig/faq-backend/internal/entity"
	"github.com/futig/faq-backend/internal/pkg/logger"
	"github.com/futig/faq-backend/internal/pkg/vectorindex"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase runs the retrieval-augmented answering pipeline: build index,
// rewrite the query against the conversation, retrieve, compose. All stages
// execute strictly sequentially within one request.
type Usecase struct {
	cfg          config.ChatConfig
	indexBuilder IndexBuilder
	embedder     EmbeddingConnector
	llm          CompletionConnector
	logger       *zap.Logger
}

func NewUsecase(
	cfg config.ChatConfig,
	indexBuilder IndexBuilder,
	embedder EmbeddingConnector,
	llm CompletionConnector,
	log *zap.Logger,
) *Usecase {
	return &Usecase{
		cfg:          cfg,
		indexBuilder: indexBuilder,
		embedder:     embedder,
		llm:          llm,
		logger:       log,
	}
}

// Answer executes the full pipeline for one request. Source failures are
// absorbed into an empty corpus by the index builder; embedding and
// compose-stage completion failures propagate to the caller.
func (u *Usecase) Answer(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	traceID := uuid.NewString()
	ctx = logger.AddFields(ctx, zap.String("trace_id", traceID))

	index, err := u.indexBuilder.Build(ctx)
	if err != nil {
		return nil, err
	}

	query := u.rephraseQuery(ctx, req.ChatHistory, req.Input)

	hits, err := u.retrieve(ctx, index, query)
	if err != nil {
		return nil, err
	}

	answer, err := u.llm.Complete(ctx, composeMessages(u.cfg.AssistantDomain, hits, req.ChatHistory, req.Input))
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "pipeline finished",
		zap.String("search_query", query),
		zap.Int("context_chunks", len(hits)),
		zap.Int("answer_length", len(answer)),
	)

	return &entity.ChatResponse{
		Answer:      answer,
		Input:       req.Input,
		SearchQuery: query,
		Context:     toRetrievedChunks(hits),
		TraceID:     traceID,
	}, nil
}

// rephraseQuery produces a standalone search query from the conversation.
// With no history the raw input already is that query, so no model call is
// made. A failed rephrase call degrades to the raw input instead of failing
// the request.
func (u *Usecase) rephraseQuery(ctx context.Context, history []entity.ConversationMessage, input string) string {
	if len(history) == 0 {
		return input
	}

	query, err := u.llm.Complete(ctx, rephraseMessages(history, input))
	if err != nil {
		ctxzap.Warn(ctx, "rephrase call failed, falling back to raw input", zap.Error(err))
		return input
	}

	query = strings.TrimSpace(query)
	if query == "" {
		ctxzap.Warn(ctx, "rephrase produced empty query, falling back to raw input")
		return input
	}

	ctxzap.Debug(ctx, "query rephrased", zap.String("search_query", query))

	return query
}

func (u *Usecase) retrieve(ctx context.Context, index *vectorindex.Index, query string) ([]entity.ScoredChunk, error) {
	if index.Len() == 0 {
		return nil, nil
	}

	vectors, err := u.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	return index.Search(vectors[0], u.cfg.TopK), nil
}

func toRetrievedChunks(hits []entity.ScoredChunk) []entity.RetrievedChunk {
	out := make([]entity.RetrievedChunk, len(hits))
	for i, hit := range hits {
		out[i] = entity.RetrievedChunk{
			Text:     hit.Chunk.Text,
			Question: hit.Chunk.Question,
			Score:    hit.Score,
		}
	}
	return out
}
