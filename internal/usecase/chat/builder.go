package chat

import (
	"context"
	"time"

	"github.com/futig/faq-backend/internal/pkg/splitter"
	"github.com/futig/faq-backend/internal/pkg/vectorindex"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RebuildIndexBuilder fetches the corpus, splits it and embeds every chunk
// on each call. Simplicity over performance: nothing survives a request.
type RebuildIndexBuilder struct {
	source   SourceConnector
	splitter *splitter.Splitter
	embedder EmbeddingConnector
}

func NewRebuildIndexBuilder(source SourceConnector, split *splitter.Splitter, embedder EmbeddingConnector) *RebuildIndexBuilder {
	return &RebuildIndexBuilder{
		source:   source,
		splitter: split,
		embedder: embedder,
	}
}

func (b *RebuildIndexBuilder) Build(ctx context.Context) (*vectorindex.Index, error) {
	entries, err := b.source.Fetch(ctx)
	if err != nil {
		// Degraded mode: an unreachable source yields an empty corpus,
		// not a failed request.
		ctxzap.Warn(ctx, "faq source unavailable, continuing with empty corpus", zap.Error(err))
		entries = nil
	}

	chunks := b.splitter.SplitEntries(entries)
	if len(chunks) == 0 {
		return vectorindex.NewIndex(nil, nil)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "vector index built",
		zap.Int("entry_count", len(entries)),
		zap.Int("chunk_count", len(chunks)),
	)

	return vectorindex.NewIndex(chunks, vectors)
}

const indexCacheKey = "faq-index"

// CachedIndexBuilder keeps the built index for a TTL instead of rebuilding
// it per request. Trades corpus freshness for latency; not the default.
type CachedIndexBuilder struct {
	inner IndexBuilder
	cache *gocache.Cache
}

func NewCachedIndexBuilder(inner IndexBuilder, ttl time.Duration) *CachedIndexBuilder {
	return &CachedIndexBuilder{
		inner: inner,
		cache: gocache.New(ttl, ttl),
	}
}

func (b *CachedIndexBuilder) Build(ctx context.Context) (*vectorindex.Index, error) {
	if cached, ok := b.cache.Get(indexCacheKey); ok {
		ctxzap.Debug(ctx, "serving cached vector index")
		return cached.(*vectorindex.Index), nil
	}

	index, err := b.inner.Build(ctx)
	if err != nil {
		return nil, err
	}

	b.cache.Set(indexCacheKey, index, gocache.DefaultExpiration)
	return index, nil
}
