package vectorindex

import (
	"errors"
	"math"
	"sort"

	"github.com/futig/faq-backend/internal/entity"
)

// Index is an ephemeral nearest-neighbor store over chunk embeddings.
// It is immutable after construction; there is no incremental update.
type Index struct {
	chunks  []entity.Chunk
	vectors [][]float64
}

// NewIndex builds an index from chunks and their embedding vectors, one
// vector per chunk in the same order.
func NewIndex(chunks []entity.Chunk, vectors [][]float64) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, errors.New("chunks and vectors length mismatch")
	}
	return &Index{chunks: chunks, vectors: vectors}, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.chunks)
}

// Search returns the topK chunks nearest to the query vector by cosine
// similarity, ordered by non-increasing score. Ties keep insertion order.
func (idx *Index) Search(vector []float64, topK int) []entity.ScoredChunk {
	if topK <= 0 {
		topK = 4
	}

	scored := make([]entity.ScoredChunk, len(idx.chunks))
	for i := range idx.chunks {
		scored[i] = entity.ScoredChunk{
			Chunk: idx.chunks[i],
			Score: cosine(idx.vectors[i], vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
