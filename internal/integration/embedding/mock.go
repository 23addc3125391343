package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockDimension = 16

// MockConnector produces deterministic pseudo-embeddings from text hashes.
// Identical texts embed identically, so retrieval stays meaningful enough
// for local runs and tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	ctxzap.Info(ctx, "[MOCK] embedding texts", zap.Int("text_count", len(texts)))

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = hashVector(text)
	}
	return vectors, nil
}

// hashVector spreads token hashes over a fixed-size vector and normalizes
// it, so texts sharing words land near each other.
func hashVector(text string) []float64 {
	v := make([]float64, mockDimension)
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == ' ' || text[i] == '\n' {
			if i > start {
				h := fnv.New32a()
				h.Write([]byte(text[start:i]))
				v[h.Sum32()%mockDimension]++
			}
			start = i + 1
		}
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v {
			v[i] /= norm
		}
	}
	return v
}
