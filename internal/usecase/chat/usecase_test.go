package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/futig/faq-backend/internal/config"
	"github.com/futig/faq-backend/internal/entity"
	"github.com/futig/faq-backend/internal/pkg/splitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	entries []entity.FaqEntry
	err     error
	calls   int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]entity.FaqEntry, error) {
	f.calls++
	return f.entries, f.err
}

type fakeEmbedder struct {
	err   error
	calls [][]string
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = bagOfWords(text)
	}
	return vectors, nil
}

// bagOfWords is a tiny deterministic embedding over a fixed vocabulary,
// enough for relevance ordering in tests.
func bagOfWords(text string) []float64 {
	return []float64{
		float64(strings.Count(text, "X")),
		float64(strings.Count(text, "plugin")),
		float64(strings.Count(text, "role")),
		1, // constant component so no vector is all-zero
	}
}

type fakeLLM struct {
	respond func(call int, messages []entity.ChatCompletionMessage) (string, error)
	calls   [][]entity.ChatCompletionMessage
}

func (f *fakeLLM) Complete(ctx context.Context, messages []entity.ChatCompletionMessage) (string, error) {
	f.calls = append(f.calls, messages)
	return f.respond(len(f.calls)-1, messages)
}

// contextSection extracts the stuffed context from a compose system prompt.
func contextSection(system string) string {
	after := system[strings.Index(system, "this information:\n")+len("this information:\n"):]
	return after[:strings.Index(after, "\nDo not make up")]
}

func answerFromContext(messages []entity.ChatCompletionMessage) (string, error) {
	if messages[0].Role != "system" {
		return "", fmt.Errorf("expected system message first, got %q", messages[0].Role)
	}
	ctxText := contextSection(messages[0].Content)
	if strings.TrimSpace(ctxText) == "" {
		return RefusalNoInformation, nil
	}
	return "Based on the FAQ: " + ctxText, nil
}

func testConfig() config.ChatConfig {
	return config.ChatConfig{
		TopK:            4,
		ChunkSize:       100,
		ChunkOverlap:    20,
		AssistantDomain: "Strapi",
	}
}

func newTestUsecase(source *fakeSource, embedder *fakeEmbedder, llm *fakeLLM) *Usecase {
	cfg := testConfig()
	split := splitter.New(cfg.ChunkSize, cfg.ChunkOverlap)
	builder := NewRebuildIndexBuilder(source, split, embedder)
	return NewUsecase(cfg, builder, embedder, llm, zap.NewNop())
}

func TestAnswer_EmptyHistorySkipsRephrase(t *testing.T) {
	source := &fakeSource{entries: []entity.FaqEntry{{Question: "What is X?", Answer: "X is Y."}}}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		return answerFromContext(messages)
	}}

	resp, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		Input: "What is X?",
	})

	require.NoError(t, err)
	// No history means the raw input already is the standalone query; the
	// model must not be asked to rephrase it.
	assert.Equal(t, "What is X?", resp.SearchQuery)
	require.Len(t, llm.calls, 1)
	assert.Equal(t, "system", llm.calls[0][0].Role)
}

func TestAnswer_HistoryTriggersRephrase(t *testing.T) {
	source := &fakeSource{entries: []entity.FaqEntry{{Question: "What is X?", Answer: "X is Y."}}}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		if call == 0 {
			return "What is X exactly?", nil
		}
		return answerFromContext(messages)
	}}

	history := []entity.ConversationMessage{
		{Role: entity.RoleUser, Content: "Tell me about X."},
		{Role: entity.RoleAssistant, Content: "X is a thing."},
	}

	resp, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		ChatHistory: history,
		Input:       "What is it exactly?",
	})

	require.NoError(t, err)
	assert.Equal(t, "What is X exactly?", resp.SearchQuery)

	require.Len(t, llm.calls, 2)
	rephrase := llm.calls[0]
	assert.Contains(t, rephrase[len(rephrase)-1].Content, "generate a search query")

	// The query embedding call uses the rewritten query.
	require.Len(t, embedder.calls, 2)
	assert.Equal(t, []string{"What is X exactly?"}, embedder.calls[1])
}

func TestAnswer_RephraseFailureFallsBackToRawInput(t *testing.T) {
	source := &fakeSource{entries: []entity.FaqEntry{{Question: "What is X?", Answer: "X is Y."}}}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		if call == 0 {
			return "", fmt.Errorf("%w: upstream 500", entity.ErrCompletionService)
		}
		return answerFromContext(messages)
	}}

	resp, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		ChatHistory: []entity.ConversationMessage{{Role: entity.RoleUser, Content: "hi"}},
		Input:       "What is X?",
	})

	require.NoError(t, err)
	assert.Equal(t, "What is X?", resp.SearchQuery)
	assert.NotEmpty(t, resp.Answer)
}

func TestAnswer_SourceDownDegradesToEmptyCorpus(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("%w: connection refused", entity.ErrSourceUnavailable)}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		return answerFromContext(messages)
	}}

	resp, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		Input: "What is X?",
	})

	require.NoError(t, err)
	assert.Equal(t, RefusalNoInformation, resp.Answer)
	assert.Empty(t, resp.Context)
	// Nothing to embed: no corpus and no retrieval against an empty index.
	assert.Empty(t, embedder.calls)
}

func TestAnswer_EmbeddingFailureAbortsRequest(t *testing.T) {
	source := &fakeSource{entries: []entity.FaqEntry{{Question: "What is X?", Answer: "X is Y."}}}
	embedder := &fakeEmbedder{err: fmt.Errorf("%w: upstream 500", entity.ErrEmbeddingService)}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		t.Fatal("completion must not run when embedding fails")
		return "", nil
	}}

	_, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		Input: "What is X?",
	})

	assert.ErrorIs(t, err, entity.ErrEmbeddingService)
}

func TestAnswer_ComposeFailurePropagates(t *testing.T) {
	source := &fakeSource{entries: []entity.FaqEntry{{Question: "What is X?", Answer: "X is Y."}}}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		return "", fmt.Errorf("%w: upstream 500", entity.ErrCompletionService)
	}}

	_, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		Input: "What is X?",
	})

	assert.ErrorIs(t, err, entity.ErrCompletionService)
}

func TestAnswer_RetrievalStuffsRelevantContext(t *testing.T) {
	source := &fakeSource{entries: []entity.FaqEntry{
		{Question: "How do plugins work?", Answer: "Plugins extend the admin panel."},
		{Question: "What is X?", Answer: "X is Y."},
	}}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		return answerFromContext(messages)
	}}

	resp, err := newTestUsecase(source, embedder, llm).Answer(context.Background(), &entity.ChatRequest{
		Input: "What is X?",
	})

	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Y")

	require.NotEmpty(t, resp.Context)
	assert.Equal(t, "What is X?", resp.Context[0].Question)
	for i := 1; i < len(resp.Context); i++ {
		assert.GreaterOrEqual(t, resp.Context[i-1].Score, resp.Context[i].Score)
	}
}

func TestAnswer_TraceIDsAreUnique(t *testing.T) {
	source := &fakeSource{}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{respond: func(call int, messages []entity.ChatCompletionMessage) (string, error) {
		return answerFromContext(messages)
	}}

	uc := newTestUsecase(source, embedder, llm)

	first, err := uc.Answer(context.Background(), &entity.ChatRequest{Input: "a"})
	require.NoError(t, err)
	second, err := uc.Answer(context.Background(), &entity.ChatRequest{Input: "b"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.TraceID)
	assert.NotEqual(t, first.TraceID, second.TraceID)
}
