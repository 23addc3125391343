package entity

// ChatRequest is the wire contract of POST /chat. The caller sends the full
// conversation history on every call together with the new user input.
type ChatRequest struct {
	ChatHistory []ConversationMessage `json:"chatHistory"`
	Input       string                `json:"input"`
}

// RetrievedChunk is the diagnostic view of one retrieval hit returned to
// the client alongside the answer.
type RetrievedChunk struct {
	Text     string  `json:"text"`
	Question string  `json:"question"`
	Score    float64 `json:"score"`
}

// ChatResponse is the pipeline result returned on success. SearchQuery and
// Context are the rewritten retrieval query and the stuffed chunks; they are
// diagnostic fields preserved from the full pipeline result.
type ChatResponse struct {
	Answer      string           `json:"answer"`
	Input       string           `json:"input"`
	SearchQuery string           `json:"searchQuery"`
	Context     []RetrievedChunk `json:"context"`
	TraceID     string           `json:"traceId"`
}
