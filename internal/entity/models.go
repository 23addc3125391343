package entity

// Message roles accepted in conversation history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FaqEntry is a single normalized question/answer record fetched from the
// FAQ source. Entries carry no identity beyond their content and live only
// for the duration of one request.
type FaqEntry struct {
	Question string
	Answer   string
}

// Text returns the entry content that gets chunked and embedded.
func (e FaqEntry) Text() string {
	return e.Question + "\n" + e.Answer
}

// Chunk is a bounded-length segment of an FaqEntry's text. The source
// question is retained as metadata for traceability.
type Chunk struct {
	Text     string
	Question string
}

// ConversationMessage is one turn of the dialogue, supplied in full by the
// caller on every request. The server keeps no session state.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ScoredChunk is a retrieval hit: a chunk together with its similarity
// score against the search query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
