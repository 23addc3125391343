package entity

// FaqListResponse mirrors the paginated Strapi /api/faqs payload. Answers
// are rich text: an array of block nodes whose children hold the text.
type FaqListResponse struct {
	Data []FaqItem `json:"data"`
}

// FaqItem is one raw FAQ record from the source API.
type FaqItem struct {
	ID         int           `json:"id"`
	Attributes FaqAttributes `json:"attributes"`
}

// FaqAttributes holds the question and the rich-text answer blocks.
type FaqAttributes struct {
	Question string        `json:"Question"`
	Answer   []AnswerBlock `json:"Answer"`
}

// AnswerBlock is a single rich-text block node.
type AnswerBlock struct {
	Type     string       `json:"type"`
	Children []AnswerNode `json:"children"`
}

// AnswerNode is a leaf node carrying text.
type AnswerNode struct {
	Text string `json:"text"`
}
