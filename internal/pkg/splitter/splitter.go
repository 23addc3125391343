package splitter

import (
	"strings"
	"unicode/utf8"

	"github.com/futig/faq-backend/internal/entity"
)

// default separator preference: paragraph, line, word, then raw characters
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter cuts text into overlapping chunks of bounded length. It prefers
// splitting on paragraph, then line, then word boundaries and only falls
// back to raw character cuts when a fragment has no separator left.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

func New(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 2
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// SplitEntries turns each FAQ entry's text into chunks carrying the source
// question as metadata. Pure and deterministic.
func (s *Splitter) SplitEntries(entries []entity.FaqEntry) []entity.Chunk {
	var chunks []entity.Chunk
	for _, entry := range entries {
		for _, text := range s.Split(entry.Text()) {
			chunks = append(chunks, entity.Chunk{
				Text:     text,
				Question: entry.Question,
			})
		}
	}
	return chunks
}

// Split returns the chunks of one text. Every chunk is at most chunkSize
// units long (absent unsplittable tokens longer than chunkSize) and
// consecutive chunks share up to chunkOverlap units of text.
func (s *Splitter) Split(text string) []string {
	return s.splitText(text, s.separators)
}

func (s *Splitter) splitText(text string, separators []string) []string {
	// First separator actually present in the text wins; "" always matches
	// and splits into individual characters.
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	splits := strings.Split(text, separator)

	var final []string
	var good []string
	for _, piece := range splits {
		if length(piece) < s.chunkSize {
			good = append(good, piece)
			continue
		}
		// Oversized fragment: flush what we have, then split it further
		// with the remaining separators.
		if len(good) > 0 {
			final = append(final, s.mergeSplits(good, separator)...)
			good = nil
		}
		if len(remaining) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.splitText(piece, remaining)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.mergeSplits(good, separator)...)
	}
	return final
}

// mergeSplits greedily packs fragments into chunks of at most chunkSize,
// carrying the last chunkOverlap units over into the next chunk.
func (s *Splitter) mergeSplits(splits []string, separator string) []string {
	sepLen := length(separator)

	var docs []string
	var current []string
	total := 0

	for _, piece := range splits {
		pieceLen := length(piece)
		if total+pieceLen+joinLen(current, sepLen) > s.chunkSize && len(current) > 0 {
			if doc := joinDoc(current, separator); doc != "" {
				docs = append(docs, doc)
			}
			// Drop leading fragments until the retained tail fits inside
			// the overlap budget and leaves room for the next piece.
			for total > s.chunkOverlap ||
				(total+pieceLen+joinLen(current, sepLen) > s.chunkSize && total > 0) {
				removed := length(current[0])
				if len(current) > 1 {
					removed += sepLen
				}
				total -= removed
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += pieceLen
		if len(current) > 1 {
			total += sepLen
		}
	}
	if doc := joinDoc(current, separator); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

func joinDoc(parts []string, separator string) string {
	return strings.TrimSpace(strings.Join(parts, separator))
}

// joinLen is the separator cost of appending one more fragment.
func joinLen(current []string, sepLen int) int {
	if len(current) > 0 {
		return sepLen
	}
	return 0
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
