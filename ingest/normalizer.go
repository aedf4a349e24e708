package ingest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/docsearch/core"
)

// defaultMaxChunkChars bounds chunk text length so that a chunk stays a
// useful retrieval unit and fits embedding model context comfortably.
const defaultMaxChunkChars = 1800

var (
	lineBreakPattern = regexp.MustCompile(`\r\n?`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern  = regexp.MustCompile(`[ \t]+`)

	// A sentence is a run of non-terminator characters followed by any
	// terminators. The final match absorbs trailing text without one.
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// Normalizer turns raw extracted fragments into storable chunks: it cleans
// whitespace, flattens tables, splits over-long text on sentence boundaries,
// and counts tokens.
type Normalizer struct {
	maxChars int
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithMaxChunkChars overrides the maximum chunk text length in bytes.
// Values below 1 are ignored.
func WithMaxChunkChars(max int) NormalizerOption {
	return func(n *Normalizer) {
		if max >= 1 {
			n.maxChars = max
		}
	}
}

// NewNormalizer creates a Normalizer with the default length budget.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{maxChars: defaultMaxChunkChars}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeDocument converts every fragment of a parsed document into
// chunks, preserving fragment order. Fragments that are empty after
// cleanup contribute no chunks.
func (n *Normalizer) NormalizeDocument(document *ParsedDocument) []*core.Chunk {
	var chunks []*core.Chunk
	for _, fragment := range document.Fragments() {
		chunks = append(chunks, n.NormalizeFragment(fragment)...)
	}
	return chunks
}

// NormalizeFragment converts one fragment into zero or more chunks. Text
// exceeding the length budget is split on sentence boundaries, falling back
// to word boundaries for a single over-long sentence. Every produced chunk
// inherits the fragment's page, type, and bounding box.
func (n *Normalizer) NormalizeFragment(fragment Fragment) []*core.Chunk {
	text := fragment.Text
	if fragment.Type == core.ChunkTypeTable {
		text = flattenTable(fragment.Cells)
	}

	cleaned := normalizeWhitespace(text)
	if cleaned == "" {
		return nil
	}

	var chunks []*core.Chunk
	for _, part := range n.splitText(cleaned) {
		flat := collapse(part)
		if flat == "" {
			continue
		}

		chunk := &core.Chunk{
			Type:   fragment.Type,
			Page:   fragment.Page,
			Text:   flat,
			Tokens: len(strings.Fields(flat)),
		}
		if fragment.BBox != nil {
			box := *fragment.BBox
			chunk.BBox = &box
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// normalizeWhitespace canonicalizes line endings, collapses horizontal
// whitespace runs, and caps blank-line runs at one, keeping paragraph
// structure intact for sentence splitting.
func normalizeWhitespace(text string) string {
	text = lineBreakPattern.ReplaceAllString(text, "\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// collapse flattens text to a single line: control characters become
// spaces and all whitespace runs collapse to one space.
func collapse(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// flattenTable renders a cell grid as text, cells joined by " | " and rows
// by newlines. Each cell is flattened to a single line first.
func flattenTable(cells [][]string) string {
	if len(cells) == 0 {
		return ""
	}

	rows := make([]string, 0, len(cells))
	for _, row := range cells {
		cleaned := make([]string, len(row))
		for i, cell := range row {
			cleaned[i] = collapse(cell)
		}
		rows = append(rows, strings.Join(cleaned, " | "))
	}
	return strings.Join(rows, "\n")
}

// splitText breaks text into parts no longer than the budget, greedily
// packing whole sentences per part.
func (n *Normalizer) splitText(text string) []string {
	if len(text) <= n.maxChars {
		return []string{text}
	}

	var parts []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, buf.String())
			buf.Reset()
		}
	}

	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if len(sentence) > n.maxChars {
			flush()
			parts = append(parts, n.splitByWords(sentence)...)
			continue
		}

		if buf.Len() > 0 && buf.Len()+1+len(sentence) > n.maxChars {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
	}
	flush()

	return parts
}

// splitByWords breaks a single over-long sentence on word boundaries,
// hard-cutting on rune boundaries only for pathological unbroken tokens.
func (n *Normalizer) splitByWords(sentence string) []string {
	var parts []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, buf.String())
			buf.Reset()
		}
	}

	for _, word := range strings.Fields(sentence) {
		if len(word) > n.maxChars {
			flush()
			parts = append(parts, cutRunes(word, n.maxChars)...)
			continue
		}

		if buf.Len() > 0 && buf.Len()+1+len(word) > n.maxChars {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(word)
	}
	flush()

	return parts
}

// cutRunes slices a string into pieces of at most max bytes without
// splitting multi-byte runes.
func cutRunes(word string, max int) []string {
	var pieces []string
	var buf strings.Builder

	for _, r := range word {
		if buf.Len()+len(string(r)) > max {
			pieces = append(pieces, buf.String())
			buf.Reset()
		}
		buf.WriteRune(r)
	}
	if buf.Len() > 0 {
		pieces = append(pieces, buf.String())
	}
	return pieces
}
