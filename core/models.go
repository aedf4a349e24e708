package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkType identifies the kind of document fragment a chunk was derived from.
type ChunkType int

const (
	// ChunkTypeParagraph represents running body text.
	ChunkTypeParagraph ChunkType = iota + 1
	// ChunkTypeTable represents a table serialized to text.
	ChunkTypeTable
	// ChunkTypeImageOCR represents text recognized inside an image.
	ChunkTypeImageOCR
	// ChunkTypeCaption represents an image caption.
	ChunkTypeCaption
)

// String returns the wire name of the chunk type.
func (t ChunkType) String() string {
	switch t {
	case ChunkTypeParagraph:
		return "paragraph"
	case ChunkTypeTable:
		return "table"
	case ChunkTypeImageOCR:
		return "image_ocr"
	case ChunkTypeCaption:
		return "caption"
	default:
		return "unknown"
	}
}

// Rect is a page-space bounding box. Coordinates follow the upstream
// parser's convention: (X1,Y1) top-left, (X2,Y2) bottom-right.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Document represents one ingested source document.
// Documents are immutable after ingestion; re-ingesting the same external
// identifier replaces the document and all of its chunks.
type Document struct {
	Id         ID     // IDFromContent(ExternalID)
	ExternalID string // Caller-assigned identifier from the upstream parser
	Title      string
	NumPages   int
	StorageKey string // Object key of the original PDF, if any
	InsertedAt time.Time
}

// Chunk is the atomic retrievable unit derived from one document fragment
// (or one split of an oversized fragment). Chunks are never mutated after
// ingestion and are destroyed only via cascading document deletion.
type Chunk struct {
	Id         ID
	DocumentId ID // Owning document (IDFromContent of the external identifier)
	Type       ChunkType
	Page       int
	BBox       *Rect // nil when the parser supplied no box
	Text       string
	Tokens     int
	Vector     []float32 // Embedding; same dimensionality across the store
	InsertedAt time.Time
}

// ScoredChunk is a chunk reference with a raw relevance score from one
// retrieval axis. Lexical scores and vector similarities are not on
// comparable scales; reconciling them is the fusion engine's job.
type ScoredChunk struct {
	ChunkId ID
	Score   float64
}

// Hit is one ranked search result.
type Hit struct {
	ChunkId    ID
	DocumentID string // External document identifier
	Page       int
	Type       ChunkType
	Text       string
	BBox       *Rect
	Score      float64 // Fused score in [0,1]
}
