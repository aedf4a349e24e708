package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name     string
		document *Document
		wantErr  error
	}{
		{
			name: "valid document",
			document: &Document{
				ExternalID: "doc-1",
				Title:      "Quarterly Report",
				NumPages:   12,
			},
			wantErr: nil,
		},
		{
			name: "valid document without title",
			document: &Document{
				ExternalID: "doc-2",
			},
			wantErr: nil,
		},
		{
			name:     "nil document",
			document: nil,
			wantErr:  ErrInvalidDocument,
		},
		{
			name: "empty external identifier",
			document: &Document{
				Title:    "Untitled",
				NumPages: 3,
			},
			wantErr: ErrEmptyDocumentID,
		},
		{
			name: "negative page count",
			document: &Document{
				ExternalID: "doc-3",
				NumPages:   -1,
			},
			wantErr: ErrInvalidPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.document)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateDocument() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				Type: ChunkTypeParagraph,
				Page: 1,
				Text: "Revenue grew by twelve percent.",
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with empty vector",
			chunk: &Chunk{
				Type:   ChunkTypeTable,
				Page:   4,
				Text:   "Region | Revenue",
				Vector: nil,
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with ID 0",
			chunk: &Chunk{
				Id:   0,
				Type: ChunkTypeCaption,
				Page: 0,
				Text: "Figure 3: deployment topology",
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty text",
			chunk: &Chunk{
				Type: ChunkTypeParagraph,
				Page: 1,
				Text: "",
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "invalid chunk type",
			chunk: &Chunk{
				Type: ChunkType(999),
				Page: 1,
				Text: "some text",
			},
			wantErr: ErrInvalidChunkType,
		},
		{
			name: "negative page",
			chunk: &Chunk{
				Type: ChunkTypeParagraph,
				Page: -2,
				Text: "some text",
			},
			wantErr: ErrInvalidPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateChunk() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunkType(t *testing.T) {
	valid := []ChunkType{ChunkTypeParagraph, ChunkTypeTable, ChunkTypeImageOCR, ChunkTypeCaption}
	for _, ct := range valid {
		if err := ValidateChunkType(ct); err != nil {
			t.Errorf("ValidateChunkType(%v) error = %v, want nil", ct, err)
		}
	}

	if err := ValidateChunkType(ChunkType(0)); !errors.Is(err, ErrInvalidChunkType) {
		t.Errorf("ValidateChunkType(0) error = %v, want ErrInvalidChunkType", err)
	}
}
