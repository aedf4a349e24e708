package ingest

import "github.com/poiesic/docsearch/core"

// ParsedDocument is the structured output of the upstream PDF parser for
// one document, as handed to the ingestion pipeline.
type ParsedDocument struct {
	DocumentID string          `json:"document_id"`
	Title      string          `json:"title"`
	NumPages   int             `json:"num_pages"`
	StorageKey string          `json:"storage_key"`
	Paragraphs []TextFragment  `json:"paragraphs"`
	Tables     []TableFragment `json:"tables"`
	Images     []ImageFragment `json:"images"`
}

// TextFragment is one extracted paragraph.
type TextFragment struct {
	Page int        `json:"page"`
	BBox *core.Rect `json:"bbox,omitempty"`
	Text string     `json:"text"`
}

// TableFragment is one extracted table as a row-major cell grid.
type TableFragment struct {
	Page  int        `json:"page"`
	BBox  *core.Rect `json:"bbox,omitempty"`
	Cells [][]string `json:"cells"`
}

// ImageFragment is one extracted image with optional caption and OCR text.
type ImageFragment struct {
	Page    int        `json:"page"`
	BBox    *core.Rect `json:"bbox,omitempty"`
	Caption string     `json:"caption,omitempty"`
	OCRText string     `json:"ocr_text,omitempty"`
}

// Fragment is one typed unit of raw extracted content fed to the Normalizer.
// Text carries the content for every type except tables, which carry Cells.
type Fragment struct {
	Type  core.ChunkType
	Page  int
	BBox  *core.Rect
	Text  string
	Cells [][]string
}

// Fragments expands a parsed document into its ordered fragment sequence:
// paragraphs, then tables, then image captions and OCR text. An image
// yields up to two fragments, caption first.
func (d *ParsedDocument) Fragments() []Fragment {
	fragments := make([]Fragment, 0, len(d.Paragraphs)+len(d.Tables)+2*len(d.Images))

	for _, p := range d.Paragraphs {
		fragments = append(fragments, Fragment{
			Type: core.ChunkTypeParagraph,
			Page: p.Page,
			BBox: p.BBox,
			Text: p.Text,
		})
	}

	for _, t := range d.Tables {
		fragments = append(fragments, Fragment{
			Type:  core.ChunkTypeTable,
			Page:  t.Page,
			BBox:  t.BBox,
			Cells: t.Cells,
		})
	}

	for _, im := range d.Images {
		if im.Caption != "" {
			fragments = append(fragments, Fragment{
				Type: core.ChunkTypeCaption,
				Page: im.Page,
				BBox: im.BBox,
				Text: im.Caption,
			})
		}
		if im.OCRText != "" {
			fragments = append(fragments, Fragment{
				Type: core.ChunkTypeImageOCR,
				Page: im.Page,
				BBox: im.BBox,
				Text: im.OCRText,
			})
		}
	}

	return fragments
}
