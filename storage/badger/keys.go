package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/docsearch/core"
)

// Key prefixes for different data types
const (
	docRecordPrefix   = "docrec"
	chunkRecordPrefix = "chkrec"
	docChunkPrefix    = "docchk"
	termPostingPrefix = "trmpost"
	chunkIDSeq        = "chkrecseq"
	vectorDimKey      = "vecdim"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", docRecordPrefix, id))
}

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeDocChunkKey generates a composite key for the document membership index.
// Format: prefix:documentID:chunkID
func makeDocChunkKey(documentID, chunkID core.ID) []byte {
	prefix := docChunkPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for documentID + 8 bytes for chunkID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkID))
	return buf
}

// makePartialDocChunkKey generates a partial key for membership scans.
// Format: prefix:documentID
func makePartialDocChunkKey(documentID core.ID) []byte {
	prefix := docChunkPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for documentID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeTermPostingKey generates a composite key for the lexical posting index.
// Format: prefix:term\x00chunkID. Terms never contain NUL, so the separator
// keeps term boundaries unambiguous under prefix scans.
func makeTermPostingKey(term string, chunkID core.ID) []byte {
	prefix := termPostingPrefix + ":"
	totalSize := len(prefix) + len(term) + 1 + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	offset += copy(buf[offset:], []byte(term))
	buf[offset] = 0x00
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkID))
	return buf
}

// makePartialTermPostingKey generates a partial key for one term's postings.
// Format: prefix:term\x00
func makePartialTermPostingKey(term string) []byte {
	prefix := termPostingPrefix + ":"
	totalSize := len(prefix) + len(term) + 1
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	offset += copy(buf[offset:], []byte(term))
	buf[offset] = 0x00
	return buf
}

// chunkIDFromPostingKey extracts the chunk ID from a full posting key.
func chunkIDFromPostingKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// makePostingValue encodes the owning document and term frequency of a posting.
func makePostingValue(documentID core.ID, frequency int) []byte {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint64(buf, uint64(documentID))
	binary.BigEndian.PutUint32(buf[8:], uint32(frequency))
	return buf
}

// readPostingValue decodes a posting value.
func readPostingValue(val []byte) (documentID core.ID, frequency int) {
	if len(val) < 12 {
		return 0, 0
	}
	documentID = core.ID(binary.BigEndian.Uint64(val))
	frequency = int(binary.BigEndian.Uint32(val[8:]))
	return
}

// makeVectorDimValue encodes the store-wide embedding dimensionality.
func makeVectorDimValue(dim int) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(dim))
	return buf
}

// readVectorDimValue decodes the stored embedding dimensionality.
func readVectorDimValue(val []byte) int {
	if len(val) < 4 {
		return 0
	}
	return int(binary.BigEndian.Uint32(val))
}
