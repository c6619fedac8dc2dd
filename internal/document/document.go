// Package document provides byte-offset to line/column conversion for source
// buffers. The outline engine consumes it through a narrow interface so the
// conversion strategy can be swapped without touching traversal code.
package document

// Position is a zero-based line/character location in a source buffer.
// Character counts bytes within the line, matching tree-sitter's column
// convention.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether other lies fully within r.
func (r Range) Contains(other Range) bool {
	return !positionBefore(other.Start, r.Start) && !positionBefore(r.End, other.End)
}

// Before reports whether r starts before other.
func (r Range) Before(other Range) bool {
	return positionBefore(r.Start, other.Start)
}

func positionBefore(a, b Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

// Document wraps a source buffer with a precomputed line index for fast
// offset-to-position lookups.
type Document struct {
	source     []byte
	lineStarts []uint // byte offset of each line start, always begins with 0
}

// New builds a Document and its line index from raw source bytes.
func New(source []byte) *Document {
	lineStarts := []uint{0}
	for i, b := range source {
		if b == '\n' {
			lineStarts = append(lineStarts, uint(i)+1)
		}
	}
	return &Document{
		source:     source,
		lineStarts: lineStarts,
	}
}

// Source returns the underlying buffer. Callers must not mutate it.
func (d *Document) Source() []byte {
	return d.source
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// PositionAt converts a byte offset into a line/character position.
// Offsets past the end of the buffer clamp to the final position.
func (d *Document) PositionAt(offset uint) Position {
	if offset > uint(len(d.source)) {
		offset = uint(len(d.source))
	}

	// Binary search for the last line start <= offset.
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return Position{
		Line:      uint32(lo),
		Character: uint32(offset - d.lineStarts[lo]),
	}
}

// RangeBetween converts a start/end byte-offset pair into a Range.
func (d *Document) RangeBetween(startByte, endByte uint) Range {
	return Range{
		Start: d.PositionAt(startByte),
		End:   d.PositionAt(endByte),
	}
}
