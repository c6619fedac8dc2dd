package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Document:
// - Offsets convert to correct line/character positions
// - Offsets at line boundaries land on the next line's column zero
// - Offsets past the buffer clamp to the final position
// - Empty buffers produce a single empty line
// - Range containment and ordering helpers behave as expected

func TestDocument_PositionAt(t *testing.T) {
	t.Parallel()

	doc := New([]byte("class Foo\n  def bar\n  end\nend\n"))

	assert.Equal(t, Position{Line: 0, Character: 0}, doc.PositionAt(0))
	assert.Equal(t, Position{Line: 0, Character: 6}, doc.PositionAt(6), "offset of 'Foo'")
	assert.Equal(t, Position{Line: 1, Character: 0}, doc.PositionAt(10), "first byte after newline")
	assert.Equal(t, Position{Line: 1, Character: 6}, doc.PositionAt(16), "offset of 'bar'")
	assert.Equal(t, Position{Line: 3, Character: 0}, doc.PositionAt(26), "offset of closing 'end'")
}

func TestDocument_PositionAtClamps(t *testing.T) {
	t.Parallel()

	doc := New([]byte("x = 1"))

	assert.Equal(t, Position{Line: 0, Character: 5}, doc.PositionAt(5))
	assert.Equal(t, Position{Line: 0, Character: 5}, doc.PositionAt(500), "past-the-end offsets clamp")
}

func TestDocument_EmptySource(t *testing.T) {
	t.Parallel()

	doc := New(nil)

	require.Equal(t, 1, doc.LineCount())
	assert.Equal(t, Position{Line: 0, Character: 0}, doc.PositionAt(0))
}

func TestDocument_RangeBetween(t *testing.T) {
	t.Parallel()

	doc := New([]byte("module M\nend\n"))

	r := doc.RangeBetween(0, 12)
	assert.Equal(t, Position{Line: 0, Character: 0}, r.Start)
	assert.Equal(t, Position{Line: 1, Character: 3}, r.End)
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	outer := Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 10, Character: 3}}
	inner := Range{Start: Position{Line: 2, Character: 2}, End: Position{Line: 4, Character: 5}}
	overlapping := Range{Start: Position{Line: 5, Character: 0}, End: Position{Line: 12, Character: 0}}

	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer), "containment is inclusive")
	assert.False(t, outer.Contains(overlapping))
	assert.False(t, inner.Contains(outer))
}

func TestRange_Before(t *testing.T) {
	t.Parallel()

	a := Range{Start: Position{Line: 1, Character: 4}}
	b := Range{Start: Position{Line: 1, Character: 9}}
	c := Range{Start: Position{Line: 3, Character: 0}}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(a))
	assert.False(t, a.Before(a))
}
