package vconsole

import "testing"

func TestBufferClearAll(t *testing.T) {
	b := NewBuffer(10, 5)
	b.SetCell(3, 2, Cell{Glyph: 'A', Attr: DefMode})
	b.ClearAll(DefMode)
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if c := b.Cell(x, y); c != BlankCell(DefMode) {
				t.Fatalf("Cell(%d,%d) = %+v, want blank", x, y, c)
			}
		}
	}
}

// TestEraseIdempotence is testable property 3 from spec.md §8: erasing
// twice equals once.
func TestEraseIdempotence(t *testing.T) {
	b := NewBuffer(8, 4)
	for i := 0; i < 8*4; i++ {
		b.cells[i] = Cell{Glyph: byte('a' + i%26), Attr: DefMode}
	}
	b.ClearAll(DefMode)
	snapshot := append([]Cell(nil), b.cells...)
	b.ClearAll(DefMode)
	for i := range b.cells {
		if b.cells[i] != snapshot[i] {
			t.Fatalf("second ClearAll changed cell %d", i)
		}
	}
}

func TestScrollUpRegionPreservesTopLine(t *testing.T) {
	b := NewBuffer(4, 3)
	b.SetRow(0, []Cell{{Glyph: 'a'}, {Glyph: 'b'}, {Glyph: 'c'}, {Glyph: 'd'}})
	b.SetRow(1, []Cell{{Glyph: 'e'}, {Glyph: 'f'}, {Glyph: 'g'}, {Glyph: 'h'}})

	b.ScrollUpRegion(0, 3, DefMode)

	if got := string(cellGlyphs(b.Row(0))); got != "efgh" {
		t.Fatalf("row 0 after scroll = %q, want %q", got, "efgh")
	}
	for _, c := range b.Row(2) {
		if c != BlankCell(DefMode) {
			t.Fatalf("new bottom row not blank: %+v", c)
		}
	}
}

func TestInsertDeleteChar(t *testing.T) {
	b := NewBuffer(5, 1)
	b.SetRow(0, []Cell{{Glyph: 'a'}, {Glyph: 'b'}, {Glyph: 'c'}, {Glyph: 'd'}, {Glyph: 'e'}})

	b.InsertChar(1, 0, DefMode)
	if got := string(cellGlyphs(b.Row(0))); got != "a bcd" {
		t.Fatalf("row after InsertChar(1) = %q, want %q", got, "a bcd")
	}

	b.DeleteChar(0, 0, DefMode)
	if got := string(cellGlyphs(b.Row(0))); got != " bcd " {
		t.Fatalf("row after DeleteChar(0) = %q, want %q", got, " bcd ")
	}
}

func TestTabStops(t *testing.T) {
	b := NewBuffer(20, 1)
	if x := b.NextTabStop(0); x != TabSize {
		t.Fatalf("NextTabStop(0) = %d, want %d", x, TabSize)
	}
	b.ClearTabStop(TabSize)
	if x := b.NextTabStop(0); x != TabSize*2 {
		t.Fatalf("NextTabStop(0) after clearing stop at %d = %d, want %d", TabSize, x, TabSize*2)
	}
	b.ClearAllTabStops()
	if x := b.NextTabStop(0); x != b.Columns()-1 {
		t.Fatalf("NextTabStop(0) with no stops = %d, want columns-1 (%d)", x, b.Columns()-1)
	}
}

func cellGlyphs(cells []Cell) []byte {
	out := make([]byte, len(cells))
	for i, c := range cells {
		out[i] = c.Glyph
	}
	return out
}
