package vconsole

// Buffer is the off-screen cell mirror a [VirtualConsole] owns, per
// spec.md §3 ("owned screen"). It is a flat row-major grid plus the
// per-column tab-stop vector; erase and scroll operations address it by
// linear offset the same way the original driver's video.write_screen
// does, since that shape is what makes §4.2's erase/scroll policies
// trivial to express.
type Buffer struct {
	columns int
	lines   int
	cells   []Cell
	tabStop []bool
}

// NewBuffer creates a columns*lines grid, blanked with DefMode, and
// tab stops at every TabSize-th column as spec.md §4.2 specifies.
func NewBuffer(columns, lines int) *Buffer {
	b := &Buffer{
		columns: columns,
		lines:   lines,
		cells:   make([]Cell, columns*lines),
		tabStop: make([]bool, columns),
	}
	b.ClearAll(DefMode)
	b.ResetTabStops()
	return b
}

// TabSize is the default tab-stop spacing, per spec.md §4.2.
const TabSize = 8

// Columns returns the buffer width.
func (b *Buffer) Columns() int { return b.columns }

// Lines returns the buffer height.
func (b *Buffer) Lines() int { return b.lines }

func (b *Buffer) offset(x, y int) int { return y*b.columns + x }

// Cell returns the cell at (x, y). Out-of-range coordinates return the
// zero Cell (glyph 0, attribute 0) rather than panicking, per spec.md
// §7's "no path panics".
func (b *Buffer) Cell(x, y int) Cell {
	if x < 0 || x >= b.columns || y < 0 || y >= b.lines {
		return Cell{}
	}
	return b.cells[b.offset(x, y)]
}

// SetCell writes a cell at (x, y). Out-of-range coordinates are a no-op.
func (b *Buffer) SetCell(x, y int, c Cell) {
	if x < 0 || x >= b.columns || y < 0 || y >= b.lines {
		return
	}
	b.cells[b.offset(x, y)] = c
}

// WriteRange fills count cells starting at linear offset from with a
// blank cell carrying attr, the direct analogue of video.write_screen.
func (b *Buffer) WriteRange(from, count int, attr Attr) {
	if from < 0 {
		count += from
		from = 0
	}
	if count <= 0 {
		return
	}
	if from+count > len(b.cells) {
		count = len(b.cells) - from
	}
	if count <= 0 {
		return
	}
	blank := BlankCell(attr)
	for i := from; i < from+count; i++ {
		b.cells[i] = blank
	}
}

// ClearAll blanks every cell with attr.
func (b *Buffer) ClearAll(attr Attr) {
	b.WriteRange(0, len(b.cells), attr)
}

// Row returns a copy of the cells on row y, or nil if out of range.
// Used to seed the scrollback ring and to snapshot a line scrolling off
// the top.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.lines {
		return nil
	}
	row := make([]Cell, b.columns)
	copy(row, b.cells[b.offset(0, y):b.offset(0, y)+b.columns])
	return row
}

// SetRow overwrites row y with the given cells (padding/truncating to
// the buffer width), used when restoring a scrollback line.
func (b *Buffer) SetRow(y int, row []Cell) {
	if y < 0 || y >= b.lines {
		return
	}
	dst := b.cells[b.offset(0, y) : b.offset(0, y)+b.columns]
	n := copy(dst, row)
	for i := n; i < len(dst); i++ {
		dst[i] = Cell{}
	}
}

// ScrollUpRegion shifts [top, bottom) up by one line, discarding the
// top line of the region and blanking the new bottom line with attr.
// It does not itself push to scrollback; callers that care about
// preserving the displaced line (only true when top==0 and the VC is
// focused, per spec.md §4.2) must capture Row(top) first.
func (b *Buffer) ScrollUpRegion(top, bottom int, attr Attr) {
	if top < 0 {
		top = 0
	}
	if bottom > b.lines {
		bottom = b.lines
	}
	if top >= bottom-1 {
		if top == bottom-1 {
			b.WriteRange(b.offset(0, top), b.columns, attr)
		}
		return
	}
	copy(b.cells[b.offset(0, top):b.offset(0, bottom-1)], b.cells[b.offset(0, top+1):b.offset(0, bottom)])
	b.WriteRange(b.offset(0, bottom-1), b.columns, attr)
}

// ScrollDownRegion shifts [top, bottom) down by one line, discarding
// the bottom line and blanking the new top line with attr.
func (b *Buffer) ScrollDownRegion(top, bottom int, attr Attr) {
	if top < 0 {
		top = 0
	}
	if bottom > b.lines {
		bottom = b.lines
	}
	if top >= bottom-1 {
		if top == bottom-1 {
			b.WriteRange(b.offset(0, top), b.columns, attr)
		}
		return
	}
	copy(b.cells[b.offset(0, top+1):b.offset(0, bottom)], b.cells[b.offset(0, top):b.offset(0, bottom-1)])
	b.WriteRange(b.offset(0, top), b.columns, attr)
}

// InsertChar shifts cells from x to the end of row y one position to
// the right, dropping the last cell, and blanks position x. It inserts
// one cell; insertChars calls it n times without clipping n, and once
// the rest of the row is blank further calls leave it unchanged.
func (b *Buffer) InsertChar(x, y int, attr Attr) {
	if y < 0 || y >= b.lines || x < 0 || x >= b.columns {
		return
	}
	rowStart := b.offset(0, y)
	copy(b.cells[rowStart+x+1:rowStart+b.columns], b.cells[rowStart+x:rowStart+b.columns-1])
	b.cells[rowStart+x] = BlankCell(attr)
}

// DeleteChar shifts cells from x+1 to the end of row y one position to
// the left, blanking the vacated last cell.
func (b *Buffer) DeleteChar(x, y int, attr Attr) {
	if y < 0 || y >= b.lines || x < 0 || x >= b.columns {
		return
	}
	rowStart := b.offset(0, y)
	copy(b.cells[rowStart+x:rowStart+b.columns-1], b.cells[rowStart+x+1:rowStart+b.columns])
	b.cells[rowStart+b.columns-1] = BlankCell(attr)
}

// --- Tab stops ---

// ResetTabStops sets a tab stop at every TabSize-th column, per
// spec.md §4.2/§4.8, and clears every other stop.
func (b *Buffer) ResetTabStops() {
	for i := range b.tabStop {
		b.tabStop[i] = i%TabSize == 0
	}
}

// SetTabStop enables a tab stop at column x.
func (b *Buffer) SetTabStop(x int) {
	if x >= 0 && x < b.columns {
		b.tabStop[x] = true
	}
}

// ClearTabStop disables the tab stop at column x.
func (b *Buffer) ClearTabStop(x int) {
	if x >= 0 && x < b.columns {
		b.tabStop[x] = false
	}
}

// ClearAllTabStops disables every tab stop (CSI 3g / CSI 5g).
func (b *Buffer) ClearAllTabStops() {
	for i := range b.tabStop {
		b.tabStop[i] = false
	}
}

// NextTabStop advances x to the next set tab stop, bounded by
// columns-1, matching the while loop in echo_char/csi_I.
func (b *Buffer) NextTabStop(x int) int {
	for x < b.columns-1 {
		x++
		if b.tabStop[x] {
			break
		}
	}
	return x
}
