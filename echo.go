package vconsole

// C0 control bytes recognised in GROUND state, per spec.md §4.3/§6.
const (
	ctrlNUL = 0x00
	ctrlBEL = 0x07
	ctrlBS  = 0x08
	ctrlHT  = 0x09
	ctrlLF  = 0x0a
	ctrlCR  = 0x0d
	ctrlESC = 0x1b
)

// echoByte handles one ordinary byte in GROUND state, per spec.md
// §4.3: the null byte is ignored, the control bytes get their special
// handling, and any other byte is a printable glyph subject to
// deferred wrap.
func (vc *VirtualConsole) echoByte(b byte) {
	switch b {
	case ctrlNUL:
		// ignored
	case ctrlBS:
		if vc.cursor.X > 0 {
			vc.cursor.X--
		}
		vc.cursor.NeedWrap = false
		vc.updateHardwareCursor()
	case ctrlBEL:
		vc.ringBell()
	case ctrlCR:
		vc.cursor.X = 0
		vc.cursor.NeedWrap = false
		vc.updateHardwareCursor()
	case ctrlLF:
		vc.cursor.X = 0
		vc.cursor.NeedWrap = false
		vc.lineFeed()
	case ctrlHT:
		vc.cursor.X = vc.screen.NextTabStop(vc.cursor.X)
		vc.cursor.NeedWrap = true
		vc.updateHardwareCursor()
	default:
		vc.putPrintable(b)
	}
}

// putPrintable writes one printable glyph, applying the deferred-wrap
// rule from spec.md §4.2/§4.3: a pending wrap is resolved first (wrap
// to column 0, next row), then the glyph is written and the cursor
// advances, setting NeedWrap instead of overflowing columns when it
// lands in the last column.
func (vc *VirtualConsole) putPrintable(b byte) {
	if vc.cursor.NeedWrap {
		vc.cursor.X = 0
		vc.cursor.NeedWrap = false
		vc.lineFeed()
	}

	cell := Cell{Glyph: b, Attr: vc.attr.Color}
	vc.screen.SetCell(vc.cursor.X, vc.cursor.Y, cell)
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.PutChar(vc.Number, vc.cursor.X, vc.cursor.Y, cell)
	}

	if vc.cursor.X >= vc.columns-1 {
		vc.cursor.NeedWrap = true
	} else {
		vc.cursor.X++
	}
	vc.updateHardwareCursor()
}

// lineFeed advances the cursor to the next row without touching x,
// scrolling the scroll region and rolling the scrollback ring as
// needed. It backs the \n byte (after the caller sets x<-0), ESC D,
// and deferred-wrap line advances.
func (vc *VirtualConsole) lineFeed() {
	vc.cursor.Y++
	vc.afterVerticalMove()
}

// reverseIndex moves the cursor up one row (ESC M), scrolling the
// scroll region down when already at its top.
func (vc *VirtualConsole) reverseIndex() {
	if vc.cursor.Y <= vc.top {
		vc.scrollDownOne()
	} else {
		vc.cursor.Y--
	}
	vc.clampCursor()
	vc.updateHardwareCursor()
}

// afterVerticalMove implements spec.md §4.3's post-byte catch-all:
// "if y >= lines, scroll up by one and set y <- lines-1. If focused
// and buf_y >= VC_BUF_LINES, roll scrollback up by one line and
// decrement buf_y." Here "lines" is the scroll region's bottom, since
// a region narrower than the full screen scrolls independently.
func (vc *VirtualConsole) afterVerticalMove() {
	if vc.cursor.Y >= vc.bottom {
		vc.scrollUpOne()
		vc.cursor.Y = vc.bottom - 1
	}
	vc.clampCursor()
	if vc.hasFocus {
		vc.bufY++
		maxBufLines := vc.lines * ScreensLog
		if vc.bufY >= maxBufLines {
			vc.bufY = maxBufLines - 1
		}
	}
	vc.updateHardwareCursor()
}

// scrollUpOne scrolls the scroll region up by one line. When the
// region's top coincides with row 0 and the VC has focus, the
// displaced line is pushed into the shared scrollback ring, per
// spec.md §3/§4.2.
func (vc *VirtualConsole) scrollUpOne() {
	if vc.top == 0 && vc.hasFocus && vc.sub != nil && vc.sub.scrollback != nil {
		vc.sub.scrollback.PushLine(vc.screen.Row(vc.top))
	}
	vc.screen.ScrollUpRegion(vc.top, vc.bottom, vc.attr.Color)
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.ScrollScreen(vc.Number, vc.top, vc.bottom, 1)
	}
}

// scrollDownOne scrolls the scroll region down by one line.
func (vc *VirtualConsole) scrollDownOne() {
	vc.screen.ScrollDownRegion(vc.top, vc.bottom, vc.attr.Color)
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.ScrollScreen(vc.Number, vc.top, vc.bottom, -1)
	}
}

// ringBell activates the callout-scheduled PIT speaker, per spec.md
// §4.7. No cell is touched.
func (vc *VirtualConsole) ringBell() {
	if vc.sub != nil {
		vc.sub.bell.Ring(vc.Number)
	}
}
