package vconsole

// dispatchCSI applies the CSI final-byte table from spec.md §4.2. It
// is the "dispatch function keyed on the final byte" spec.md §9 asks
// for, replacing the original driver's inlined switch.
func dispatchCSI(vc *VirtualConsole, final byte, private byte, params []int) {
	switch final {
	case '@':
		vc.insertChars(csiParam(params, 0, 1))
	case 'A':
		vc.moveCursor(0, -csiParam(params, 0, 1))
	case 'B':
		vc.moveCursor(0, csiParam(params, 0, 1))
	case 'C':
		vc.moveCursor(csiParam(params, 0, 1), 0)
	case 'D':
		vc.moveCursor(-csiParam(params, 0, 1), 0)
	case 'E':
		vc.cursor.X = 0
		vc.moveCursor(0, csiParam(params, 0, 1))
	case 'F':
		vc.cursor.X = 0
		vc.moveCursor(0, -csiParam(params, 0, 1))
	case 'G', '`':
		vc.cursor.X = csiParam(params, 0, 1) - 1
		vc.cursor.NeedWrap = false
		vc.clampCursor()
		vc.updateHardwareCursor()
	case 'H', 'f':
		// A missing row defaults to the top of the current scroll
		// region rather than absolute row 1, so that "home" after
		// CSI r lands inside the region that was just established.
		vc.cursor.Y = csiParam(params, 0, vc.top+1) - 1
		vc.cursor.X = csiParam(params, 1, 1) - 1
		vc.cursor.NeedWrap = false
		vc.clampCursor()
		vc.updateHardwareCursor()
	case 'I':
		for i, n := 0, csiParam(params, 0, 1); i < n; i++ {
			vc.cursor.X = vc.screen.NextTabStop(vc.cursor.X)
		}
		vc.updateHardwareCursor()
	case 'J':
		vc.eraseDisplay(csiParamRaw(params, 0))
	case 'K':
		vc.eraseLine(csiParamRaw(params, 0))
	case 'L':
		vc.insertLines(csiParam(params, 0, 1))
	case 'M':
		vc.deleteLines(csiParam(params, 0, 1))
	case 'P':
		vc.deleteChars(csiParam(params, 0, 1))
	case 'S':
		vc.scrollWhole(csiParam(params, 0, 1), 1)
	case 'T':
		vc.scrollWhole(csiParam(params, 0, 1), -1)
	case 'X':
		vc.eraseChars(csiParam(params, 0, 1))
	case 'c':
		if len(params) == 0 {
			vc.injectResponse(deviceIDResponse())
		}
	case 'd':
		vc.cursor.Y = csiParam(params, 0, 1) - 1
		vc.clampCursor()
		vc.updateHardwareCursor()
	case 'g':
		switch csiParam(params, 0, 0) {
		case 0:
			vc.screen.ClearTabStop(vc.cursor.X)
		case 3, 5:
			vc.screen.ClearAllTabStops()
		}
	case 'h', 'l':
		if private == '?' {
			on := final == 'h'
			for _, p := range params {
				switch p {
				case 25:
					vc.setCursorVisible(on)
				case 4:
					vc.insertMode = on
				}
			}
		}
	case 'm':
		vc.attr.ApplySGR(params)
	case 'n':
		switch csiParam(params, 0, 0) {
		case 5:
			vc.injectResponse(statusOKResponse())
		case 6:
			vc.injectResponse(cursorPosResponse(vc.cursor.Y, vc.cursor.X))
		}
	case 'r':
		top := csiParam(params, 0, 1)
		bottom := csiParam(params, 1, vc.lines)
		if top < bottom && bottom <= vc.lines {
			vc.top = top - 1
			vc.bottom = bottom
			vc.cursor.X = 0
			vc.cursor.Y = vc.top
			vc.cursor.NeedWrap = false
			vc.clampCursor()
			vc.updateHardwareCursor()
		}
	case 's':
		vc.saved.Save(vc.cursor)
	case 'u':
		vc.cursor = vc.saved.Restore()
		vc.clampCursor()
		vc.updateHardwareCursor()
	default:
		// Unrecognised final byte: silently drop, per spec.md §7.
	}
}

// csiParam returns the i-th CSI parameter, defaulting to def when
// absent or given as 0 (the "missing defaults to 1" rule in spec.md
// §4.2 applies to every finalizer that treats 0 and absent the same).
func csiParam(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

// csiParamRaw returns the i-th CSI parameter as given, or -1 if
// absent. J and K use it; both treat -1 (absent) the same as 0.
func csiParamRaw(params []int, i int) int {
	if i >= len(params) {
		return -1
	}
	return params[i]
}

// moveCursor applies a relative cursor movement, clamped into the
// screen per invariant 3 in spec.md §3, and clears deferred wrap.
func (vc *VirtualConsole) moveCursor(dx, dy int) {
	vc.cursor.X += dx
	vc.cursor.Y += dy
	vc.cursor.NeedWrap = false
	vc.clampCursor()
	vc.updateHardwareCursor()
}

// eraseDisplay implements CSI J. A missing parameter is treated the
// same as 0 (cursor to end), matching common VT100 behavior rather
// than the blanket "missing defaults to 1" rule, since the table
// explicitly enumerates 0 as a distinct mode from absence.
func (vc *VirtualConsole) eraseDisplay(mode int) {
	total := vc.columns * vc.lines
	cursorOffset := vc.cursor.Y*vc.columns + vc.cursor.X
	switch mode {
	case 1:
		vc.screen.WriteRange(0, cursorOffset+1, vc.attr.Color)
	case 2:
		vc.screen.ClearAll(vc.attr.Color)
	default:
		vc.screen.WriteRange(cursorOffset, total-cursorOffset, vc.attr.Color)
	}
	vc.redrawScreen()
}

// eraseLine implements CSI K, with the same 0/absent convention as
// eraseDisplay.
func (vc *VirtualConsole) eraseLine(mode int) {
	rowStart := vc.cursor.Y * vc.columns
	switch mode {
	case 1:
		vc.screen.WriteRange(rowStart, vc.cursor.X+1, vc.attr.Color)
	case 2:
		vc.screen.WriteRange(rowStart, vc.columns, vc.attr.Color)
	default:
		vc.screen.WriteRange(rowStart+vc.cursor.X, vc.columns-vc.cursor.X, vc.attr.Color)
	}
	vc.redrawScreen()
}

// eraseChars implements CSI X: erase n cells starting at the cursor
// without moving it, clipped to the end of the row.
func (vc *VirtualConsole) eraseChars(n int) {
	if n > vc.columns-vc.cursor.X {
		n = vc.columns - vc.cursor.X
	}
	from := vc.cursor.Y*vc.columns + vc.cursor.X
	vc.screen.WriteRange(from, n, vc.attr.Color)
	vc.redrawScreen()
}

// insertChars implements CSI @: insert n blank cells at the cursor,
// shifting the remainder of the row right.
func (vc *VirtualConsole) insertChars(n int) {
	for i := 0; i < n; i++ {
		vc.screen.InsertChar(vc.cursor.X, vc.cursor.Y, vc.attr.Color)
		if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
			vc.sub.backend.InsertChar(vc.Number, vc.cursor.X, vc.cursor.Y)
		}
	}
}

// deleteChars implements CSI P: delete n cells at the cursor, shifting
// the remainder of the row left.
func (vc *VirtualConsole) deleteChars(n int) {
	for i := 0; i < n; i++ {
		vc.screen.DeleteChar(vc.cursor.X, vc.cursor.Y, vc.attr.Color)
		if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
			vc.sub.backend.DeleteChar(vc.Number, vc.cursor.X, vc.cursor.Y)
		}
	}
}

// insertLines implements CSI L: insert n blank lines at the cursor
// row, scrolling the remainder of the scroll region down. The count is
// clipped so it never scrolls past the scroll region, per spec.md
// §4.2's "inserting/deleting lines below top clips the count".
func (vc *VirtualConsole) insertLines(n int) {
	max := vc.bottom - vc.cursor.Y
	if n > max {
		n = max
	}
	for i := 0; i < n; i++ {
		vc.screen.ScrollDownRegion(vc.cursor.Y, vc.bottom, vc.attr.Color)
	}
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.ScrollScreen(vc.Number, vc.cursor.Y, vc.bottom, -n)
	}
}

// deleteLines implements CSI M: delete n lines at the cursor row,
// scrolling the remainder of the scroll region up.
func (vc *VirtualConsole) deleteLines(n int) {
	max := vc.bottom - vc.cursor.Y
	if n > max {
		n = max
	}
	for i := 0; i < n; i++ {
		vc.screen.ScrollUpRegion(vc.cursor.Y, vc.bottom, vc.attr.Color)
	}
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.ScrollScreen(vc.Number, vc.cursor.Y, vc.bottom, n)
	}
}

// scrollWhole implements CSI S/T: scroll the entire screen (not just
// the scroll region) up or down by n lines, pushing displaced top
// lines into scrollback exactly like a natural line-feed scroll would.
func (vc *VirtualConsole) scrollWhole(n int, dir int) {
	for i := 0; i < n; i++ {
		if dir > 0 {
			if vc.hasFocus && vc.sub != nil && vc.sub.scrollback != nil {
				vc.sub.scrollback.PushLine(vc.screen.Row(0))
			}
			vc.screen.ScrollUpRegion(0, vc.lines, vc.attr.Color)
		} else {
			vc.screen.ScrollDownRegion(0, vc.lines, vc.attr.Color)
		}
	}
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.ScrollScreen(vc.Number, 0, vc.lines, dir*n)
	}
}

// setCursorVisible implements CSI ?25h/l.
func (vc *VirtualConsole) setCursorVisible(on bool) {
	vc.cursorVisible = on
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.ShowCursor(vc.Number, on)
	}
}

// redrawScreen asks the backend to repaint from the buffer; used after
// erase operations, which touch many cells at once.
func (vc *VirtualConsole) redrawScreen() {
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.WriteScreen(vc.Number, vc.screen)
	}
}
