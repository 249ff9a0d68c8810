package vconsole

// ScrollbackRing is the process-wide history ring from spec.md §3: it
// belongs to whichever [VirtualConsole] currently has focus, and is
// re-seeded (not migrated) from that VC's [Buffer] every time focus
// changes. ScreensLog is the number of extra screenfuls of history kept
// above the visible area.
type ScrollbackRing struct {
	columns int
	lines   int
	screens int

	rows   [][]Cell // ring storage, len == lines*screens
	bufY   int      // next write position (logical line index, monotonic mod len(rows))
	filled int      // number of rows ever pushed via PushLine, capped at len(rows)

	owner int // VC number currently seeding this ring, 0 if none
}

// ScreensLog is the default number of screenfuls of scrollback kept,
// matching the original driver's SCREENS_LOG.
const ScreensLog = 8

// NewScrollbackRing allocates a ring sized for columns*lines*screens
// cells, blank-filled.
func NewScrollbackRing(columns, lines, screens int) *ScrollbackRing {
	if screens < 1 {
		screens = 1
	}
	r := &ScrollbackRing{
		columns: columns,
		lines:   lines,
		screens: screens,
		rows:    make([][]Cell, lines*screens),
	}
	for i := range r.rows {
		r.rows[i] = make([]Cell, columns)
	}
	return r
}

// Owner returns the VC number currently seeding the ring, or 0.
func (r *ScrollbackRing) Owner() int { return r.owner }

// Reseed discards all history and stamps the ring's storage with buf's
// current content, the action spec.md §3 mandates on every focus
// change: "on focus change it is re-seeded from that VC's screen",
// never migrated. The stamped rows are the VC's live screen, not
// history: they never count toward [ScrollbackRing.History], and the
// first [ScrollbackRing.PushLine] calls overwrite them from row 0 on.
func (r *ScrollbackRing) Reseed(owner int, buf *Buffer) {
	r.owner = owner
	r.bufY = 0
	r.filled = 0
	for i := range r.rows {
		for j := range r.rows[i] {
			r.rows[i][j] = Cell{}
		}
	}
	for y := 0; y < buf.Lines() && y < r.lines; y++ {
		copy(r.rows[y], buf.Row(y))
	}
}

// pushRow writes row at the ring's current write cursor and advances
// it, growing filled up to the ring's full capacity.
func (r *ScrollbackRing) pushRow(row []Cell) {
	dst := r.rows[r.bufY]
	n := copy(dst, row)
	for i := n; i < len(dst); i++ {
		dst[i] = Cell{}
	}
	r.bufY = (r.bufY + 1) % len(r.rows)
	if r.filled < len(r.rows) {
		r.filled++
	}
}

// PushLine appends one line (the line scrolled off the top of the
// owning VC's screen) into the ring, advancing the visible window.
// Callers must only call this while owner is the VC doing the
// scrolling; spec.md §4.2 only pushes to scrollback when that VC also
// has focus.
func (r *ScrollbackRing) PushLine(row []Cell) {
	r.pushRow(row)
}

// History returns up to count lines scrolled off the top via
// [ScrollbackRing.PushLine] since the last [ScrollbackRing.Reseed],
// oldest first — the lines a "scroll up" key would reveal. count is
// clipped to what is available.
func (r *ScrollbackRing) History(count int) [][]Cell {
	if count > r.filled {
		count = r.filled
	}
	if count <= 0 {
		return nil
	}
	out := make([][]Cell, count)
	start := (r.bufY - count + len(r.rows)) % len(r.rows)
	for i := 0; i < count; i++ {
		idx := (start + i) % len(r.rows)
		row := make([]Cell, len(r.rows[idx]))
		copy(row, r.rows[idx])
		out[i] = row
	}
	return out
}
