package vconsole

// Cursor holds the position and deferred-wrap state spec.md §3 and §4.3
// describe. X and Y are always kept in [0, columns) / [0, lines): the
// "about to wrap" condition at the last column is represented by
// NeedWrap rather than by letting X reach columns, matching the
// original driver's check_x/x_pos split.
type Cursor struct {
	X, Y     int
	NeedWrap bool
}

// SavedCursor is the snapshot CSI s / ESC 7 takes and CSI u / ESC 8
// restores, per spec.md §3: only saved_x/saved_y, nothing else — the
// original driver's ESC 7/8 handlers save and restore just x and y
// (original_source/drivers/char/console.c's scrsave/scrrestore, despite
// a stray "& Attrs" comment there), so attribute state is deliberately
// left untouched by Save/Restore.
type SavedCursor struct {
	Cursor
	set bool
}

// Save records c into s.
func (s *SavedCursor) Save(c Cursor) {
	s.Cursor = c
	s.set = true
}

// Restore returns the saved cursor. If nothing was ever saved, it
// returns the zero cursor, matching the original driver's behavior of
// saved_x/saved_y defaulting to 0 before any ESC 7.
func (s *SavedCursor) Restore() Cursor {
	if !s.set {
		return Cursor{}
	}
	return s.Cursor
}
