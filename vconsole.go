package vconsole

// VCMode distinguishes text consoles from graphics-mode consoles
// (KD_TEXT / KD_GRAPHICS in spec.md §3). A VC in graphics mode refuses
// focus switches silently, per §4.5.
type VCMode int

const (
	// ModeText is the default: the parser and echo engine are live.
	ModeText VCMode = iota
	// ModeGraphics means some other owner (e.g. an X server surrogate)
	// has taken the framebuffer; cursor updates are suppressed.
	ModeGraphics
)

// VTHandoffMode is the per-VC switch-protocol mode from spec.md §4.5.
type VTHandoffMode int

const (
	// VTAuto switches proceed immediately.
	VTAuto VTHandoffMode = iota
	// VTProcess requires a signal handshake with a controlling pid
	// before the switch takes effect.
	VTProcess
)

// VirtualConsole is one independent VT100/ANSI terminal emulator: its
// own geometry, cursor, attribute state, parser state and VT handoff
// state, per spec.md §3. A [ConsoleSubsystem] owns an array of these
// and multiplexes one shared [VideoBackend] across them.
type VirtualConsole struct {
	Number int

	columns int
	lines   int
	top     int // scroll region top, inclusive
	bottom  int // scroll region bottom, exclusive; defaults to lines

	cursor Cursor
	saved  SavedCursor
	attr   AttrState

	screen *Buffer
	parser Parser

	mode       VCMode
	insertMode bool // shadowed per spec.md §9, never acted on

	vtMode     VTHandoffMode
	acqSig     int
	relSig     int
	frSig      int
	pid        int
	switchToVC int // pending target VC number; 0 = none pending

	ledStatus                         uint8
	scrollLock, numLock, capsLock     bool
	cursorVisible, cursorVisibleSaved bool

	hasFocus bool
	blanked  bool

	bufY   int // logical scrollback line index for this VC, per spec.md §3
	bufTop int // 0 unless the user is viewing scrollback

	queued []byte // bytes written while scroll-locked, awaiting drain

	sub *ConsoleSubsystem
}

// DefaultMaxTabCols is a nominal console-width bound for tab-stop
// storage. [Buffer] does not apply it: it sizes its tab-stop vector to
// its own column count.
const DefaultMaxTabCols = 256

// newVirtualConsole constructs VC number inside sub with the given
// geometry, already reset to its default state.
func newVirtualConsole(sub *ConsoleSubsystem, number, columns, lines int) *VirtualConsole {
	vc := &VirtualConsole{
		Number: number,
		sub:    sub,
	}
	vc.resizeLocked(columns, lines)
	vc.Reset()
	return vc
}

func (vc *VirtualConsole) resizeLocked(columns, lines int) {
	vc.columns = columns
	vc.lines = lines
	vc.top = 0
	vc.bottom = lines
	vc.screen = NewBuffer(columns, lines)
}

// Columns returns the VC's screen width.
func (vc *VirtualConsole) Columns() int { return vc.columns }

// Lines returns the VC's screen height.
func (vc *VirtualConsole) Lines() int { return vc.lines }

// Cursor returns the current cursor position.
func (vc *VirtualConsole) Cursor() (x, y int) { return vc.cursor.X, vc.cursor.Y }

// Attr returns the current packed attribute.
func (vc *VirtualConsole) Attr() Attr { return vc.attr.Color }

// Screen returns the VC's off-screen buffer mirror.
func (vc *VirtualConsole) Screen() *Buffer { return vc.screen }

// HasFocus reports whether this VC currently owns the backend, per
// invariant 1 in spec.md §3.
func (vc *VirtualConsole) HasFocus() bool { return vc.hasFocus }

// Reset returns the VC to the state described in spec.md §4.8: full
// dimensions, top of scroll region, default attribute, cleared parser
// state, default tab stops, LEDs and lock flags off, VT_AUTO, pid 0,
// KD_TEXT, cursor at the origin.
func (vc *VirtualConsole) Reset() {
	vc.top = 0
	vc.bottom = vc.lines
	vc.attr.Reset()
	vc.screen.ClearAll(vc.attr.Color)
	vc.screen.ResetTabStops()
	vc.cursor = Cursor{}
	vc.saved = SavedCursor{}
	vc.parser = Parser{}
	vc.mode = ModeText
	vc.insertMode = false
	vc.vtMode = VTAuto
	vc.acqSig = 0
	vc.relSig = 0
	vc.frSig = 0
	vc.pid = 0
	vc.switchToVC = 0
	vc.ledStatus = 0
	vc.scrollLock = false
	vc.queued = nil
	vc.numLock = false
	vc.capsLock = false
	vc.cursorVisible = true
	vc.cursorVisibleSaved = true
	vc.blanked = false
	vc.bufY = 0
	vc.bufTop = 0
	if vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.UpdateCurpos(vc.Number, 0, 0)
		vc.sub.backend.ShowCursor(vc.Number, true)
	}
}

// Write feeds bytes from the line-discipline output stream into the VC
// in strict FIFO order, per spec.md §5's ordering guarantee 1. Each
// byte either advances the escape-sequence parser or, in GROUND state,
// is handed to the echo engine. Per spec.md §4.2, the drain stops while
// the console is scroll-locked: bytes queue up in vc.queued rather than
// being dropped, and are drained in order once SetScrollLock(false)
// (or the next Write while unlocked) releases them.
func (vc *VirtualConsole) Write(data []byte) (int, error) {
	vc.sub.withInterruptsDisabled(func() {
		vc.queued = append(vc.queued, data...)
		vc.drainQueueLocked()
	})
	return len(data), nil
}

// drainQueueLocked feeds vc.queued into the parser/echo engine if the
// VC is not scroll-locked. Callers must hold vc.sub.mu.
func (vc *VirtualConsole) drainQueueLocked() {
	if vc.scrollLock || len(vc.queued) == 0 {
		return
	}
	vc.restoreIfScrolledBack()
	for _, b := range vc.queued {
		if vc.parser.state == stateGround && b != 0x1b {
			vc.echoByte(b)
			continue
		}
		vc.parser.feed(vc, b)
	}
	vc.queued = vc.queued[:0]
}

// SetScrollLock sets or clears the scroll-lock flag that gates Write's
// drain loop, per spec.md §4.2. The keyboard driver collaborator calls
// this in response to the ScrollLock key (conventionally toggling the
// ledStatus SCROLLLOCK bit alongside it). Clearing the lock immediately
// drains whatever queued up while it was held.
func (vc *VirtualConsole) SetScrollLock(on bool) {
	vc.sub.withInterruptsDisabled(func() {
		vc.scrollLock = on
		vc.drainQueueLocked()
	})
}

// clampCursor enforces invariant 3 from spec.md §3: 0<=x<columns,
// 0<=y<lines.
func (vc *VirtualConsole) clampCursor() {
	if vc.cursor.X < 0 {
		vc.cursor.X = 0
	}
	if vc.cursor.X >= vc.columns {
		vc.cursor.X = vc.columns - 1
	}
	if vc.cursor.Y < 0 {
		vc.cursor.Y = 0
	}
	if vc.cursor.Y >= vc.lines {
		vc.cursor.Y = vc.lines - 1
	}
}

func (vc *VirtualConsole) updateHardwareCursor() {
	if vc.sub == nil || vc.sub.backend == nil || !vc.hasFocus || vc.mode == ModeGraphics {
		return
	}
	vc.sub.backend.UpdateCurpos(vc.Number, vc.cursor.X, vc.cursor.Y)
}

// restoreIfScrolledBack implements the rule in spec.md §4.3: any write
// while the user is viewing scrollback restores the live screen first.
func (vc *VirtualConsole) restoreIfScrolledBack() {
	if vc.bufTop == 0 {
		return
	}
	vc.bufTop = 0
	if vc.hasFocus && vc.sub != nil && vc.sub.backend != nil {
		vc.sub.backend.RestoreScreen(vc.Number, vc.screen)
		vc.sub.backend.ShowCursor(vc.Number, vc.cursorVisible)
	}
}
