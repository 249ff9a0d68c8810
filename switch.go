package vconsole

import "sync"

// Config describes the geometry and population of a [ConsoleSubsystem]
// at boot, per spec.md §6's environment/boot contract.
type Config struct {
	Columns int
	Lines   int
	Count   int
	// Screens is the number of screenfuls of scrollback history kept
	// per [ScreensLog]; zero selects the default.
	Screens int
}

// Option configures a [ConsoleSubsystem] at construction, following the
// functional-options idiom.
type Option func(*ConsoleSubsystem)

// WithInjector overrides the default [InputInjector].
func WithInjector(i InputInjector) Option {
	return func(s *ConsoleSubsystem) { s.injector = i }
}

// WithSignaler overrides the default [ProcessSignaler].
func WithSignaler(p ProcessSignaler) Option {
	return func(s *ConsoleSubsystem) { s.signaler = p }
}

// WithBell overrides the default [BellController].
func WithBell(b *BellController) Option {
	return func(s *ConsoleSubsystem) { s.bell = b }
}

// ConsoleSubsystem is the process-wide singleton aggregate spec.md §9
// recommends in place of the original driver's loose globals
// (current_cons, vc[], video, the scrollback ring): it owns the VC
// table, the shared backend, and arbitrates focus between them.
type ConsoleSubsystem struct {
	mu sync.Mutex

	vcs        []*VirtualConsole // index 0 unused; 1..Count
	backend    VideoBackend
	scrollback *ScrollbackRing
	injector   InputInjector
	bell       *BellController
	signaler   ProcessSignaler

	focus int
}

// NewConsoleSubsystem builds a subsystem of cfg.Count virtual consoles
// sharing backend, with VC 1 focused at boot. VC 1 starts with its
// cursor at the origin and the backend's cursor is set from it; no
// cursor position already held by the backend is read.
func NewConsoleSubsystem(cfg Config, backend VideoBackend, opts ...Option) *ConsoleSubsystem {
	screens := cfg.Screens
	if screens <= 0 {
		screens = ScreensLog
	}

	sub := &ConsoleSubsystem{
		backend:  backend,
		injector: NewBufferInjector(),
		bell:     NewBellController(nil, nil),
		signaler: OSProcessSignaler{},
	}
	for _, opt := range opts {
		opt(sub)
	}

	sub.vcs = make([]*VirtualConsole, cfg.Count+1)
	for i := 1; i <= cfg.Count; i++ {
		sub.vcs[i] = newVirtualConsole(sub, i, cfg.Columns, cfg.Lines)
	}
	sub.scrollback = NewScrollbackRing(cfg.Columns, cfg.Lines, screens)

	if cfg.Count > 0 {
		first := sub.vcs[1]
		first.hasFocus = true
		sub.focus = 1
		sub.scrollback.Reseed(1, first.screen)
		if backend != nil {
			backend.RestoreScreen(1, first.screen)
			backend.UpdateCurpos(1, first.cursor.X, first.cursor.Y)
			backend.ShowCursor(1, first.cursorVisible)
		}
	}
	return sub
}

// VC returns virtual console n, or nil if n is out of range.
func (s *ConsoleSubsystem) VC(n int) *VirtualConsole {
	if n <= 0 || n >= len(s.vcs) {
		return nil
	}
	return s.vcs[n]
}

// Focus returns the number of the VC currently holding the backend.
func (s *ConsoleSubsystem) Focus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

// Injector returns the subsystem's input injector, for callers (e.g.
// a daemon forwarding to a pty) that need to drain synthesized
// responses.
func (s *ConsoleSubsystem) Injector() InputInjector { return s.injector }

// withInterruptsDisabled is the Go stand-in for the original driver's
// save-flags/restore-flags critical section (spec.md §5, §9): a mutex
// guarding any path that touches focus, the scrollback ring, or the
// shared backend.
func (s *ConsoleSubsystem) withInterruptsDisabled(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *ConsoleSubsystem) withInterruptsDisabledErr(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// TTYLine is the ioctl surface SPEC_FULL.md §6 names in place of real
// ioctl(2) numbers: the set of calls a TTY-layer collaborator (the
// keyboard driver, a session manager acting for a controlling process)
// makes against a VC, rather than poking its fields directly.
// *VirtualConsole implements it.
type TTYLine interface {
	// SetVTMode is VT_SETMODE: configure the console-switch handoff
	// mode and signalling parameters.
	SetVTMode(mode VTHandoffMode, pid, acqSig, relSig int)
	// AcquireRelease is VT_RELDISP: the controlling process's
	// disposition reply to a pending switch-away request. ok=true lets
	// the deferred switch proceed; ok=false cancels it and the VC keeps
	// focus.
	AcquireRelease(ok bool) error
	// SetGraphicsMode is KDSETMODE: toggles the VC between KD_TEXT and
	// KD_GRAPHICS.
	SetGraphicsMode(graphics bool) error
	// SetCursorVisible is KDSETCURSOR's text-mode half: shows or hides
	// the hardware cursor.
	SetCursorVisible(on bool) error
}

var _ TTYLine = (*VirtualConsole)(nil)

// SetVTMode configures a VC's console-switch handoff mode and
// signalling parameters, the ioctl surface spec.md §6 lists abstractly
// as "set/get VT mode, acquire/release signalling".
func (vc *VirtualConsole) SetVTMode(mode VTHandoffMode, pid, acqSig, relSig int) {
	vc.vtMode = mode
	vc.pid = pid
	vc.acqSig = acqSig
	vc.relSig = relSig
}

// AcquireRelease implements [TTYLine.AcquireRelease]. It is the
// counterpart to [ConsoleSubsystem.Select]'s release-ask signal: the
// controlling process calls it once it has handled (or refused) the
// request to give up the display.
func (vc *VirtualConsole) AcquireRelease(ok bool) error {
	if vc.sub == nil {
		return nil
	}
	if !ok {
		return vc.sub.withInterruptsDisabledErr(func() error {
			vc.switchToVC = 0
			return nil
		})
	}
	return vc.sub.AckSwitch()
}

// SetGraphicsMode implements [TTYLine.SetGraphicsMode]. A VC in
// graphics mode refuses incoming focus switches silently, per
// spec.md §4.5.
func (vc *VirtualConsole) SetGraphicsMode(graphics bool) error {
	mode := ModeText
	if graphics {
		mode = ModeGraphics
	}
	if vc.sub == nil {
		vc.mode = mode
		return nil
	}
	return vc.sub.withInterruptsDisabledErr(func() error {
		vc.mode = mode
		return nil
	})
}

// SetCursorVisible implements [TTYLine.SetCursorVisible], the ioctl-surface
// counterpart to CSI ?25h/l's setCursorVisible.
func (vc *VirtualConsole) SetCursorVisible(on bool) error {
	if vc.sub == nil {
		vc.setCursorVisible(on)
		return nil
	}
	return vc.sub.withInterruptsDisabledErr(func() error {
		vc.setCursorVisible(on)
		return nil
	})
}

// Select requests a focus switch to VC n, per spec.md §4.5. A
// non-existent target is a silent no-op; a target in graphics mode
// silently refuses. If the outgoing VC is in VT_PROCESS mode, its
// controlling process is sent acqsig (spec.md §9: the source reuses
// acqsig on both the release ask and the final acquire notify — this
// is preserved as-is rather than "corrected" to relsig). If the pid is
// gone, the VC is coerced to VT_AUTO and the switch proceeds
// immediately; otherwise the switch is deferred until [ConsoleSubsystem.AckSwitch].
func (s *ConsoleSubsystem) Select(n int) error {
	return s.withInterruptsDisabledErr(func() error {
		target := s.VC(n)
		if target == nil {
			return nil
		}
		if target.mode == ModeGraphics {
			return nil
		}
		cur := s.vcs[s.focus]
		if cur.vtMode == VTProcess {
			if err := s.signaler.Signal(cur.pid, cur.acqSig); err != nil {
				cur.vtMode = VTAuto
			} else {
				cur.switchToVC = n
				return nil
			}
		}
		return s.selectFinalLocked(n)
	})
}

// AckSwitch completes a switch previously deferred by [ConsoleSubsystem.Select],
// the userspace acknowledgement spec.md §4.5 describes arriving via the
// TTY ioctl surface. It is a no-op if no switch is pending.
func (s *ConsoleSubsystem) AckSwitch() error {
	return s.withInterruptsDisabledErr(func() error {
		cur := s.vcs[s.focus]
		target := cur.switchToVC
		if target == 0 {
			return nil
		}
		cur.switchToVC = 0
		return s.selectFinalLocked(target)
	})
}

// selectFinalLocked executes the final-switch procedure from spec.md
// §4.5 steps 1-7. Callers must hold s.mu.
func (s *ConsoleSubsystem) selectFinalLocked(n int) error {
	target := s.VC(n)
	if target == nil {
		return nil
	}
	outgoing := s.vcs[s.focus]

	// 1. Notify the incoming VC's controlling process, if any.
	if target.vtMode == VTProcess {
		if err := s.signaler.Signal(target.pid, target.acqSig); err != nil {
			target.vtMode = VTAuto
		}
	}

	// 2. Snap the outgoing VC forward if it was scrolled back.
	if outgoing.bufTop != 0 {
		outgoing.bufTop = 0
	}

	// 3/4. Move focus.
	outgoing.hasFocus = false
	target.hasFocus = true
	s.focus = n

	// 5. Blit the incoming VC's screen.
	if s.backend != nil {
		s.backend.RestoreScreen(n, target.screen)
	}

	// 6. Re-seed scrollback from the now-focused VC.
	target.bufY = target.cursor.Y
	target.bufTop = 0
	s.scrollback.Reseed(n, target.screen)

	// 7. Cursor visibility and blink.
	if s.backend != nil {
		s.backend.UpdateCurpos(n, target.cursor.X, target.cursor.Y)
		s.backend.ShowCursor(n, target.cursorVisible)
		s.backend.CursorBlink(n)
	}
	return nil
}
