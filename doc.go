// Package vconsole implements the core of a kernel-resident virtual
// console subsystem: an escape-sequence parser / terminal state machine,
// a screen-buffer and scrollback manager, and a console-switching
// protocol, modeled after a VT100/ANSI-compatible text console driver.
//
// The package multiplexes one physical display (or, in this Go port, one
// [VideoBackend]) across N independent [VirtualConsole] instances, each
// fed by its own byte stream. At most one console owns the backend at a
// time; [ConsoleSubsystem.Select] hands it between them.
//
// # Quick start
//
//	sub := vconsole.NewConsoleSubsystem(vconsole.Config{
//	    Columns: 80,
//	    Lines:   25,
//	    Count:   4,
//	}, vconsole.NewTextBackend(80, 25))
//
//	vc := sub.VC(1)
//	vc.Write([]byte("Hello, \x1b[1;31mworld\x1b[0m!\r\n"))
//
// # Architecture
//
// The subsystem is organized around these types:
//
//   - [ConsoleSubsystem]: owns the VC table, the shared [VideoBackend],
//     and the global [ScrollbackRing]; arbitrates focus.
//   - [VirtualConsole]: one terminal emulator — geometry, cursor,
//     attribute state, parser state, VT-mode handoff state.
//   - [Parser]: the byte-at-a-time escape-sequence state machine.
//   - [Buffer]: the off-screen cell mirror owned by each VC.
//   - [Attr]: the packed attribute byte and SGR folding rules.
//   - [VideoBackend]: the polymorphic hardware primitives ([TextBackend],
//     [FramebufferBackend], [MockBackend]).
//
// # Concurrency
//
// [ConsoleSubsystem] methods that touch shared state (focus, the
// scrollback ring, the backend) run inside [ConsoleSubsystem.withInterruptsDisabled],
// the Go stand-in for the original driver's save-flags/restore-flags
// discipline. Each [VirtualConsole.Write] call runs entirely under that
// lock, so concurrent calls never interleave their bytes; the order in
// which concurrent calls are applied is not defined.
package vconsole
