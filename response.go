package vconsole

import "strconv"

// InputInjector delivers synthesized reply bytes into the input (read)
// side of a VC's TTY, per spec.md §4.6: replies never touch the
// screen, they are injected as if the host had typed them, in the same
// order the interrogations that produced them were processed (spec.md
// §5's ordering guarantee 3).
type InputInjector interface {
	Inject(vc int, data []byte)
}

// BufferInjector is the default [InputInjector]: an in-memory
// per-VC FIFO, adequate for tests and for a daemon that forwards the
// bytes on to a pty master.
type BufferInjector struct {
	queues map[int][]byte
}

// NewBufferInjector returns an empty BufferInjector.
func NewBufferInjector() *BufferInjector {
	return &BufferInjector{queues: map[int][]byte{}}
}

// Inject appends data to vc's queue.
func (b *BufferInjector) Inject(vc int, data []byte) {
	b.queues[vc] = append(b.queues[vc], data...)
}

// Drain removes and returns everything queued for vc.
func (b *BufferInjector) Drain(vc int) []byte {
	data := b.queues[vc]
	delete(b.queues, vc)
	return data
}

// deviceIDResponse is the reply to ESC Z / CSI c: a VT100 with advanced
// video option, per spec.md §6.
func deviceIDResponse() []byte {
	return []byte("\x1b[?1;2c")
}

// statusOKResponse is the reply to CSI 5n.
func statusOKResponse() []byte {
	return []byte("\x1b[0n")
}

// cursorPosResponse is the reply to CSI 6n: the current cursor
// coordinates reported as 0-based y;x, per spec.md §4.6's literal
// wording (not the 1-based row/col a real VT100 CPR would send).
func cursorPosResponse(y, x int) []byte {
	return []byte("\x1b[" + strconv.Itoa(y) + ";" + strconv.Itoa(x) + "R")
}

// injectResponse hands payload to the subsystem's injector for this
// VC, a no-op if none is configured.
func (vc *VirtualConsole) injectResponse(payload []byte) {
	if vc.sub != nil && vc.sub.injector != nil {
		vc.sub.injector.Inject(vc.Number, payload)
	}
}
