package vconsole

import "time"

// BellDuration is how long the speaker stays active after a bell,
// standing in for the original driver's HZ/8 tick count (spec.md
// §4.7): HZ/8 ticks is one eighth of a second at any HZ, i.e. 125ms.
const BellDuration = 125 * time.Millisecond

// PITSpeaker is the external collaborator spec.md §4.7 calls the "PIT
// speaker": something that can be turned on and off. The callout
// subsystem that schedules the deactivation is itself an external
// collaborator, modeled here as [CalloutScheduler].
type PITSpeaker interface {
	Activate()
	Deactivate()
}

// NoopSpeaker discards bell activations; the default for headless test
// harnesses that don't care about audio.
type NoopSpeaker struct{}

func (NoopSpeaker) Activate()   {}
func (NoopSpeaker) Deactivate() {}

// CalloutScheduler arms a one-shot callout, per spec.md §3's "Callout"
// data type: fn, arg, expires_ticks collapsed into a single closure and
// a duration.
type CalloutScheduler interface {
	Schedule(delay time.Duration, fn func()) Callout
}

// Callout is a handle to a scheduled one-shot action; Cancel is a
// no-op if the action already fired.
type Callout interface {
	Cancel()
}

// TimerScheduler implements [CalloutScheduler] with the standard
// library's timer wheel, the natural stand-in for a kernel callout
// queue in a userspace port.
type TimerScheduler struct{}

type timerCallout struct{ t *time.Timer }

func (c timerCallout) Cancel() { c.t.Stop() }

// Schedule arms fn to run after delay.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) Callout {
	return timerCallout{t: time.AfterFunc(delay, fn)}
}

// BellController wires a [PITSpeaker] and a [CalloutScheduler]
// together to implement spec.md §4.7: activate the speaker, then
// register a callout to deactivate it after [BellDuration].
type BellController struct {
	speaker   PITSpeaker
	scheduler CalloutScheduler
	pending   Callout
}

// NewBellController returns a BellController. A nil speaker or
// scheduler defaults to [NoopSpeaker] / [TimerScheduler].
func NewBellController(speaker PITSpeaker, scheduler CalloutScheduler) *BellController {
	if speaker == nil {
		speaker = NoopSpeaker{}
	}
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	return &BellController{speaker: speaker, scheduler: scheduler}
}

// Ring activates the speaker for vc and schedules its deactivation.
// vc is accepted for symmetry with the rest of the subsystem's API
// even though the speaker itself is not per-VC.
func (b *BellController) Ring(vc int) {
	if b.pending != nil {
		b.pending.Cancel()
	}
	b.speaker.Activate()
	b.pending = b.scheduler.Schedule(BellDuration, func() {
		b.speaker.Deactivate()
	})
}
