package vconsole

import (
	"testing"
	"time"
)

type fakeSpeaker struct {
	active bool
	on     int
	off    int
}

func (f *fakeSpeaker) Activate()   { f.active = true; f.on++ }
func (f *fakeSpeaker) Deactivate() { f.active = false; f.off++ }

type fakeCallout struct{ cancelled *bool }

func (c fakeCallout) Cancel() { *c.cancelled = true }

type fakeScheduler struct {
	lastDelay time.Duration
	lastFn    func()
	cancelled *bool // cancellation flag of the most recently scheduled callout
}

func (s *fakeScheduler) Schedule(delay time.Duration, fn func()) Callout {
	s.lastDelay = delay
	s.lastFn = fn
	s.cancelled = new(bool)
	return fakeCallout{cancelled: s.cancelled}
}

func TestBellActivatesAndSchedulesDeactivation(t *testing.T) {
	speaker := &fakeSpeaker{}
	scheduler := &fakeScheduler{}
	bell := NewBellController(speaker, scheduler)

	bell.Ring(1)

	if !speaker.active {
		t.Fatalf("speaker not activated by Ring")
	}
	if scheduler.lastDelay != BellDuration {
		t.Fatalf("scheduled delay = %v, want %v", scheduler.lastDelay, BellDuration)
	}

	scheduler.lastFn()
	if speaker.active {
		t.Fatalf("speaker still active after the deactivation callout fired")
	}
}

func TestBellRingCancelsPreviousCallout(t *testing.T) {
	speaker := &fakeSpeaker{}
	scheduler := &fakeScheduler{}
	bell := NewBellController(speaker, scheduler)

	bell.Ring(1)
	first := scheduler.cancelled
	bell.Ring(1)

	if !*first {
		t.Fatalf("first callout was not cancelled by the second Ring")
	}
	if *scheduler.cancelled {
		t.Fatalf("second (latest) callout should not be cancelled yet")
	}
	if speaker.on != 2 {
		t.Fatalf("speaker activated %d times, want 2", speaker.on)
	}
}

func TestRingBellThroughVirtualConsole(t *testing.T) {
	sub, _ := newTestSubsystem(t, 10, 5, 1)
	speaker := &fakeSpeaker{}
	sub.bell = NewBellController(speaker, &fakeScheduler{})
	vc := sub.VC(1)

	vc.Write([]byte{ctrlBEL})

	if !speaker.active {
		t.Fatalf("BEL byte did not ring the bell")
	}
}
