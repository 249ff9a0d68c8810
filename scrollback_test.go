package vconsole

import "testing"

func TestScrollbackReseedAndHistory(t *testing.T) {
	buf := NewBuffer(4, 2)
	buf.SetRow(0, []Cell{{Glyph: 'a'}, {Glyph: 'b'}, {Glyph: 'c'}, {Glyph: 'd'}})
	buf.SetRow(1, []Cell{{Glyph: 'e'}, {Glyph: 'f'}, {Glyph: 'g'}, {Glyph: 'h'}})

	r := NewScrollbackRing(4, 2, 2)
	r.Reseed(1, buf)

	if r.Owner() != 1 {
		t.Fatalf("Owner() = %d, want 1", r.Owner())
	}
	if got := r.History(10); len(got) != 0 {
		t.Fatalf("History() right after reseed = %d lines, want 0 (nothing scrolled out yet)", len(got))
	}

	r.PushLine(buf.Row(0))
	hist := r.History(10)
	if len(hist) != 1 {
		t.Fatalf("History() after one PushLine = %d lines, want 1", len(hist))
	}
	if string(cellGlyphs(hist[0])) != "abcd" {
		t.Fatalf("History()[0] = %q, want %q", cellGlyphs(hist[0]), "abcd")
	}
}

// TestScrollbackRefocusReseeds checks spec.md §3's "on focus change it
// is re-seeded from that VC's screen, never migrated": calling Reseed
// for a different VC discards whatever history the previous owner had
// accumulated.
func TestScrollbackRefocusReseeds(t *testing.T) {
	bufA := NewBuffer(4, 2)
	bufB := NewBuffer(4, 2)
	bufB.SetRow(0, []Cell{{Glyph: 'z'}, {Glyph: 'z'}, {Glyph: 'z'}, {Glyph: 'z'}})

	r := NewScrollbackRing(4, 2, 2)
	r.Reseed(1, bufA)
	r.PushLine(bufA.Row(0))
	if len(r.History(10)) == 0 {
		t.Fatalf("expected scrollback history for VC 1 before refocus")
	}

	r.Reseed(2, bufB)
	if r.Owner() != 2 {
		t.Fatalf("Owner() = %d, want 2", r.Owner())
	}
	if len(r.History(10)) != 0 {
		t.Fatalf("expected history cleared after re-seeding for a new owner")
	}
}
