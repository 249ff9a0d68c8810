package vconsole

import "testing"

func TestCellPackUnpack(t *testing.T) {
	c := Cell{Glyph: 'X', Attr: DefMode.WithBold(true)}
	word := c.Pack()
	got := UnpackCell(word)
	if got != c {
		t.Fatalf("UnpackCell(Pack(c)) = %+v, want %+v", got, c)
	}
}

func TestBlankCell(t *testing.T) {
	c := BlankCell(DefMode)
	if c.Glyph != ' ' {
		t.Errorf("BlankCell glyph = %q, want space", c.Glyph)
	}
	if c.Attr != DefMode {
		t.Errorf("BlankCell attr = %v, want %v", c.Attr, DefMode)
	}
}
