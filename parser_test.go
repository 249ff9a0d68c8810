package vconsole

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSubsystem(t *testing.T, columns, lines, count int) (*ConsoleSubsystem, *MockBackend) {
	t.Helper()
	backend := NewMockBackend()
	sub := NewConsoleSubsystem(Config{Columns: columns, Lines: lines, Count: count}, backend)
	return sub, backend
}

// TestS1PlainText is scenario S1 from spec.md §8.
func TestS1PlainText(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)

	_, err := vc.Write([]byte("Hi\n"))
	require.NoError(t, err)

	require.Equal(t, byte('H'), vc.Screen().Cell(0, 0).Glyph)
	require.Equal(t, byte('i'), vc.Screen().Cell(1, 0).Glyph)
	x, y := vc.Cursor()
	require.Equal(t, 0, x)
	require.Equal(t, 1, y)
}

// TestS2ClearAndHome is scenario S2.
func TestS2ClearAndHome(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)

	vc.Write([]byte("garbage text here"))
	vc.Write([]byte("\x1b[2J\x1b[HX"))

	for y := 0; y < vc.Lines(); y++ {
		for x := 0; x < vc.Columns(); x++ {
			if x == 0 && y == 0 {
				continue
			}
			if c := vc.Screen().Cell(x, y); c.Glyph != ' ' {
				t.Fatalf("cell(%d,%d) = %q, want blank", x, y, c.Glyph)
			}
		}
	}
	require.Equal(t, byte('X'), vc.Screen().Cell(0, 0).Glyph)
	x, y := vc.Cursor()
	require.Equal(t, 1, x)
	require.Equal(t, 0, y)
}

// TestS3SGRApplication is scenario S3.
func TestS3SGRApplication(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)

	vc.Write([]byte("\x1b[1;31mERR\x1b[0m."))

	for i, want := range []byte("ERR") {
		cell := vc.Screen().Cell(i, 0)
		require.Equal(t, want, cell.Glyph)
		require.Equal(t, uint8(hwRed), cell.Attr.Fg())
		require.True(t, cell.Attr.Bold())
	}
	dot := vc.Screen().Cell(3, 0)
	require.Equal(t, byte('.'), dot.Glyph)
	require.Equal(t, DefMode, dot.Attr)
}

// TestS4ScrollRegion is scenario S4.
func TestS4ScrollRegion(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)

	vc.Write([]byte("\x1b[4;10r\x1b[HA\nB\nC"))

	require.Equal(t, byte('A'), vc.Screen().Cell(0, 3).Glyph)
	require.Equal(t, byte('B'), vc.Screen().Cell(0, 4).Glyph)
	require.Equal(t, byte('C'), vc.Screen().Cell(0, 5).Glyph)

	for y := 0; y < vc.Lines(); y++ {
		if y >= 3 && y < 10 {
			continue
		}
		for x := 0; x < vc.Columns(); x++ {
			if c := vc.Screen().Cell(x, y); c.Glyph != ' ' {
				t.Fatalf("row %d outside scroll region was written: cell(%d,%d)=%q", y, x, y, c.Glyph)
			}
		}
	}
}

// TestS5TabStops is scenario S5.
func TestS5TabStops(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)

	vc.Write([]byte("\t\t"))

	x, y := vc.Cursor()
	require.Equal(t, 16, x)
	require.Equal(t, 0, y)
}

// TestS6CursorPositionReport is scenario S6.
func TestS6CursorPositionReport(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)
	injector := NewBufferInjector()
	sub.injector = injector

	vc.Write([]byte("\x1b[8;5H")) // row 8, col 5 (1-based) -> (x=4, y=7)
	x, y := vc.Cursor()
	require.Equal(t, 4, x)
	require.Equal(t, 7, y)

	vc.Write([]byte("\x1b[6n"))
	require.Equal(t, []byte("\x1b[7;4R"), injector.Drain(1))
}

// TestCursorClampInvariant is testable property 1 from spec.md §8.
func TestCursorClampInvariant(t *testing.T) {
	sub, _ := newTestSubsystem(t, 10, 5, 1)
	vc := sub.VC(1)

	vc.Write([]byte("\x1b[999B\x1b[999C\x1b[0;0H\x1b[999A\x1b[999D"))

	x, y := vc.Cursor()
	if x < 0 || x >= vc.Columns() || y < 0 || y >= vc.Lines() {
		t.Fatalf("cursor (%d,%d) escaped bounds [0,%d)x[0,%d)", x, y, vc.Columns(), vc.Lines())
	}
}

// TestDeferredWrap is testable property 2 from spec.md §8.
func TestDeferredWrap(t *testing.T) {
	sub, _ := newTestSubsystem(t, 10, 5, 1)
	vc := sub.VC(1)

	for i := 0; i < vc.Columns(); i++ {
		vc.Write([]byte{'x'})
	}
	x, y := vc.Cursor()
	require.Equal(t, vc.Columns()-1, x)
	require.Equal(t, 0, y)
	require.True(t, vc.cursor.NeedWrap)

	vc.Write([]byte{'y'})
	x, y = vc.Cursor()
	require.Equal(t, 1, x)
	require.Equal(t, 1, y)
}

// TestSaveRestoreCursorRoundTrip is testable property 4.
func TestSaveRestoreCursorRoundTrip(t *testing.T) {
	sub, _ := newTestSubsystem(t, 20, 10, 1)
	vc := sub.VC(1)

	vc.Write([]byte("\x1b[3;4H\x1b7"))
	vc.Write([]byte("\x1b[10;10H"))
	vc.Write([]byte("\x1b8"))

	x, y := vc.Cursor()
	require.Equal(t, 3, x)
	require.Equal(t, 2, y)

	vc.Write([]byte("\x1b[5;5H\x1b[s\x1b[1;1H\x1b[u"))
	x, y = vc.Cursor()
	require.Equal(t, 4, x)
	require.Equal(t, 4, y)
}

// TestScrollOutPreservation is testable property 7.
func TestScrollOutPreservation(t *testing.T) {
	sub, _ := newTestSubsystem(t, 4, 2, 1)
	vc := sub.VC(1)

	vc.Write([]byte("ab\n"))
	vc.Write([]byte("cd\n"))

	hist := sub.scrollback.History(10)
	if len(hist) == 0 {
		t.Fatalf("expected at least one scrolled-out line in scrollback")
	}
	last := hist[len(hist)-1]
	require.Equal(t, "ab  ", string(cellGlyphs(last)))
}

// TestInjectionOrdering is testable property 8.
func TestInjectionOrdering(t *testing.T) {
	sub, _ := newTestSubsystem(t, 80, 25, 1)
	vc := sub.VC(1)
	injector := NewBufferInjector()
	sub.injector = injector

	vc.Write([]byte("\x1b[5nABC\x1b[6n"))

	want := append([]byte("\x1b[0n"), []byte("\x1b[0;3R")...)
	require.Equal(t, want, injector.Drain(1))
}
