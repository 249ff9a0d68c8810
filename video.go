package vconsole

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// VideoBackend is the polymorphic hardware surface spec.md §4.4
// describes: put_char, write_screen, scroll_screen, insert_char,
// delete_char, update_curpos, show_cursor, restore_screen and
// cursor_blink, adapted from the teacher's provider-interface pattern.
// Every method takes the VC number it applies to, so a single backend
// instance can serve a [ConsoleSubsystem] with many consoles, switching
// on which one currently has focus.
type VideoBackend interface {
	// PutChar draws a single cell at (x, y) on the given console.
	PutChar(vc int, x, y int, c Cell)
	// WriteScreen redraws an entire visible console from its buffer.
	WriteScreen(vc int, buf *Buffer)
	// ScrollScreen notifies the backend that rows [top, bottom) of vc
	// shifted by delta lines (positive = up), so hardware-assisted
	// scrolling can be used instead of a full redraw.
	ScrollScreen(vc int, top, bottom, delta int)
	// InsertChar notifies the backend that a character was inserted at
	// (x, y), shifting the remainder of the row right.
	InsertChar(vc int, x, y int)
	// DeleteChar notifies the backend that a character was deleted at
	// (x, y), shifting the remainder of the row left.
	DeleteChar(vc int, x, y int)
	// UpdateCurpos moves the hardware cursor to (x, y) on vc.
	UpdateCurpos(vc int, x, y int)
	// ShowCursor toggles cursor visibility on vc.
	ShowCursor(vc int, visible bool)
	// RestoreScreen is called when vc regains focus, so the backend can
	// repaint from the now-current buffer.
	RestoreScreen(vc int, buf *Buffer)
	// CursorBlink starts cursor blinking on vc; the subsystem calls it
	// once each time vc gains focus through a console switch.
	CursorBlink(vc int)
}

// NoopBackend implements [VideoBackend] with no-ops, for embedding in
// backends that only care about a subset of the interface, the same
// "Noop default" shape the teacher's providers.go uses.
type NoopBackend struct{}

func (NoopBackend) PutChar(int, int, int, Cell)     {}
func (NoopBackend) WriteScreen(int, *Buffer)        {}
func (NoopBackend) ScrollScreen(int, int, int, int) {}
func (NoopBackend) InsertChar(int, int, int)        {}
func (NoopBackend) DeleteChar(int, int, int)        {}
func (NoopBackend) UpdateCurpos(int, int, int)      {}
func (NoopBackend) ShowCursor(int, bool)            {}
func (NoopBackend) RestoreScreen(int, *Buffer)      {}
func (NoopBackend) CursorBlink(int)                 {}

// MockBackend records every call it receives, for use in tests that
// assert on the exact sequence of video primitives a parser run
// produces (spec.md §8's testable properties drive screen state from
// this, not from terminal rendering).
type MockBackend struct {
	NoopBackend
	Calls      []string
	CursorX    map[int]int
	CursorY    map[int]int
	CursorOn   map[int]bool
	LastScreen map[int]*Buffer
}

// NewMockBackend returns an empty MockBackend ready to record calls.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		CursorX:    map[int]int{},
		CursorY:    map[int]int{},
		CursorOn:   map[int]bool{},
		LastScreen: map[int]*Buffer{},
	}
}

func (m *MockBackend) PutChar(vc, x, y int, c Cell) {
	m.Calls = append(m.Calls, fmt.Sprintf("put(%d,%d,%d,%q)", vc, x, y, rune(c.Glyph)))
}

func (m *MockBackend) WriteScreen(vc int, buf *Buffer) {
	m.Calls = append(m.Calls, fmt.Sprintf("write(%d)", vc))
	m.LastScreen[vc] = buf
}

func (m *MockBackend) ScrollScreen(vc, top, bottom, delta int) {
	m.Calls = append(m.Calls, fmt.Sprintf("scroll(%d,%d,%d,%d)", vc, top, bottom, delta))
}

func (m *MockBackend) InsertChar(vc, x, y int) {
	m.Calls = append(m.Calls, fmt.Sprintf("ins(%d,%d,%d)", vc, x, y))
}

func (m *MockBackend) DeleteChar(vc, x, y int) {
	m.Calls = append(m.Calls, fmt.Sprintf("del(%d,%d,%d)", vc, x, y))
}

func (m *MockBackend) UpdateCurpos(vc, x, y int) {
	m.CursorX[vc] = x
	m.CursorY[vc] = y
	m.Calls = append(m.Calls, fmt.Sprintf("curpos(%d,%d,%d)", vc, x, y))
}

func (m *MockBackend) ShowCursor(vc int, visible bool) {
	m.CursorOn[vc] = visible
	m.Calls = append(m.Calls, fmt.Sprintf("cursor(%d,%v)", vc, visible))
}

func (m *MockBackend) RestoreScreen(vc int, buf *Buffer) {
	m.Calls = append(m.Calls, fmt.Sprintf("restore(%d)", vc))
	m.LastScreen[vc] = buf
}

// TextBackend renders consoles as plain text to an in-memory grid,
// exposing String() for assertions and diagnostic dumps; it is the
// backend a headless daemon uses when no framebuffer is attached.
type TextBackend struct {
	NoopBackend
	columns, lines int
	grid           map[int][]rune
	curX, curY     map[int]int
}

// NewTextBackend returns a TextBackend sized for columns x lines.
func NewTextBackend(columns, lines int) *TextBackend {
	return &TextBackend{
		columns: columns,
		lines:   lines,
		grid:    map[int][]rune{},
		curX:    map[int]int{},
		curY:    map[int]int{},
	}
}

func (t *TextBackend) ensure(vc int) []rune {
	g, ok := t.grid[vc]
	if !ok {
		g = make([]rune, t.columns*t.lines)
		for i := range g {
			g[i] = ' '
		}
		t.grid[vc] = g
	}
	return g
}

func (t *TextBackend) PutChar(vc, x, y int, c Cell) {
	g := t.ensure(vc)
	if x < 0 || x >= t.columns || y < 0 || y >= t.lines {
		return
	}
	g[y*t.columns+x] = rune(c.Glyph)
}

func (t *TextBackend) WriteScreen(vc int, buf *Buffer) {
	g := t.ensure(vc)
	for y := 0; y < t.lines && y < buf.Lines(); y++ {
		for x := 0; x < t.columns && x < buf.Columns(); x++ {
			g[y*t.columns+x] = rune(buf.Cell(x, y).Glyph)
		}
	}
}

func (t *TextBackend) RestoreScreen(vc int, buf *Buffer) { t.WriteScreen(vc, buf) }

func (t *TextBackend) UpdateCurpos(vc, x, y int) {
	t.curX[vc] = x
	t.curY[vc] = y
}

// String renders vc's grid as newline-separated rows, for tests and
// debugging dumps.
func (t *TextBackend) String(vc int) string {
	g, ok := t.grid[vc]
	if !ok {
		return ""
	}
	var b strings.Builder
	for y := 0; y < t.lines; y++ {
		b.WriteString(strings.TrimRight(string(g[y*t.columns:(y+1)*t.columns]), " "))
		if y < t.lines-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FramebufferBackend rasterizes consoles into an *image.RGBA using a
// fixed-width bitmap font, grounded on the teacher's screenshot
// rendering path (golang.org/x/image/font, basicfont, math/fixed).
// BootConfig.Backend "framebuffer" selects it; [FramebufferBackend.Image]
// returns the rendered picture. The vconsoled viewer endpoint streams
// raw shell output, not these images.
type FramebufferBackend struct {
	NoopBackend
	columns, lines int
	cellW, cellH   int
	face           font.Face
	images         map[int]*image.RGBA
	fg, bg         color.Color
	cursorVisible  map[int]bool
	curX, curY     map[int]int
}

// NewFramebufferBackend returns a FramebufferBackend using
// basicfont.Face7x13, sized for columns x lines text cells.
func NewFramebufferBackend(columns, lines int) *FramebufferBackend {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Height
	return &FramebufferBackend{
		columns:       columns,
		lines:         lines,
		cellW:         cellW,
		cellH:         cellH,
		face:          face,
		images:        map[int]*image.RGBA{},
		fg:            color.White,
		bg:            color.Black,
		cursorVisible: map[int]bool{},
		curX:          map[int]int{},
		curY:          map[int]int{},
	}
}

func (f *FramebufferBackend) image(vc int) *image.RGBA {
	img, ok := f.images[vc]
	if !ok {
		img = image.NewRGBA(image.Rect(0, 0, f.columns*f.cellW, f.lines*f.cellH))
		draw.Draw(img, img.Bounds(), image.NewUniform(f.bg), image.Point{}, draw.Src)
		f.images[vc] = img
	}
	return img
}

// Image returns the current rendered framebuffer for vc.
func (f *FramebufferBackend) Image(vc int) *image.RGBA { return f.image(vc) }

func (f *FramebufferBackend) cellColors(c Cell) (color.Color, color.Color) {
	fg := ansiPalette[c.Attr.Fg()]
	bg := ansiPalette[c.Attr.Bg()]
	if c.Attr.Bold() {
		fg = ansiBrightPalette[c.Attr.Fg()]
	}
	return fg, bg
}

func (f *FramebufferBackend) PutChar(vc, x, y int, c Cell) {
	img := f.image(vc)
	if x < 0 || x >= f.columns || y < 0 || y >= f.lines {
		return
	}
	fg, bg := f.cellColors(c)
	rect := image.Rect(x*f.cellW, y*f.cellH, (x+1)*f.cellW, (y+1)*f.cellH)
	draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: f.face,
		Dot:  fixed.P(x*f.cellW, (y+1)*f.cellH-f.face.Descent),
	}
	d.DrawString(string(rune(c.Glyph)))
}

func (f *FramebufferBackend) WriteScreen(vc int, buf *Buffer) {
	for y := 0; y < buf.Lines(); y++ {
		for x := 0; x < buf.Columns(); x++ {
			f.PutChar(vc, x, y, buf.Cell(x, y))
		}
	}
}

func (f *FramebufferBackend) RestoreScreen(vc int, buf *Buffer) { f.WriteScreen(vc, buf) }

func (f *FramebufferBackend) UpdateCurpos(vc, x, y int) {
	f.curX[vc] = x
	f.curY[vc] = y
}

func (f *FramebufferBackend) ShowCursor(vc int, visible bool) {
	f.cursorVisible[vc] = visible
}

// ansiPalette and ansiBrightPalette are the RGB values conventionally
// assigned to the 8 console colors, indexed by hardware nibble the same
// way hwBlack..hwWhite are (0=black, 1=blue, 2=green, 3=cyan, 4=red,
// 5=magenta, 6=brown, 7=white), not by ANSI SGR index.
var ansiPalette = [8]color.Color{
	hwBlack:   color.RGBA{0, 0, 0, 255},
	hwBlue:    color.RGBA{0, 0, 238, 255},
	hwGreen:   color.RGBA{0, 205, 0, 255},
	hwCyan:    color.RGBA{0, 205, 205, 255},
	hwRed:     color.RGBA{205, 0, 0, 255},
	hwMagenta: color.RGBA{205, 0, 205, 255},
	hwBrown:   color.RGBA{205, 205, 0, 255},
	hwWhite:   color.RGBA{229, 229, 229, 255},
}

var ansiBrightPalette = [8]color.Color{
	hwBlack:   color.RGBA{127, 127, 127, 255},
	hwBlue:    color.RGBA{92, 92, 255, 255},
	hwGreen:   color.RGBA{0, 255, 0, 255},
	hwCyan:    color.RGBA{0, 255, 255, 255},
	hwRed:     color.RGBA{255, 0, 0, 255},
	hwMagenta: color.RGBA{255, 0, 255, 255},
	hwBrown:   color.RGBA{255, 255, 0, 255},
	hwWhite:   color.RGBA{255, 255, 255, 255},
}
