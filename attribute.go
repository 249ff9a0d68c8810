package vconsole

// Attr is the packed attribute byte from spec.md §3: blink in bit 7,
// background color in bits 6-4, intensity/bold in bit 3, foreground
// color in bits 2-0.
type Attr uint8

const (
	attrFgMask  Attr = 0x07
	attrBoldBit Attr = 0x08
	attrBgMask  Attr = 0x70
	attrBgShift      = 4
	attrBlinkBit Attr = 0x80
)

// DefMode is the compile-time default attribute: white foreground (7)
// on black background (0), no bold/blink, matching the original
// driver's DEF_MODE.
const DefMode Attr = Attr(hwWhite)

// ColorTable maps ANSI SGR color indices (0-7: black, red, green,
// brown, blue, magenta, cyan, white) to hardware color nibbles, in the
// same fixed order spec.md §4.1 specifies. VGA-style hardware attribute
// colors are not in ANSI order (e.g. hardware blue is 1, ANSI blue is
// index 4), so this table performs the reindex exactly as the original
// ansi_color_table does.
var ColorTable = [8]uint8{
	hwBlack, hwRed, hwGreen, hwBrown, hwBlue, hwMagenta, hwCyan, hwWhite,
}

const (
	hwBlack uint8 = iota
	hwBlue
	hwGreen
	hwCyan
	hwRed
	hwMagenta
	hwBrown
	hwWhite
)

// Fg returns the foreground color nibble (0-7).
func (a Attr) Fg() uint8 { return uint8(a & attrFgMask) }

// Bg returns the background color nibble (0-7).
func (a Attr) Bg() uint8 { return uint8((a & attrBgMask) >> attrBgShift) }

// Bold reports whether the intensity bit is set.
func (a Attr) Bold() bool { return a&attrBoldBit != 0 }

// Blink reports whether the blink bit is set.
func (a Attr) Blink() bool { return a&attrBlinkBit != 0 }

// WithFg returns a copy of a with the foreground nibble replaced.
func (a Attr) WithFg(color uint8) Attr {
	return (a &^ attrFgMask) | Attr(color&0x07)
}

// WithBg returns a copy of a with the background nibble replaced.
func (a Attr) WithBg(color uint8) Attr {
	return (a &^ attrBgMask) | (Attr(color&0x07) << attrBgShift)
}

// WithBold sets or clears the intensity bit.
func (a Attr) WithBold(on bool) Attr {
	if on {
		return a | attrBoldBit
	}
	return a &^ attrBoldBit
}

// WithBlink sets or clears the blink bit.
func (a Attr) WithBlink(on bool) Attr {
	if on {
		return a | attrBlinkBit
	}
	return a &^ attrBlinkBit
}

// swapNibbles exchanges the foreground and background color nibbles,
// the "reverse video" transform spec.md §3 says is never stored, only
// applied at write time.
func (a Attr) swapNibbles() Attr {
	fg := a.Fg()
	bg := a.Bg()
	return a.WithFg(bg).WithBg(fg)
}

// AttrState is the SGR-visible booleans a VC tracks alongside the
// packed Attr, per spec.md §3 ("attribute state"). color_attr is kept
// separately in Attr so SGR folding can mutate one small word at a
// time, exactly as csi_m does in the original driver.
type AttrState struct {
	Color     Attr
	Bold      bool
	Blink     bool
	Reverse   bool
	Underline bool
}

// NewAttrState returns the default attribute state: DefMode, every
// boolean cleared.
func NewAttrState() AttrState {
	return AttrState{Color: DefMode}
}

// Reset restores DefMode and clears the four booleans, the effect of
// SGR parameter 0 and of a full VC reset.
func (s *AttrState) Reset() {
	s.Color = DefMode
	s.Bold = false
	s.Blink = false
	s.Reverse = false
	s.Underline = false
}

// SGR parameter codes recognized by ApplySGR, named per spec.md §4.1.
const (
	sgrDefault      = 0
	sgrBold         = 1
	sgrBlink        = 5
	sgrReverse      = 7
	sgrBoldOffA     = 21
	sgrBoldOffB     = 22
	sgrBlinkOff     = 25
	sgrReverseOff   = 27
	sgrFgBase       = 30
	sgrFgExtended   = 38
	sgrFgDefault    = 39
	sgrBgBase       = 40
	sgrBgExtended   = 48
	sgrBgDefault    = 49
)

// ApplySGR folds a vector of SGR parameters into the attribute state,
// following the four-step procedure in spec.md §4.1: undo any standing
// reverse, apply each parameter in order, reapply bold/blink, then
// reapply reverse if it is (still, or newly) set.
func (s *AttrState) ApplySGR(params []int) {
	if s.Reverse {
		s.Color = s.Color.swapNibbles()
	}

	for _, p := range params {
		switch {
		case p == sgrDefault:
			s.Color = DefMode
			s.Bold = false
			s.Blink = false
			s.Reverse = false
			s.Underline = false
		case p == sgrBold:
			s.Bold = true
		case p == sgrBlink:
			s.Blink = true
		case p == sgrReverse:
			s.Reverse = true
		case p == sgrBoldOffA || p == sgrBoldOffB:
			s.Bold = false
		case p == sgrBlinkOff:
			s.Blink = false
		case p == sgrReverseOff:
			s.Reverse = false
		case p >= sgrFgBase && p <= sgrFgBase+7:
			s.Color = s.Color.WithFg(ColorTable[p-sgrFgBase])
		case p >= sgrBgBase && p <= sgrBgBase+7:
			s.Color = s.Color.WithBg(ColorTable[p-sgrBgBase])
		case p == sgrFgExtended || p == sgrFgDefault || p == sgrBgExtended || p == sgrBgDefault:
			// Recognised but ignored, per spec.md §4.1 step 2.
		}
	}

	s.Color = s.Color.WithBold(s.Bold).WithBlink(s.Blink)

	if s.Reverse {
		s.Color = s.Color.swapNibbles()
	}
}
