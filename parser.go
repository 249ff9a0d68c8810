package vconsole

// parserState is the explicit state enum spec.md §9 recommends in place
// of the original driver's inlined giant switch: Ground, EscSeen,
// CSIEntry, CSIParam.
type parserState int

const (
	stateGround parserState = iota
	stateEscSeen
	stateCSIEntry
	stateCSIParam
)

// MaxParams bounds the CSI parameter vector (MAX_PARMS in spec.md §3).
// Parameters beyond this count are silently ignored, per spec.md §7.
const MaxParams = 16

// Parser holds the escape-sequence state machine's variables. Per
// invariant 4 in spec.md §3, everything here is meaningless outside an
// in-progress escape sequence and is fully reset on each fresh ESC.
type Parser struct {
	state    parserState
	private  byte // '?' if a DEC-private prefix was seen, else 0
	params   []int
	hasParam bool // whether the current parameter slot has seen a digit
}

func (p *Parser) reset() {
	p.state = stateEscSeen
	p.private = 0
	p.params = nil
	p.hasParam = false
}

// feed advances the parser by one byte, dispatching actions against vc
// as needed. This is the entry point used whenever vc.Write sees a
// byte while already mid-escape-sequence, or a fresh ESC in GROUND.
func (p *Parser) feed(vc *VirtualConsole, b byte) {
	switch p.state {
	case stateGround:
		if b == 0x1b {
			p.reset()
		}
		// Any other byte reaching feed() while GROUND is unreachable:
		// VirtualConsole.Write routes non-ESC GROUND bytes to the echo
		// engine directly.

	case stateEscSeen:
		vc.cursor.NeedWrap = false
		p.dispatchEsc(vc, b)

	case stateCSIEntry, stateCSIParam:
		switch {
		case b >= '0' && b <= '9':
			if !p.hasParam {
				if len(p.params) >= MaxParams {
					// Already at capacity: drop the digit, per spec.md
					// §7 ("parameters beyond MAX_PARMS are ignored").
					p.state = stateCSIParam
					break
				}
				p.params = append(p.params, 0)
				p.hasParam = true
			}
			last := len(p.params) - 1
			p.params[last] = p.params[last]*10 + int(b-'0')
			p.state = stateCSIParam

		case b == ';':
			p.hasParam = false
			p.state = stateCSIParam

		case b == '?':
			p.private = '?'

		default:
			vc.cursor.NeedWrap = false
			dispatchCSI(vc, b, p.private, p.params)
			p.state = stateGround
			p.params = nil
			p.private = 0
			p.hasParam = false
		}
	}
}

// dispatchEsc handles the bare-ESC finalizer table from spec.md §4.2:
// 7/8 save/restore cursor, D line-feed, E CR+LF, H set tab, M reverse
// index, Z inject device id, c full reset, [ enters CSI. Any other
// byte drops back to GROUND unrecognised.
func (p *Parser) dispatchEsc(vc *VirtualConsole, b byte) {
	switch b {
	case '[':
		p.state = stateCSIEntry
		p.params = nil
		p.private = 0
		p.hasParam = false
		return
	case '7':
		vc.saved.Save(vc.cursor)
	case '8':
		vc.cursor = vc.saved.Restore()
		vc.clampCursor()
		vc.updateHardwareCursor()
	case 'D':
		vc.lineFeed()
	case 'E':
		vc.cursor.X = 0
		vc.lineFeed()
	case 'H':
		vc.screen.SetTabStop(vc.cursor.X)
	case 'M':
		vc.reverseIndex()
	case 'Z':
		vc.injectResponse(deviceIDResponse())
	case 'c':
		vc.Reset()
	default:
		// Unknown finalizer: silently drop, per spec.md §7.
	}
	p.state = stateGround
}
