// Package input decodes the key presses the interactive mode reacts to from
// a raw terminal byte stream.
package input

// Key is a decoded key press.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyRight:
		return "right"
	case KeyLeft:
		return "left"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// Bytes the decoder recognizes.
const (
	ESC     = 0x1b
	CSI     = '['
	QuitKey = 'q'
)

type state uint8

const (
	stateGround state = iota
	stateEscape
	stateBracket
)

// Decoder recognizes ESC [ A/B/C/D arrow sequences and a bare 'q'. Any byte
// that does not continue a sequence abandons it and is otherwise ignored.
// The zero value is ready to use.
type Decoder struct {
	state state
}

// Feed advances the decoder by one byte and returns the key it completes, or
// KeyNone.
func (d *Decoder) Feed(b byte) Key {
	switch d.state {
	case stateEscape:
		switch b {
		case CSI:
			d.state = stateBracket
		case ESC:
			// stay: a fresh escape replaces the abandoned one
		default:
			d.state = stateGround
		}
		return KeyNone

	case stateBracket:
		d.state = stateGround
		switch b {
		case 'A':
			return KeyUp
		case 'B':
			return KeyDown
		case 'C':
			return KeyRight
		case 'D':
			return KeyLeft
		case ESC:
			d.state = stateEscape
		}
		return KeyNone

	default:
		switch b {
		case ESC:
			d.state = stateEscape
		case QuitKey:
			return KeyQuit
		}
		return KeyNone
	}
}

// Pending reports whether the decoder is in the middle of a sequence.
func (d *Decoder) Pending() bool {
	return d.state != stateGround
}

// Reset drops any partially read sequence.
func (d *Decoder) Reset() {
	d.state = stateGround
}

// Decode feeds every byte of p and returns the keys completed along the way.
func (d *Decoder) Decode(p []byte) []Key {
	var keys []Key
	for _, b := range p {
		if k := d.Feed(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}
