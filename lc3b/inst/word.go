package inst

// Word is a single LC-3b instruction as read from an object file.
type Word uint16

// Register is a 3-bit index into the general purpose register file.
type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
)

// Bit positions of the three register fields.
const (
	regHi  = 9
	regMid = 6
	regLo  = 0
)

// NewWord assembles a word from its high and low byte lanes.
func NewWord(hi, lo byte) Word {
	return Word(hi)<<8 | Word(lo)
}

func (w Word) Hi() byte {
	return byte(w >> 8)
}

func (w Word) Lo() byte {
	return byte(w)
}

func (w Word) Opcode() Opcode {
	return Opcode(w.Hi() >> 4)
}

func (w Word) bit(n uint) bool {
	return w&(1<<n) != 0
}

func (w Word) raw(width, offset uint) uint16 {
	return uint16(w>>offset) & (1<<width - 1)
}

func (w Word) register(offset uint) Register {
	return Register(w.raw(3, offset))
}

// biased reads a width-bit field as raw - 2^(width-1), so a 6-bit field
// spans [-32, 31].
func (w Word) biased(width, offset uint) int {
	return int(w.raw(width, offset)) - 1<<(width-1)
}
