package inst

import (
	"fmt"
	"strings"
)

type form uint8

const (
	formRegReg    form = iota // OP Rd, Rs1, Rs2 ;
	formRegImm                // OP Rd, Rs1, #imm ;
	formLoad                  // OP Rd, Rb, #off ;
	formStore                 // OP Rs, Rb, #off ;
	formBranch                // BRnzp #off ;
	formBase                  // OP Rb ;
	formOffset                // OP #off ;
	formRegOffset             // OP Rd, #off ;
	formUnary                 // OP Rd, Rs ;
	formBare                  // OP ;
	formShift                 // OP Rd, Rs, #imm
	formTrap                  // TRAP 0xNN ; NAME
)

// Instruction holds the fields of one decoded word. Which fields are
// meaningful depends on Op.
type Instruction struct {
	Word     Word
	Op       Opcode
	Mnemonic string

	DR    Register
	SR    Register // bits 11-9 of a store, bits 8-6 of NOT and SHF
	SR1   Register // ADD, AND
	SR2   Register // ADD, AND register form
	BaseR Register

	Imm    int
	Vector uint8

	ImmMode bool // ADD, AND: second operand is imm5
	N, Z, P bool // BR condition codes
	Link    bool // JSR: PC-relative form
	Right   bool // SHF: d bit
	Arith   bool // SHF: a bit

	form form
}

func (i Instruction) String() string {
	switch i.form {
	case formRegReg:
		return fmt.Sprintf("%s %s, %s, %s ;", i.Mnemonic, i.DR, i.SR1, i.SR2)
	case formRegImm:
		return fmt.Sprintf("%s %s, %s, #%d ;", i.Mnemonic, i.DR, i.SR1, i.Imm)
	case formLoad:
		return fmt.Sprintf("%s %s, %s, #%d ;", i.Mnemonic, i.DR, i.BaseR, i.Imm)
	case formStore:
		return fmt.Sprintf("%s %s, %s, #%d ;", i.Mnemonic, i.SR, i.BaseR, i.Imm)
	case formBranch, formOffset:
		return fmt.Sprintf("%s #%d ;", i.Mnemonic, i.Imm)
	case formBase:
		return fmt.Sprintf("%s %s ;", i.Mnemonic, i.BaseR)
	case formRegOffset:
		return fmt.Sprintf("%s %s, #%d ;", i.Mnemonic, i.DR, i.Imm)
	case formUnary:
		return fmt.Sprintf("%s %s, %s ;", i.Mnemonic, i.DR, i.SR)
	case formBare:
		return i.Mnemonic + " ;"
	case formShift:
		return fmt.Sprintf("%s %s, %s, #%d", i.Mnemonic, i.DR, i.SR, i.Imm)
	case formTrap:
		if name := TrapName(i.Vector); name != "" {
			return fmt.Sprintf("%s 0x%x ; %s", i.Mnemonic, i.Vector, name)
		}
		return fmt.Sprintf("%s 0x%x ;", i.Mnemonic, i.Vector)
	default:
		panic("Unreachable")
	}
}

// Line is String terminated by a newline.
func (i Instruction) Line() string {
	return i.String() + "\n"
}

func newInstruction(w Word) Instruction {
	op := w.Opcode()
	return Instruction{Word: w, Op: op, Mnemonic: op.String()}
}

// ADD, AND
func decodeOperate(w Word) Instruction {
	i := newInstruction(w)
	i.DR = w.register(regHi)
	i.SR1 = w.register(regMid)
	if i.ImmMode = w.bit(5); i.ImmMode {
		i.Imm = w.biased(5, 0)
		i.form = formRegImm
	} else {
		i.SR2 = w.register(regLo)
		i.form = formRegReg
	}
	return i
}

func decodeBranch(w Word) Instruction {
	i := newInstruction(w)
	i.N, i.Z, i.P = w.bit(11), w.bit(10), w.bit(9)

	var b strings.Builder
	b.WriteString("BR")
	for _, cc := range []struct {
		set    bool
		letter byte
	}{{i.N, 'n'}, {i.Z, 'z'}, {i.P, 'p'}} {
		if cc.set {
			b.WriteByte(cc.letter)
		}
	}
	i.Mnemonic = b.String()
	i.Imm = w.biased(9, 0)
	i.form = formBranch
	return i
}

func decodeJump(w Word) Instruction {
	i := newInstruction(w)
	i.BaseR = w.register(regMid)
	if i.BaseR == R7 {
		i.Mnemonic = "RET"
		i.form = formBare
	} else {
		i.form = formBase
	}
	return i
}

func decodeSubroutine(w Word) Instruction {
	i := newInstruction(w)
	if i.Link = w.bit(11); i.Link {
		i.Imm = w.biased(11, 0)
		i.form = formOffset
	} else {
		i.Mnemonic = "JSRR"
		i.BaseR = w.register(regMid)
		i.form = formBase
	}
	return i
}

// LDB, LDI, LDR
func decodeLoad(w Word) Instruction {
	i := newInstruction(w)
	i.DR = w.register(regHi)
	i.BaseR = w.register(regMid)
	i.Imm = w.biased(6, 0)
	i.form = formLoad
	return i
}

// STB, STI, STR
func decodeStore(w Word) Instruction {
	i := newInstruction(w)
	i.SR = w.register(regHi)
	i.BaseR = w.register(regMid)
	i.Imm = w.biased(6, 0)
	i.form = formStore
	return i
}

func decodeLoadEffectiveAddress(w Word) Instruction {
	i := newInstruction(w)
	i.DR = w.register(regHi)
	i.Imm = w.biased(9, 0)
	i.form = formRegOffset
	return i
}

func decodeNot(w Word) Instruction {
	i := newInstruction(w)
	i.DR = w.register(regHi)
	i.SR = w.register(regMid)
	i.form = formUnary
	return i
}

func decodeReturnFromInterrupt(w Word) Instruction {
	i := newInstruction(w)
	i.form = formBare
	return i
}

func decodeShift(w Word) Instruction {
	i := newInstruction(w)
	i.DR = w.register(regHi)
	i.SR = w.register(regMid)
	i.Arith, i.Right = w.bit(5), w.bit(4)
	switch {
	case i.Right && i.Arith:
		i.Mnemonic = "RSHFA"
	case i.Right:
		i.Mnemonic = "RSHFL"
	default:
		i.Mnemonic = "LSHF"
	}
	i.Imm = w.biased(4, 0)
	i.form = formShift
	return i
}

func decodeTrap(w Word) Instruction {
	i := newInstruction(w)
	i.Vector = w.Lo()
	i.form = formTrap
	return i
}
