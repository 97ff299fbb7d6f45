package inst

import (
	"errors"
	"fmt"
)

type Opcode uint8

const (
	BR   Opcode = 0x0
	ADD  Opcode = 0x1
	LDB  Opcode = 0x2
	STB  Opcode = 0x3
	JSR  Opcode = 0x4
	AND  Opcode = 0x5
	LDR  Opcode = 0x6
	STR  Opcode = 0x7
	RTI  Opcode = 0x8
	NOT  Opcode = 0x9
	LDI  Opcode = 0xA
	STI  Opcode = 0xB
	JMP  Opcode = 0xC
	SHF  Opcode = 0xD
	LEA  Opcode = 0xE
	TRAP Opcode = 0xF
)

var ErrUndefinedOpcode = errors.New("undefined opcode")

var opString = map[Opcode]string{
	BR:   "BR",
	ADD:  "ADD",
	LDB:  "LDB",
	STB:  "STB",
	JSR:  "JSR",
	AND:  "AND",
	LDR:  "LDR",
	STR:  "STR",
	RTI:  "RTI",
	NOT:  "NOT",
	LDI:  "LDI",
	STI:  "STI",
	JMP:  "JMP",
	SHF:  "SHF",
	LEA:  "LEA",
	TRAP: "TRAP",
}

func (o Opcode) validate() error {
	switch o {
	case BR, ADD, LDB, STB, JSR, AND, LDR, STR, RTI, NOT, LDI, STI, JMP, SHF, LEA, TRAP:
		return nil
	default:
		return fmt.Errorf("%w %#x", ErrUndefinedOpcode, uint8(o))
	}
}

func (o Opcode) String() string {
	val, ok := opString[o]
	if !ok {
		return fmt.Sprintf("Opcode(%#x)", uint8(o))
	}
	return val
}
