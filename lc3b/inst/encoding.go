package inst

import "fmt"

type decoder func(Word) Instruction

var decoders = map[Opcode]decoder{
	BR:   decodeBranch,
	ADD:  decodeOperate,
	LDB:  decodeLoad,
	STB:  decodeStore,
	JSR:  decodeSubroutine,
	AND:  decodeOperate,
	LDR:  decodeLoad,
	STR:  decodeStore,
	RTI:  decodeReturnFromInterrupt,
	NOT:  decodeNot,
	LDI:  decodeLoad,
	STI:  decodeStore,
	JMP:  decodeJump,
	SHF:  decodeShift,
	LEA:  decodeLoadEffectiveAddress,
	TRAP: decodeTrap,
}

func dispatch(op Opcode, w Word) (Instruction, error) {
	if err := op.validate(); err != nil {
		return Instruction{}, fmt.Errorf("word 0x%04x: %w", uint16(w), err)
	}
	return decoders[op](w), nil
}

// Parse splits w into the fields of its instruction family.
func Parse(w Word) (Instruction, error) {
	return dispatch(w.Opcode(), w)
}

// Decode renders word as one newline-terminated line of assembly.
func Decode(word uint16) (string, error) {
	i, err := Parse(Word(word))
	if err != nil {
		return "", err
	}
	return i.Line(), nil
}
