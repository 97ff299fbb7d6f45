package inst

// Service routines with a conventional name.
const (
	TrapGETC uint8 = 0x20
	TrapOUT  uint8 = 0x21
	TrapPUTS uint8 = 0x22
	TrapIN   uint8 = 0x23
	TrapHALT uint8 = 0x25
)

var trapString = map[uint8]string{
	TrapGETC: "GETC",
	TrapOUT:  "OUT",
	TrapPUTS: "PUTS",
	TrapIN:   "IN",
	TrapHALT: "HALT",
}

// TrapName returns the conventional name of a TRAP vector, or "" when the
// vector has none.
func TrapName(vector uint8) string {
	return trapString[vector]
}
