package inst

import "fmt"

var regString = map[Register]string{
	R0: "R0",
	R1: "R1",
	R2: "R2",
	R3: "R3",
	R4: "R4",
	R5: "R5",
	R6: "R6",
	R7: "R7",
}

func (r Register) String() string {
	val, ok := regString[r]
	if !ok {
		panic(fmt.Sprintf("Can't encode Register %d", uint8(r)))
	}
	return val
}
