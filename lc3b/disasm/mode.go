package disasm

import (
	"fmt"
	"strings"
)

type Mode string
type modes []Mode

const (
	Sequential Mode = "sequential"
	Parallel   Mode = "parallel"
)

var Modes = modes{Sequential, Parallel}

func (ms modes) String() string {
	result := make([]string, len(ms))
	for i, m := range ms {
		result[i] = string(m)
	}
	return strings.Join(result, ", ")
}

func (m Mode) String() string {
	return string(m)
}

func (m *Mode) Set(s string) error {
	for _, known := range Modes {
		if known.String() == s {
			*m = known
			return nil
		}
	}
	return fmt.Errorf("can't find mode %q", s)
}
