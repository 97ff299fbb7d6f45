package disasm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artemijrodionov/lc3b/lc3b/reader"
)

var program = []byte{
	0x83, 0x12, // ADD R1, R2, R3
	0xA0, 0x16, // ADD R3, R2, #-16
	0x05, 0x0F, // BRnzp #5
	0xAB, 0xD2, // LSHF R1, R2, #3
	0xC0, 0xC1, // RET
	0x25, 0xF0, // TRAP 0x25 ; HALT
}

const listing = "ADD R1, R2, R3 ;\n" +
	"ADD R3, R2, #-16 ;\n" +
	"BRnzp #5 ;\n" +
	"LSHF R1, R2, #3\n" +
	"RET ;\n" +
	"TRAP 0x25 ; HALT\n"

func TestRun(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			var out bytes.Buffer
			d := New(Config{Mode: mode, Workers: 2, ChunkSize: 2}, nil)
			require.NoError(t, d.Run(context.Background(), bytes.NewReader(program), &out))
			assert.Equal(t, listing, out.String())
		})
	}
}

func TestRunBigEndian(t *testing.T) {
	var out bytes.Buffer
	d := New(Config{Order: reader.BigEndian}, nil)
	require.NoError(t, d.Run(context.Background(), bytes.NewReader([]byte{0x12, 0x83}), &out))
	assert.Equal(t, "ADD R1, R2, R3 ;\n", out.String())
}

func TestRunEmptyInput(t *testing.T) {
	for _, mode := range Modes {
		var out bytes.Buffer
		d := New(Config{Mode: mode}, nil)
		require.NoError(t, d.Run(context.Background(), bytes.NewReader(nil), &out))
		assert.Empty(t, out.String())
	}
}

func TestRunTruncated(t *testing.T) {
	input := append(append([]byte{}, program...), 0x42)

	t.Run("sequential", func(t *testing.T) {
		var out bytes.Buffer
		err := New(Config{Mode: Sequential}, nil).Run(context.Background(), bytes.NewReader(input), &out)
		assert.ErrorIs(t, err, reader.ErrTruncatedInput)
		assert.Equal(t, listing, out.String())
	})

	t.Run("parallel", func(t *testing.T) {
		var out bytes.Buffer
		err := New(Config{Mode: Parallel}, nil).Run(context.Background(), bytes.NewReader(input), &out)
		assert.ErrorIs(t, err, reader.ErrTruncatedInput)
		assert.Empty(t, out.String())
	})
}

func TestRunIOFailure(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	r := io.MultiReader(bytes.NewReader(program[:2]), iotest.ErrReader(boom))
	err := New(Config{}, nil).Run(context.Background(), r, &out)

	var ioErr *reader.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "ADD R1, R2, R3 ;\n", out.String())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, mode := range Modes {
		var out bytes.Buffer
		err := New(Config{Mode: mode}, nil).Run(ctx, bytes.NewReader(program), &out)
		assert.ErrorIs(t, err, context.Canceled, mode.String())
	}
}

func TestRunUnknownMode(t *testing.T) {
	err := New(Config{Mode: "backwards"}, nil).Run(context.Background(), bytes.NewReader(program), io.Discard)
	assert.Error(t, err)
}

func TestRunDump(t *testing.T) {
	var out, dump bytes.Buffer
	d := New(Config{DumpTo: &dump}, nil)
	require.NoError(t, d.Run(context.Background(), bytes.NewReader(program[:2]), &out))
	assert.Contains(t, dump.String(), "Mnemonic: (string) (len=3) \"ADD\"")
	assert.Contains(t, dump.String(), "ImmMode: (bool) false")
}

func TestRunLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	var out bytes.Buffer
	require.NoError(t, New(Config{}, log).Run(context.Background(), bytes.NewReader(program), &out))

	entries := hook.AllEntries()
	require.Len(t, entries, len(program)/2+1)
	assert.Equal(t, "Decoded word", entries[0].Message)
	assert.Equal(t, "0x1283", entries[0].Data["word"])
	assert.Equal(t, "0x0f05", entries[2].Data["word"])

	last := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, len(program)/2, last.Data["words"])
}

func TestModeSet(t *testing.T) {
	var m Mode
	require.NoError(t, m.Set("parallel"))
	assert.Equal(t, Parallel, m)
	assert.Error(t, m.Set("concurrent"))
	assert.True(t, strings.Contains(Modes.String(), "sequential"))
}
