// Package disasm streams LC-3b object code through the instruction decoder
// and writes one line of assembly per word.
package disasm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/artemijrodionov/lc3b/lc3b/inst"
	"github.com/artemijrodionov/lc3b/lc3b/reader"
)

const defaultChunkSize = 4096

type Config struct {
	Order   reader.Order
	Mode    Mode
	Workers int
	// ChunkSize is the number of words one worker decodes at a time.
	ChunkSize int
	// DumpTo receives a spew dump of every decoded instruction when set.
	DumpTo io.Writer
}

type Disassembler struct {
	cfg  Config
	log  *logrus.Logger
	dump *spew.ConfigState
}

func New(cfg Config, log *logrus.Logger) *Disassembler {
	if cfg.Order == "" {
		cfg.Order = reader.LittleEndian
	}
	if cfg.Mode == "" {
		cfg.Mode = Sequential
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Disassembler{
		cfg: cfg,
		log: log,
		dump: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableMethods:          true,
		},
	}
}

// Run decodes every word of r into w. It returns nil once r is exhausted.
// A decode or read error stops the run; in sequential mode the lines of the
// words before the failure have already been written.
func (d *Disassembler) Run(ctx context.Context, r io.Reader, w io.Writer) (err error) {
	out := bufio.NewWriter(w)
	defer func() {
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
	}()

	var count int
	switch d.cfg.Mode {
	case Sequential:
		count, err = d.sequential(ctx, r, out)
	case Parallel:
		count, err = d.parallel(ctx, r, out)
	default:
		return fmt.Errorf("can't run mode %q", d.cfg.Mode)
	}
	if err != nil {
		return err
	}

	d.log.WithFields(logrus.Fields{
		"words": count,
		"mode":  d.cfg.Mode,
		"order": d.cfg.Order,
	}).Info("Disassembly finished")
	return nil
}

func (d *Disassembler) sequential(ctx context.Context, r io.Reader, out *bufio.Writer) (int, error) {
	words := reader.New(r, d.cfg.Order)
	n := 0
	for words.Next() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		i, err := d.parse(n, words.Word())
		if err != nil {
			return n, err
		}
		if err := d.emit(out, i); err != nil {
			return n, err
		}
		n++
	}
	return n, words.Err()
}

func (d *Disassembler) parallel(ctx context.Context, r io.Reader, out *bufio.Writer) (int, error) {
	words, err := reader.ReadAll(r, d.cfg.Order)
	if err != nil {
		return 0, err
	}

	chunks := (len(words) + d.cfg.ChunkSize - 1) / d.cfg.ChunkSize
	d.log.WithFields(logrus.Fields{
		"words":   len(words),
		"chunks":  chunks,
		"workers": d.cfg.Workers,
	}).Debug("Scheduling decode")

	result := make([][]inst.Instruction, chunks)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for c := 0; c < chunks; c++ {
		c := c
		start := c * d.cfg.ChunkSize
		end := min(start+d.cfg.ChunkSize, len(words))
		g.Go(func() error {
			decoded := make([]inst.Instruction, 0, end-start)
			for n := start; n < end; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				i, err := d.parse(n, words[n])
				if err != nil {
					return err
				}
				decoded = append(decoded, i)
			}
			result[c] = decoded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for _, decoded := range result {
		for _, i := range decoded {
			if err := d.emit(out, i); err != nil {
				return 0, err
			}
		}
	}
	return len(words), nil
}

func (d *Disassembler) parse(n int, w inst.Word) (inst.Instruction, error) {
	fields := logrus.Fields{
		"index": n,
		"word":  fmt.Sprintf("0x%04x", uint16(w)),
	}
	i, err := inst.Parse(w)
	if err != nil {
		d.log.WithFields(fields).WithError(err).Error("Can't decode word")
		return i, err
	}
	d.log.WithFields(fields).WithField("opcode", i.Op).Debug("Decoded word")
	return i, nil
}

func (d *Disassembler) emit(out *bufio.Writer, i inst.Instruction) error {
	if d.cfg.DumpTo != nil {
		d.dump.Fdump(d.cfg.DumpTo, i)
	}
	_, err := out.WriteString(i.Line())
	return err
}
