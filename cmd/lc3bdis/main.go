package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/artemijrodionov/lc3b/lc3b/disasm"
	"github.com/artemijrodionov/lc3b/lc3b/inst"
	"github.com/artemijrodionov/lc3b/lc3b/reader"
)

const (
	exitOK = iota
	exitIOFailure
	exitTruncated
	exitUsage
	exitUndefined
)

var errTerminalInput = errors.New("refusing to read object code from a terminal")

var (
	objPath = flag.String("objPath", "", "Unix path to an LC-3b object file, stdin when empty or -")
	workers = flag.Int("workers", 0, "goroutines used by the parallel mode, all CPUs when 0")
	dump    = flag.Bool("dump", false, "dump every decoded instruction to stderr")
	verbose = flag.Bool("v", false, "log every decoded word")
	order   = reader.LittleEndian
	mode    = disasm.Sequential
)

func init() {
	flag.Var(&order, "endian", "byte order of a word: "+reader.OrderNames())
	flag.Var(&mode, "mode", "how to decode: "+disasm.Modes.String())
}

func isObjFile(filename string) bool {
	return !strings.HasSuffix(filename, ".asm")
}

func isStdin(filename string) bool {
	return filename == "" || filename == "-"
}

var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type Cli struct {
	ObjPath string
	Config  disasm.Config
	Log     *logrus.Logger
}

func NewCli(objPath string, cfg disasm.Config, log *logrus.Logger) (*Cli, error) {
	if !isObjFile(objPath) {
		return nil, fmt.Errorf("%q looks like assembly source, not an object file", objPath)
	}
	return &Cli{ObjPath: objPath, Config: cfg, Log: log}, nil
}

func (c *Cli) open(stdin io.Reader) (io.ReadCloser, error) {
	if isStdin(c.ObjPath) {
		if stdinIsTerminal() {
			return nil, errTerminalInput
		}
		return io.NopCloser(stdin), nil
	}
	file, err := os.Open(c.ObjPath)
	if err != nil {
		return nil, &reader.IOError{Err: err}
	}
	return file, nil
}

func (c *Cli) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	in, err := c.open(stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	c.Log.WithField("objPath", c.ObjPath).Debug("Disassembling")
	return disasm.New(c.Config, c.Log).Run(ctx, in, stdout)
}

func exitCode(err error) int {
	var ioErr *reader.IOError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, reader.ErrTruncatedInput):
		return exitTruncated
	case errors.Is(err, inst.ErrUndefinedOpcode):
		return exitUndefined
	case errors.As(err, &ioErr):
		return exitIOFailure
	case errors.Is(err, errTerminalInput):
		return exitUsage
	default:
		return exitIOFailure
	}
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func main() {
	flag.Parse()
	log := newLogger(*verbose)

	cfg := disasm.Config{Order: order, Mode: mode, Workers: *workers}
	if *dump {
		cfg.DumpTo = os.Stderr
	}

	cli, err := NewCli(*objPath, cfg, log)
	if err != nil {
		flag.Usage()
		log.WithError(err).Error("Invalid arguments")
		os.Exit(exitUsage)
	}

	if err := cli.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Error("Disassembly failed")
		os.Exit(exitCode(err))
	}
}
