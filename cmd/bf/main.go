// This file is part of bfvm - https://github.com/db47h/bfvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/db47h/bfvm/asm"
	"github.com/db47h/bfvm/vm"
	"github.com/pkg/errors"
	slogmulti "github.com/samber/slog-multi"
	"gitlab.com/efronlicht/enve"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

type config struct {
	noRawIO   bool
	debug     bool
	dump      bool
	list      bool
	compact   bool
	quiet     bool
	logFile   string
	withFiles fileList
}

func envBool(key string, backup bool) bool {
	v, err := enve.Lookup(strconv.ParseBool, key)
	if err != nil {
		return backup
	}
	return v
}

func envString(key, backup string) string {
	v, err := enve.Lookup(func(s string) (string, error) { return s, nil }, key)
	if err != nil || v == "" {
		return backup
	}
	return v
}

func (c *config) flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.debug, "debug", envBool("BFVM_DEBUG", false), "enable debug diagnostics")
	fs.BoolVar(&c.dump, "dump", false, "dump the tape to stderr upon exit")
	fs.BoolVar(&c.list, "list", false, "print a listing of the program and exit")
	fs.BoolVar(&c.compact, "compact", false, "print the program stripped of comments and exit")
	fs.BoolVar(&c.noRawIO, "noraw", envBool("BFVM_NORAW", false), "disable raw terminal IO")
	fs.BoolVar(&c.quiet, "quiet", envBool("BFVM_QUIET", false), "do not print the status line upon successful completion")
	fs.StringVar(&c.logFile, "log", envString("BFVM_LOG", ""), "write a JSON debug log to `filename`")
	fs.Var(&c.withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
}

// exitCode reports err, if any, to stderr and returns the process exit status.
func (c *config) exitCode(i *vm.Instance, err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if i != nil {
		// the program may have left the cursor anywhere
		fmt.Fprintln(stderr)
	}
	if !c.debug {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "%+v\n", err)
	if i != nil {
		fmt.Fprintf(stderr, "PC: %v, Ptr: %v, Cell: %v, Tape size: %v, Status: %v\n",
			i.PC, i.Ptr(), i.Cell(), len(i.Mem), i.Status())
	}
	return 1
}

// setupIO switches stdin to raw mode if it is the process' terminal. The
// returned tearDown function is never nil and may be called more than once.
func (c *config) setupIO(stdin io.Reader) (raw bool, tearDown func()) {
	f, ok := stdin.(*os.File)
	if c.noRawIO || !ok {
		return false, func() {}
	}
	restore, err := setRawIO(f.Fd())
	if err != nil {
		return false, func() {}
	}
	return true, once(restore)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run runs the command with the given arguments and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var cfg config
	fs := flag.NewFlagSet("bf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.flags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] program\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	// check exit condition
	var err error
	var i *vm.Instance

	out := bufio.NewWriter(stdout)

	// flush output, catch and log errors
	defer func() {
		if e := out.Flush(); err == nil {
			err = errors.Wrap(e, "flush failed")
		}
		code = cfg.exitCode(i, err, stderr)
	}()

	logger, closeLog, err := newLogger(cfg.debug, cfg.logFile, stderr)
	if err != nil {
		return
	}
	defer closeLog()

	fileName := fs.Arg(0)
	prog, err := os.ReadFile(fileName)
	if err != nil {
		err = errors.Wrap(err, "read failed")
		return
	}

	i, err = vm.New(prog,
		vm.Output(out),
		vm.Logger(logger.With("program", fileName)))
	if err != nil {
		return
	}

	switch {
	case cfg.compact:
		out.Write(asm.Compact(prog))
		err = out.WriteByte('\n')
		return
	case cfg.list:
		err = asm.DisassembleAll(prog, i.Jumps(), out)
		return
	}

	// try to switch the input terminal to raw mode. It must be restored
	// should we get killed by CTRL-C.
	rawtty, ioTearDownFn := cfg.setupIO(stdin)
	defer ioTearDownFn()
	if rawtty {
		stopTrap := trapSignals(ioTearDownFn)
		defer stopTrap()
		// read stdin unbuffered so that every key press reaches the program
		// as soon as it is typed.
		i.PushInput(&eotReader{r: stdin})
	} else {
		i.PushInput(bufio.NewReader(stdin))
	}

	// push -with files on top of the input stack in reverse order so that
	// they load in order of appearance on the command line.
	for n := len(cfg.withFiles) - 1; n >= 0; n-- {
		var f *os.File
		f, err = os.Open(cfg.withFiles[n])
		if err != nil {
			return
		}
		i.PushInput(bufio.NewReader(f))
	}

	err = i.Run()
	logger.Debug("exit", "status", i.Status(), "instructions", i.InstructionCount(), "tape", len(i.Mem))
	if err == nil && !cfg.quiet {
		_, err = out.WriteString("\nend\n")
	}
	if cfg.dump {
		out.Flush()
		i.Dump(stderr)
		fmt.Fprintln(stderr)
	}
	return
}

// eotReader turns an EOT character (CTRL-D) into io.EOF. In raw mode, the
// terminal driver no longer does this for us. Once EOT has been seen, all
// subsequent reads return io.EOF.
type eotReader struct {
	r   io.Reader
	eot bool
}

func (r *eotReader) Read(p []byte) (int, error) {
	if r.eot {
		return 0, io.EOF
	}
	n, err := r.r.Read(p)
	for k := 0; k < n; k++ {
		if p[k] == 4 {
			r.eot = true
			if k == 0 {
				return 0, io.EOF
			}
			return k, nil
		}
	}
	return n, err
}

// newLogger returns a logger writing text to stderr, at debug level if debug
// is true, and JSON to logFile if not empty. The returned function closes the
// log file.
func newLogger(debug bool, logFile string, stderr io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = f.Close
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
