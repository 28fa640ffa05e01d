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

package vm

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/db47h/bfvm/internal/ngi"
)

// Status describes the execution state of an Instance.
type Status int

// Execution states.
const (
	Ready  Status = iota // not started, or stopped between steps
	Done                 // the PC reached the end of the program
	Halted               // a '<' was executed with the data pointer at 0
	Failed               // an I/O error occurred
)

var statusNames = [...]string{"ready", "done", "halted", "failed"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// Instance represents a VM instance running a single program.
type Instance struct {
	PC       int    // Program Counter
	Mem      []byte // The tape. Never empty.
	prog     []byte
	jumps    Jumps
	ptr      int
	insCount int64
	status   Status
	err      error
	input    io.ByteReader
	output   io.ByteWriter
	flush    func() error
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// Input pushes the given Reader on top of the input stack. When this reader
// reaches EOF, the previously pushed reader will be used.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output sets the output Writer. If w implements
//
//	Flush() error
//
// it will be flushed every time a newline is written.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = newWriter(w)
		i.flush = nil
		if f, ok := w.(flusher); ok {
			i.flush = f.Flush
		}
		return nil
	}
}

// Logger sets the logger used for debug diagnostics. By default, the VM does
// not log anything.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		i.log = l
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance for the given program.
//
// The program's brackets are matched before anything else. If they are not
// balanced, New returns a nil Instance and a *SyntaxError.
//
// Options will be set by calling SetOptions.
func New(prog []byte, opts ...Option) (*Instance, error) {
	jumps, err := Match(prog)
	if err != nil {
		return nil, err
	}
	i := &Instance{
		Mem:   make([]byte, 1, 256),
		prog:  prog,
		jumps: jumps,
	}
	if err = i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Program returns the program being run.
func (i *Instance) Program() []byte {
	return i.prog
}

// Jumps returns the program's jump table.
func (i *Instance) Jumps() Jumps {
	return i.jumps
}

// Ptr returns the data pointer.
func (i *Instance) Ptr() int {
	return i.ptr
}

// Cell returns the value of the current cell.
func (i *Instance) Cell() byte {
	return i.Mem[i.ptr]
}

// Status returns the execution status.
func (i *Instance) Status() Status {
	return i.status
}

// InstructionCount returns the number of instructions executed so far,
// including no-ops.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the contents of the tape to the specified io.Writer as space
// separated decimal values. The current cell is enclosed in square brackets.
func (i *Instance) Dump(w io.Writer) error {
	ew := ngi.NewErrWriter(w)
	b := make([]byte, 0, 8)
	for p, c := range i.Mem {
		b = b[:0]
		if p > 0 {
			b = append(b, ' ')
		}
		if p == i.ptr {
			b = append(b, '[')
		}
		b = strconv.AppendUint(b, uint64(c), 10)
		if p == i.ptr {
			b = append(b, ']')
		}
		if _, err := ew.Write(b); err != nil {
			return err
		}
	}
	return ew.Err
}

func (i *Instance) debug(msg string, args ...any) {
	if i.log != nil {
		i.log.Debug(msg, args...)
	}
}
