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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/bfvm/internal/ngi"
	"github.com/db47h/bfvm/vm"
)

var mnemonics = map[byte]string{
	vm.OpRight: "right",
	vm.OpLeft:  "left",
	vm.OpInc:   "inc",
	vm.OpDec:   "dec",
	vm.OpOut:   "out",
	vm.OpIn:    "in",
	vm.OpOpen:  "jz",
	vm.OpClose: "jnz",
}

// Mnemonic returns the mnemonic for the instruction c, or the empty string if c
// is a no-op.
func Mnemonic(c byte) string {
	return mnemonics[c]
}

// Next returns the position of the first instruction at or after pc. It
// returns len(prog) if there are none.
func Next(prog []byte, pc int) int {
	for pc < len(prog) && !vm.IsOp(prog[pc]) {
		pc++
	}
	return pc
}

// Disassemble writes a disassembly of the instruction at position pc in prog
// to the specified io.Writer and returns the position of the next instruction
// and any write error. If prog[pc] is a no-op, the first instruction after it
// is disassembled. The jump table j is used to annotate brackets; it may be
// nil.
func Disassemble(prog []byte, j vm.Jumps, pc int, w io.Writer) (next int, err error) {
	ew := ngi.NewErrWriter(w)

	pc = Next(prog, pc)
	if pc >= len(prog) {
		return pc, nil
	}
	op := prog[pc]
	ew.WriteByte(op)
	ew.WriteByte('\t')
	io.WriteString(ew, Mnemonic(op))
	switch op {
	case vm.OpOpen, vm.OpClose:
		ew.WriteByte(' ')
		if t, ok := j.Target(pc); ok {
			io.WriteString(ew, strconv.Itoa(t))
		} else {
			io.WriteString(ew, "???")
		}
	}
	return Next(prog, pc+1), ew.Err
}

// DisassembleAll writes a disassembly of all instructions in prog to the
// specified io.Writer, one per line, prefixed with their position. It will
// return any write error.
func DisassembleAll(prog []byte, j vm.Jumps, w io.Writer) error {
	ew := ngi.NewErrWriter(w)
	for pc := Next(prog, 0); pc < len(prog); {
		fmt.Fprintf(ew, "% 10d\t", pc)
		pc, _ = Disassemble(prog, j, pc, ew)
		ew.WriteByte('\n')
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

// Compact returns a copy of prog stripped of all no-ops. The result has the
// same behavior as prog, but bracket positions change.
func Compact(prog []byte) []byte {
	out := make([]byte, 0, len(prog))
	for _, c := range prog {
		if vm.IsOp(c) {
			out = append(out, c)
		}
	}
	return out
}
