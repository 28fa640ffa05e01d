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

import "strconv"

// Instruction bytes.
const (
	OpRight  = '>'
	OpLeft   = '<'
	OpInc    = '+'
	OpDec    = '-'
	OpOut    = '.'
	OpIn     = ','
	OpOpen   = '['
	OpClose  = ']'
	noTarget = -1
)

// IsOp returns true if c is one of the eight instructions. Everything else is
// a no-op.
func IsOp(c byte) bool {
	switch c {
	case OpRight, OpLeft, OpInc, OpDec, OpOut, OpIn, OpOpen, OpClose:
		return true
	}
	return false
}

// Jumps is the jump table of a program. It is indexed by program position:
// for a bracket at position pc, Jumps[pc] is the position of its partner. All
// other positions hold -1.
type Jumps []int

// Target returns the position of the partner of the bracket at pc. ok is false
// if pc is out of range or does not hold a bracket.
func (j Jumps) Target(pc int) (target int, ok bool) {
	if pc < 0 || pc >= len(j) || j[pc] == noTarget {
		return noTarget, false
	}
	return j[pc], true
}

// ErrKind identifies the kind of a SyntaxError.
type ErrKind int

// Syntax error kinds.
const (
	UnmatchedClose ErrKind = iota // a ']' without a matching '['
	UnmatchedOpen                 // a '[' still open at the end of the program
)

// SyntaxError is returned by Match for unbalanced brackets.
type SyntaxError struct {
	Kind ErrKind
	Pos  int // position of the offending bracket
}

func (e *SyntaxError) Error() string {
	switch e.Kind {
	case UnmatchedClose:
		return "syntax error: no '[' corresponding to ']' at " + strconv.Itoa(e.Pos)
	default:
		return "syntax error: no ']' corresponding to '[' at " + strconv.Itoa(e.Pos)
	}
}

// Match scans prog and returns its jump table. If brackets are not balanced,
// it returns a *SyntaxError. For a ']' with no '[' to its left, the error
// points at the ']'. For '[' left open at the end of the program, it points at
// the innermost one.
func Match(prog []byte) (Jumps, error) {
	var stack []int
	j := make(Jumps, len(prog))
	for pc, c := range prog {
		switch c {
		case OpOpen:
			stack = append(stack, pc)
		case OpClose:
			if len(stack) == 0 {
				return nil, &SyntaxError{UnmatchedClose, pc}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			j[open], j[pc] = pc, open
		default:
			j[pc] = noTarget
		}
	}
	if len(stack) > 0 {
		return nil, &SyntaxError{UnmatchedOpen, stack[len(stack)-1]}
	}
	return j, nil
}
