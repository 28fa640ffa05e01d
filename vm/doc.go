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

// Package vm implements a virtual machine for the eight instruction, tape based
// language commonly known as brainfuck.
//
// Execution happens in two phases. First, Match scans the program once and
// builds a jump table pairing every '[' with its ']'. Unbalanced brackets are
// reported as a *SyntaxError and nothing gets executed. Then Run walks the
// program with a program counter, mutating the tape and doing I/O:
//
//	>	move the data pointer right, growing the tape with a zero cell if needed
//	<	move the data pointer left. At position 0, the VM halts silently
//	+ -	increment / decrement the current cell, modulo 256
//	.	write the current cell to the output. A newline flushes the output
//	,	read one byte from the input. A newline is stored as 0
//	[	jump past the matching ] if the current cell is 0
//	]	jump back to the matching [ if the current cell is not 0
//
// Any other byte is a no-op.
//
// The tape starts with a single zero cell and only grows to the right. Moving
// left of cell 0 is not an error: the VM stops with a Halted status and Run
// returns nil, exactly as if the end of the program had been reached.
//
// For performance reasons, the PC is not incremented in a single place, rather
// each instruction deals with the PC as needed.
package vm
