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

// Package asm provides a disassembler for vm programs.
//
// A program listing shows one instruction per line: its position in the
// program, the instruction byte and its mnemonic. Brackets are followed by
// the position of their partner:
//
//	0	+	inc
//	1	[	jz 4
//	2	-	dec
//	3	.	out
//	4	]	jnz 1
//
// No-ops (comments) are skipped.
package asm
