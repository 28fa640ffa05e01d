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

// The bf command line tool runs programs for the vm package.
//
// Usage:
//
//	bf [flags] program
//
// Flags:
//
//	-compact
//		  print the program stripped of comments and exit
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump the tape to stderr upon exit
//	-list
//		  print a listing of the program and exit
//	-log filename
//		  write a JSON debug log to filename
//	-noraw
//		  disable raw terminal IO
//	-quiet
//		  do not print the status line upon successful completion
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// -debug: log VM events to stderr and print a full stacktrace along with the
// VM state should the program fail.
//
// -noraw: upon startup, bf switches the terminal to non-canonical mode so
// that the program can read key presses one at a time. In this mode, CTRL-D
// ends the input. This flag disables this behavior. It has no effect if stdin
// has been redirected.
//
// -with: the specified file is fed to the program as input before stdin. If
// specified multiple times, files will be fed to the program in order of
// appearance on the command line.
//
// The program ends normally when it runs past its last instruction, or when
// it moves the data pointer left of the first cell. In both cases, bf prints
// a status line "end" unless -quiet is given. Unbalanced brackets and I/O
// errors, including running out of input, are reported on stderr and bf exits
// with status 1.
//
// The defaults for -debug, -noraw, -quiet and -log can be set with the
// environment variables BFVM_DEBUG, BFVM_NORAW, BFVM_QUIET and BFVM_LOG.
package main
