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

package vm_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/db47h/bfvm/vm"
	"github.com/pkg/errors"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func setup(t testing.TB, code, input string, out io.Writer) *vm.Instance {
	i, err := vm.New([]byte(code), vm.Input(strings.NewReader(input)), vm.Output(out))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func check(t *testing.T, testName string, i *vm.Instance, pc int, status vm.Status, mem []byte, ptr int) {
	err := i.Run()
	if err != nil {
		t.Errorf("%s: %+v", testName, err)
		return
	}
	if pc < 0 {
		pc = len(i.Program())
	}
	if pc != i.PC {
		t.Errorf("%v", fmt.Errorf("%s: Bad PC %d != %d", testName, i.PC, pc))
	}
	if status != i.Status() {
		t.Errorf("%v", fmt.Errorf("%s: Bad status %v != %v", testName, i.Status(), status))
	}
	if !bytes.Equal(mem, i.Mem) {
		t.Errorf("%v", fmt.Errorf("%s: Tape error: expected %d, got %d", testName, mem, i.Mem))
	}
	if ptr != i.Ptr() {
		t.Errorf("%v", fmt.Errorf("%s: Bad data pointer %d != %d", testName, i.Ptr(), ptr))
	}
}

var tests = [...]struct {
	name   string
	code   string
	input  string
	output string
	mem    []byte
	ptr    int
	pc     int
	status vm.Status
}{
	{"empty", "", "", "", []byte{0}, 0, -1, vm.Done},
	{"nop", "hello, world?", "x", "", []byte{'x'}, 0, -1, vm.Done},
	{"+", "+++", "", "", []byte{3}, 0, -1, vm.Done},
	{"-", "+++-", "", "", []byte{2}, 0, -1, vm.Done},
	{"+wrap", strings.Repeat("+", 256), "", "", []byte{0}, 0, -1, vm.Done},
	{"-wrap", "-", "", "", []byte{255}, 0, -1, vm.Done},
	{">", ">>", "", "", []byte{0, 0, 0}, 2, -1, vm.Done},
	{"><", "+>++<", "", "", []byte{1, 2}, 0, -1, vm.Done},
	{"<halt", "+>-<<+++.", "", "", []byte{1, 255}, 0, 4, vm.Halted},
	{"<halt@0", "<+", "", "", []byte{0}, 0, 0, vm.Halted},
	{".", "++[>++++<-]>.", "", "\x08", []byte{0, 8}, 1, -1, vm.Done},
	{",", ",.", "A", "A", []byte{'A'}, 0, -1, vm.Done},
	{",newline", ",.", "\n", "\x00", []byte{0}, 0, -1, vm.Done},
	{",loop", ",[.,]", "ab\ncd", "ab", []byte{0}, 0, -1, vm.Done},
	{"[]", "[]+", "", "", []byte{1}, 0, -1, vm.Done},
	{"[skip", ">+<[>-<]", "", "", []byte{0, 1}, 0, -1, vm.Done},
	{"[clear", "+++++[-]", "", "", []byte{0}, 0, -1, vm.Done},
	{"helloWorld", helloWorld, "", "Hello World!\n", []byte{0, 0, 72, 100, 87, 33, 10}, 6, -1, vm.Done},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		var b bytes.Buffer
		i := setup(t, test.code, test.input, &b)
		check(t, test.name, i, test.pc, test.status, test.mem, test.ptr)
		if s := b.String(); s != test.output {
			t.Errorf("%s: Output error: expected %q, got %q", test.name, test.output, s)
		}
	}
}

func TestInstance_InstructionCount(t *testing.T) {
	i := setup(t, helloWorld, "", nil)
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	if c := i.InstructionCount(); c != 969 {
		t.Fatalf("Expected 969 instructions, got %d", c)
	}
	i = setup(t, "+>-<<+++", "", nil)
	i.Run()
	if c := i.InstructionCount(); c != 4 {
		t.Fatalf("Expected 4 instructions, got %d", c)
	}
}

func TestInstance_Step(t *testing.T) {
	i := setup(t, "+>", "", nil)
	for n, exp := range []bool{true, false, false} {
		more, err := i.Step()
		if err != nil {
			t.Fatal(err)
		}
		if more != exp {
			t.Fatalf("step %d: expected %v, got %v", n, exp, more)
		}
	}
	if i.Status() != vm.Done || i.PC != 2 || !bytes.Equal(i.Mem, []byte{1, 0}) {
		t.Fatalf("Bad state after steps: status %v, PC %d, tape %v", i.Status(), i.PC, i.Mem)
	}

	i = setup(t, "<+", "", nil)
	if more, err := i.Step(); more || err != nil {
		t.Fatalf("Expected halt, got %v, %v", more, err)
	}
	if i.Status() != vm.Halted {
		t.Fatalf("Expected halted status, got %v", i.Status())
	}
}

func TestNew_syntaxError(t *testing.T) {
	var b bytes.Buffer
	i, err := vm.New([]byte("+.]"), vm.Output(&b))
	if i != nil {
		t.Fatal("Expected nil instance")
	}
	if se, ok := err.(*vm.SyntaxError); !ok || se.Kind != vm.UnmatchedClose || se.Pos != 2 {
		t.Fatalf("Unexpected error %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Unexpected output %q", b.String())
	}
}

func TestRun_inputExhausted(t *testing.T) {
	var b bytes.Buffer
	i := setup(t, ",.,.,.", "A", &b)
	err := i.Run()
	if errors.Cause(err) != io.EOF {
		t.Fatalf("Expected EOF, got %v", err)
	}
	if i.Status() != vm.Failed {
		t.Fatalf("Expected failed status, got %v", i.Status())
	}
	if i.PC != 2 {
		t.Fatalf("Expected PC 2, got %d", i.PC)
	}
	if b.String() != "A" {
		t.Fatalf("Expected output \"A\", got %q", b.String())
	}
	// Run again returns the same error, nothing executed.
	if err2 := i.Run(); err2 != err {
		t.Fatalf("Expected %v, got %v", err, err2)
	}

	// no input at all
	i, _ = vm.New([]byte(","))
	if err = i.Run(); errors.Cause(err) != io.EOF {
		t.Fatalf("Expected EOF, got %v", err)
	}
}

type failWriter struct {
	n   int
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, w.err
	}
	w.n--
	return len(p), nil
}

func TestRun_outputError(t *testing.T) {
	werr := errors.New("disk full")
	i := setup(t, "+.+.+.", "", &failWriter{1, werr})
	err := i.Run()
	if errors.Cause(err) != werr {
		t.Fatalf("Expected %v, got %v", werr, err)
	}
	if i.PC != 3 || i.Mem[0] != 2 {
		t.Fatalf("Bad state: PC %d, cell %d", i.PC, i.Mem[0])
	}
}

type flushRecorder struct {
	bytes.Buffer
	flushed []string
	err     error
}

func (w *flushRecorder) Flush() error {
	w.flushed = append(w.flushed, w.String())
	return w.err
}

func TestRun_flush(t *testing.T) {
	w := &flushRecorder{}
	i := setup(t, "++++++++++.>+.<.", "", w)
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	exp := []string{"\n", "\n\x01\n"}
	if len(w.flushed) != len(exp) {
		t.Fatalf("Expected %d flushes, got %d", len(exp), len(w.flushed))
	}
	for n := range exp {
		if w.flushed[n] != exp[n] {
			t.Errorf("flush %d: expected %q, got %q", n, exp[n], w.flushed[n])
		}
	}

	w = &flushRecorder{err: errors.New("broken pipe")}
	i = setup(t, "++++++++++..", "", w)
	if err := i.Run(); errors.Cause(err) != w.err {
		t.Fatalf("Expected %v, got %v", w.err, err)
	}
	if w.String() != "\n" {
		t.Fatalf("Expected a single newline, got %q", w.String())
	}
}

func TestInstance_Dump(t *testing.T) {
	i := setup(t, "++[>++++<-]>>->", "", nil)
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	if exp := "0 8 255 [0]"; b.String() != exp {
		t.Fatalf("Expected %q, got %q", exp, b.String())
	}
}

func BenchmarkRun(b *testing.B) {
	for c := 0; c < b.N; c++ {
		b.StopTimer()
		i := setup(b, helloWorld, "", io.Discard)
		b.StartTimer()
		i.Run()
	}
}
