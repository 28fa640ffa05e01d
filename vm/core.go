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

import "github.com/pkg/errors"

// step executes the instruction at PC. The caller must make sure that PC is
// within bounds and that the VM is not in a terminal state.
func (i *Instance) step() error {
	switch i.prog[i.PC] {
	case OpRight:
		i.ptr++
		if i.ptr == len(i.Mem) {
			i.Mem = append(i.Mem, 0)
		}
		i.PC++
	case OpLeft:
		if i.ptr == 0 {
			i.status = Halted
			i.debug("halt", "pc", i.PC, "instructions", i.insCount)
			return nil
		}
		i.ptr--
		i.PC++
	case OpInc:
		i.Mem[i.ptr]++
		i.PC++
	case OpDec:
		i.Mem[i.ptr]--
		i.PC++
	case OpOut:
		if err := i.out(); err != nil {
			return err
		}
		i.PC++
	case OpIn:
		if err := i.in(); err != nil {
			return err
		}
		i.PC++
	case OpOpen:
		if i.Mem[i.ptr] == 0 {
			i.PC = i.target()
		} else {
			i.PC++
		}
	case OpClose:
		if i.Mem[i.ptr] != 0 {
			i.PC = i.target()
		} else {
			i.PC++
		}
	default:
		i.PC++
	}
	i.insCount++
	return nil
}

// target returns the jump target of the bracket at PC. Since Match guarantees
// that all brackets are paired, a miss is a bug and panics.
func (i *Instance) target() int {
	t := i.jumps[i.PC]
	if t < 0 {
		panic(errors.Errorf("no jump target for %q", i.prog[i.PC]))
	}
	return t
}

func (i *Instance) fail(err error) error {
	i.status, i.err = Failed, err
	i.debug("failed", "pc", i.PC, "instructions", i.insCount, "error", err)
	return err
}

func (i *Instance) recovered(e interface{}) error {
	switch e := e.(type) {
	case error:
		return i.fail(errors.Wrapf(e, "Recovered error @pc=%d/%d, ptr %d/%d", i.PC, len(i.prog), i.ptr, len(i.Mem)))
	default:
		panic(e)
	}
}

// Run starts execution of the VM.
//
// Execution stops when the PC reaches the end of the program, in which case
// the status will be Done, or when a '<' is executed with the data pointer at
// 0, in which case the status will be Halted. In both cases, err will be nil.
//
// If an I/O error occurs, the status will be Failed and the PC will point to
// the instruction that triggered the error. If the input gets exhausted,
// errors.Cause(err) will be io.EOF.
//
// Calling Run on a VM that has already stopped returns immediately with the
// error, if any, that stopped it.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = i.recovered(e)
		}
	}()
	if i.status != Ready {
		return i.err
	}
	i.debug("run", "pc", i.PC, "size", len(i.prog))
	for i.PC < len(i.prog) {
		if err = i.step(); err != nil {
			return i.fail(err)
		}
		if i.status != Ready {
			return nil
		}
	}
	i.status = Done
	i.debug("done", "instructions", i.insCount, "tape", len(i.Mem))
	return nil
}

// Step executes a single instruction. It returns false when the VM has stopped
// (see Run for the possible reasons) and can no longer execute instructions.
func (i *Instance) Step() (more bool, err error) {
	defer func() {
		if e := recover(); e != nil {
			more, err = false, i.recovered(e)
		}
	}()
	if i.status != Ready {
		return false, i.err
	}
	if i.PC < len(i.prog) {
		if err = i.step(); err != nil {
			return false, i.fail(err)
		}
	}
	if i.status == Ready && i.PC >= len(i.prog) {
		i.status = Done
	}
	return i.status == Ready, nil
}
