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
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// once returns a function that calls f the first time it is called.
func once(f func()) func() {
	var o sync.Once
	return func() { o.Do(f) }
}

// onSignal waits for a signal on c. If one arrives, it calls tearDown then
// exits with status 128+signal number. It returns without doing anything if c
// gets closed.
func onSignal(c <-chan os.Signal, tearDown func(), exit func(int)) {
	sig, ok := <-c
	if !ok {
		return
	}
	tearDown()
	code := 130
	if s, ok := sig.(syscall.Signal); ok {
		code = 128 + int(s)
	}
	exit(code)
}

// trapSignals makes sure that tearDown runs if the process gets interrupted or
// terminated. The returned function stops trapping signals.
func trapSignals(tearDown func()) (stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go onSignal(c, tearDown, os.Exit)
	return func() {
		signal.Stop(c)
		close(c)
	}
}
