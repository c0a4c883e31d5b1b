// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long-lived worker goroutines with an
// orderly shutdown
//
// used by the proving pool and the batch pool expiry
package background

// T - handle to a started set of processes
type T struct {
	finished chan struct{}
	shutdown chan struct{}
	count    int
}

// Process - one background process
//
// Run must return promptly once the shutdown channel closes
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start together
type Processes []Process

// Start - run a set of background processes
func Start(processes Processes, args interface{}) *T {
	register := &T{
		finished: make(chan struct{}, len(processes)),
		shutdown: make(chan struct{}),
		count:    len(processes),
	}

	for _, p := range processes {
		go func(p Process) {
			p.Run(args, register.shutdown)
			register.finished <- struct{}{}
		}(p)
	}
	return register
}

// Stop - signal all processes and wait for them to finish
func (t *T) Stop() {
	if nil == t {
		return
	}

	close(t.shutdown)

	for i := 0; i < t.count; i += 1 {
		<-t.finished
	}
}
