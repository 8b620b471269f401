/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package executor

import (
	"sync"

	"github.com/gqlcore/engine/graphql"
)

// taskTracker accounts for every Task a Runner-backed executor (serialExecutor, parallelExecutor)
// has in flight, and accumulates the errors and DataLoader cycle state those executors must guard
// with a mutex since, unlike blockingExecutor, more than one Task may run concurrently.
//
// A Task counts as outstanding from the moment it is dispatched until it either runs to completion
// without yielding, or is yielded and later resumed to completion. onIdle fires every time the
// tracker transitions to holding no outstanding Task: parallelExecutor treats the first such call
// as the end of the operation, while serialExecutor uses each one to start its next root field.
type taskTracker struct {
	onIdle func()

	mu      sync.Mutex
	pending int
	parked  map[Task]bool
	errs    graphql.Errors
	cycle   DataLoaderCycle
}

func newTaskTracker(onIdle func()) *taskTracker {
	return &taskTracker{onIdle: onIdle, parked: map[Task]bool{}}
}

// dispatch accounts for a freshly scheduled task (one reaching the tracker via DispatchRoot or
// Dispatch, as opposed to a resumed one) and returns the func to hand to the Runner.
func (t *taskTracker) dispatch(task Task) func() (interface{}, error) {
	t.mu.Lock()
	t.pending++
	t.mu.Unlock()
	return t.runAndSettle(task)
}

// resume accounts for a previously yielded task becoming runnable again and returns the func to
// hand to the Runner.
func (t *taskTracker) resume(task Task) func() (interface{}, error) {
	t.mu.Lock()
	delete(t.parked, task)
	t.pending++
	t.mu.Unlock()
	return t.runAndSettle(task)
}

// runAndSettle runs task and retires its pending count, unless task parked itself via yield during
// the call, in which case the task remains outstanding until a later resume.
func (t *taskTracker) runAndSettle(task Task) func() (interface{}, error) {
	return func() (interface{}, error) {
		task.run()

		t.mu.Lock()
		if !t.parked[task] {
			t.pending--
		}
		idle := t.pending == 0 && len(t.parked) == 0
		t.mu.Unlock()

		if idle {
			t.onIdle()
		}
		return nil, nil
	}
}

// abandon retires a task that was counted by dispatch or resume but that the Runner refused to
// accept, so it will never reach runAndSettle to retire itself.
func (t *taskTracker) abandon(task Task) {
	t.mu.Lock()
	delete(t.parked, task)
	t.pending--
	idle := t.pending == 0 && len(t.parked) == 0
	t.mu.Unlock()

	if idle {
		t.onIdle()
	}
}

// yield parks task: it is no longer counted against pending, but remains outstanding until a
// matching resume call runs it again.
func (t *taskTracker) yield(task Task) {
	t.mu.Lock()
	t.parked[task] = true
	t.pending--
	t.mu.Unlock()
}

// checkIdle fires onIdle if the tracker has never had any outstanding task, e.g. because an
// operation's root selection set dispatched nothing.
func (t *taskTracker) checkIdle() {
	t.mu.Lock()
	idle := t.pending == 0 && len(t.parked) == 0
	t.mu.Unlock()

	if idle {
		t.onIdle()
	}
}

// appendError records err, safe for concurrent callers.
func (t *taskTracker) appendError(err *graphql.Error) {
	t.mu.Lock()
	t.errs.Append(err)
	t.mu.Unlock()
}

// emplace builds an Error from message and records it, safe for concurrent callers.
func (t *taskTracker) emplace(message string) {
	t.mu.Lock()
	t.errs.Emplace(message)
	t.mu.Unlock()
}

// errors returns the errors accumulated so far.
func (t *taskTracker) errors() graphql.Errors {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errs
}

// dataLoaderCycle returns the current cycle, safe for concurrent callers.
func (t *taskTracker) dataLoaderCycle() DataLoaderCycle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cycle
}

// incDataLoaderCycle attempts to advance the cycle to newCycle, returning whether this call won
// the race to do so.
func (t *taskTracker) incDataLoaderCycle(newCycle DataLoaderCycle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if newCycle <= t.cycle {
		return false
	}
	t.cycle = newCycle
	return true
}
