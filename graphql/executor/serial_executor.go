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

	"github.com/gqlcore/engine/concurrent"
	"github.com/gqlcore/engine/graphql"
)

// serialExecutor runs a mutation's root selections one at a time, in document order, the way the
// spec requires: a root field, and everything it transitively resolves (including any fields it
// dispatches on its result and any async values those wait on), fully settles before the next root
// field starts. Non-root work dispatched underneath the currently running root field is still
// submitted to the Runner like parallelExecutor does, so resolvers under one mutation field may
// still run concurrently with each other; only the root fields themselves are serialized.
//
// It is picked by PreparedOperation.Execute whenever ExecuteParams.Runner is non-nil and the
// operation is a mutation.
type serialExecutor struct {
	runner  concurrent.Executor
	tracker *taskTracker

	mu        sync.Mutex
	rootQueue []Task

	done      chan struct{}
	closeDone sync.Once

	dataMu sync.Mutex
	data   *ResultNode
}

var _ executor = (*serialExecutor)(nil)

func newSerialExecutor(runner concurrent.Executor) *serialExecutor {
	e := &serialExecutor{
		runner: runner,
		done:   make(chan struct{}),
	}
	e.tracker = newTaskTracker(e.pumpRootQueue)
	return e
}

// Run implements executor.
func (e *serialExecutor) Run(ctx *ExecutionContext) <-chan ExecutionResult {
	data, err := collectAndDispatchRootTasks(ctx, e)

	e.dataMu.Lock()
	e.data = data
	e.dataMu.Unlock()
	if err != nil {
		e.tracker.emplace(err.Error())
	}

	// collectAndDispatchRootTasks only ever enqueues root tasks via DispatchRoot; nothing has
	// actually been submitted to the Runner yet. Kick off the first one now.
	e.pumpRootQueue()

	result := make(chan ExecutionResult, 1)
	go func() {
		<-e.done
		e.dataMu.Lock()
		data := e.data
		e.dataMu.Unlock()
		result <- ExecutionResult{Data: data, Errors: e.tracker.errors()}
		close(result)
	}()
	return result
}

// pumpRootQueue starts the next queued root field's subtree, or, once the queue is drained, signals
// that the whole operation has finished. It is registered as the tracker's onIdle callback, so it
// runs every time the previously started root subtree (and everything it transitively dispatched)
// has fully settled.
func (e *serialExecutor) pumpRootQueue() {
	e.mu.Lock()
	if len(e.rootQueue) == 0 {
		e.mu.Unlock()
		e.closeDone.Do(func() { close(e.done) })
		return
	}
	task := e.rootQueue[0]
	e.rootQueue = e.rootQueue[1:]
	e.mu.Unlock()

	e.submit(task, e.tracker.dispatch(task))
}

// submit hands run to the Runner, retiring task's accounting if the Runner refuses to accept it.
func (e *serialExecutor) submit(task Task, run func() (interface{}, error)) {
	if _, err := e.runner.Submit(concurrent.TaskFunc(run)); err != nil {
		e.tracker.emplace(err.Error())
		e.tracker.abandon(task)
	}
}

// DispatchRoot implements executor. Unlike Dispatch, this only enqueues task; it starts running
// only once every root field ahead of it in the document, and everything that field transitively
// resolved, has fully settled.
func (e *serialExecutor) DispatchRoot(task Task) {
	e.mu.Lock()
	e.rootQueue = append(e.rootQueue, task)
	e.mu.Unlock()
}

// Dispatch implements executor.
func (e *serialExecutor) Dispatch(task Task) {
	e.submit(task, e.tracker.dispatch(task))
}

// Yield implements executor.
func (e *serialExecutor) Yield(task Task) {
	e.tracker.yield(task)
}

// Resume implements executor.
func (e *serialExecutor) Resume(task Task) {
	e.submit(task, e.tracker.resume(task))
}

// AppendError implements executor.
func (e *serialExecutor) AppendError(err *graphql.Error, result *ResultNode) {
	e.tracker.appendError(err)
}

// DataLoaderCycle implements executor.
func (e *serialExecutor) DataLoaderCycle() DataLoaderCycle {
	return e.tracker.dataLoaderCycle()
}

// IncDataLoaderCycle implements executor.
func (e *serialExecutor) IncDataLoaderCycle(newCycle DataLoaderCycle) bool {
	return e.tracker.incDataLoaderCycle(newCycle)
}
