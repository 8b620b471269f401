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

// parallelExecutor runs query and subscription root selections by submitting every dispatched Task
// to a concurrent.Executor Runner, letting as many fields resolve concurrently as the Runner allows.
// It is picked by PreparedOperation.Execute whenever ExecuteParams.Runner is non-nil and the
// operation isn't a mutation, which is the only case that requires root fields to run one at a time.
type parallelExecutor struct {
	runner  concurrent.Executor
	tracker *taskTracker

	done      chan struct{}
	closeDone sync.Once

	mu   sync.Mutex
	data *ResultNode
}

var _ executor = (*parallelExecutor)(nil)

func newParallelExecutor(runner concurrent.Executor) *parallelExecutor {
	e := &parallelExecutor{
		runner: runner,
		done:   make(chan struct{}),
	}
	e.tracker = newTaskTracker(e.signalDone)
	return e
}

// Run implements executor.
func (e *parallelExecutor) Run(ctx *ExecutionContext) <-chan ExecutionResult {
	data, err := collectAndDispatchRootTasks(ctx, e)

	e.mu.Lock()
	e.data = data
	e.mu.Unlock()
	if err != nil {
		e.tracker.emplace(err.Error())
	}

	// Catch the case where the root selection set dispatched nothing at all.
	e.tracker.checkIdle()

	result := make(chan ExecutionResult, 1)
	go func() {
		<-e.done
		e.mu.Lock()
		data := e.data
		e.mu.Unlock()
		result <- ExecutionResult{Data: data, Errors: e.tracker.errors()}
		close(result)
	}()
	return result
}

func (e *parallelExecutor) signalDone() {
	e.closeDone.Do(func() { close(e.done) })
}

// submit hands run to the Runner, retiring task's accounting if the Runner refuses to accept it
// (run will then never execute to retire it on its own).
func (e *parallelExecutor) submit(task Task, run func() (interface{}, error)) {
	if _, err := e.runner.Submit(concurrent.TaskFunc(run)); err != nil {
		e.tracker.emplace(err.Error())
		e.tracker.abandon(task)
	}
}

// DispatchRoot implements executor. Query and subscription root fields carry no serialization
// requirement, so this is the same as Dispatch.
func (e *parallelExecutor) DispatchRoot(task Task) {
	e.Dispatch(task)
}

// Dispatch implements executor.
func (e *parallelExecutor) Dispatch(task Task) {
	e.submit(task, e.tracker.dispatch(task))
}

// Yield implements executor.
func (e *parallelExecutor) Yield(task Task) {
	e.tracker.yield(task)
}

// Resume implements executor.
func (e *parallelExecutor) Resume(task Task) {
	e.submit(task, e.tracker.resume(task))
}

// AppendError implements executor.
func (e *parallelExecutor) AppendError(err *graphql.Error, result *ResultNode) {
	e.tracker.appendError(err)
}

// DataLoaderCycle implements executor.
func (e *parallelExecutor) DataLoaderCycle() DataLoaderCycle {
	return e.tracker.dataLoaderCycle()
}

// IncDataLoaderCycle implements executor.
func (e *parallelExecutor) IncDataLoaderCycle(newCycle DataLoaderCycle) bool {
	return e.tracker.incDataLoaderCycle(newCycle)
}
