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
	"github.com/gqlcore/engine/graphql"
)

// blockingExecutor runs an operation on the calling goroutine using a single FIFO run queue. It is
// selected by PreparedOperation.Execute when ExecuteParams.Runner is left nil: the caller blocks
// until the whole execution, including any Futures it has to wait on, completes. Root fields are
// not serialized relative to each other (there's only one goroutine driving the queue so ordering
// between them doesn't affect correctness, only which appears to finish "first").
type blockingExecutor struct {
	queue []Task
	errs  graphql.Errors
	cycle DataLoaderCycle
}

var _ executor = (*blockingExecutor)(nil)

func newBlockingExecutor() *blockingExecutor {
	return &blockingExecutor{}
}

// Run implements executor.
func (e *blockingExecutor) Run(ctx *ExecutionContext) <-chan ExecutionResult {
	data, err := collectAndDispatchRootTasks(ctx, e)
	if err != nil {
		e.errs.Emplace(err.Error())
	}

	for len(e.queue) > 0 {
		task := e.queue[0]
		e.queue = e.queue[1:]
		task.run()
	}

	result := make(chan ExecutionResult, 1)
	result <- ExecutionResult{Data: data, Errors: e.errs}
	close(result)
	return result
}

// DispatchRoot implements executor. blockingExecutor has only one run queue; root fields get no
// special treatment since only one goroutine ever runs tasks.
func (e *blockingExecutor) DispatchRoot(task Task) {
	e.queue = append(e.queue, task)
}

// Dispatch implements executor.
func (e *blockingExecutor) Dispatch(task Task) {
	e.queue = append(e.queue, task)
}

// Yield implements executor. There's nothing to track: task re-enters the queue via Resume once
// its waker fires.
func (e *blockingExecutor) Yield(task Task) {}

// Resume implements executor.
func (e *blockingExecutor) Resume(task Task) {
	e.queue = append(e.queue, task)
}

// AppendError implements executor.
func (e *blockingExecutor) AppendError(err *graphql.Error, result *ResultNode) {
	e.errs.Append(err)
}

// DataLoaderCycle implements executor.
func (e *blockingExecutor) DataLoaderCycle() DataLoaderCycle {
	return e.cycle
}

// IncDataLoaderCycle implements executor.
func (e *blockingExecutor) IncDataLoaderCycle(newCycle DataLoaderCycle) bool {
	if newCycle <= e.cycle {
		return false
	}
	e.cycle = newCycle
	return true
}
