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

// Package concurrent provides the optional parallel Runner the executor dispatches root fields
// onto (see graphql/executor/parallel_executor.go and serial_executor.go): a real goroutine pool
// sitting alongside — never inside — the single-threaded strand scheduler, so the scheduler's own
// draining logic stays lock-free while still being able to farm work out to OS threads.
package concurrent

import (
	"errors"
	"time"
)

// Task is one unit of work an Executor can run.
type Task interface {
	// Run executes the task and returns whatever TaskHandle.AwaitResult should hand back.
	Run() (interface{}, error)
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func() (interface{}, error)

var _ Task = (TaskFunc)(nil)

// Run implements Task by calling f.
func (f TaskFunc) Run() (interface{}, error) {
	return f()
}

// Errors returned from TaskHandle.AwaitResult.
var (
	// ErrTaskCancelled means the task's TaskHandle.Cancel was called before it ran to completion.
	ErrTaskCancelled = errors.New("task was cancelled")
	// ErrkAwaitTaskResultTimeout means AwaitResult's timeout elapsed before the task settled.
	ErrkAwaitTaskResultTimeout = errors.New("timeout while waiting task result")
)

// TaskHandle is returned by Executor.Submit to track, cancel, or wait on one submitted Task.
type TaskHandle interface {
	// Cancel requests the task not run if possible. WorkerPoolExecutor's handle can only cancel a
	// task that is still queued; for a task that is running or has completed, Cancel changes
	// nothing and returns an error.
	Cancel() error

	// AwaitResult blocks the caller until the task settles or timeout elapses, returning one of:
	//
	//  1. (nil, ErrTaskCancelled) — the task was cancelled.
	//  2. (nil, ErrkAwaitTaskResultTimeout) — timeout elapsed first (WorkerPoolExecutor's handle
	//     ignores timeout and never returns this).
	//  3. (value, err) — whatever the task's Run returned.
	AwaitResult(timeout time.Duration) (interface{}, error)
}

// Executor accepts Task's for asynchronous execution, independent of however it schedules them
// internally (this package's WorkerPoolExecutor runs them on a bounded goroutine pool).
type Executor interface {
	// Shutdown stops accepting new tasks; tasks already submitted still run to completion. Calling
	// Shutdown more than once is a no-op. The returned channel receives a value once every
	// previously submitted task has finished.
	Shutdown() (terminated <-chan bool, err error)

	// Submit schedules task for execution, which may happen synchronously or at some later point.
	Submit(task Task) (TaskHandle, error)
}
