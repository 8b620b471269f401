/**
 * Copyright (c) 2018, The Artemis Authors.
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

// DataLoaderCycle identifies a generation of DataLoader batch dispatch performed during an
// execution. AsyncValueTask records the cycle that was current when it first found its Future
// pending; tryDispatchDataLoaders only performs an actual dispatch if no one has advanced the
// cycle since, so many tasks waking up because of the same pending batch only trigger one
// Dispatch call on the underlying loaders.
type DataLoaderCycle uint32

// Task is scheduled and later run by an executor. ExecuteNodeTask (a field awaiting its resolver)
// and AsyncValueTask (a field awaiting a future.Future) are the two implementations.
type Task interface {
	run()
}

// executor drives a PreparedOperation.Execute request to completion by scheduling Tasks. The three
// implementations (blockingExecutor, serialExecutor, parallelExecutor) share this contract but
// differ in how, and on which goroutine(s), a dispatched Task actually runs. See
// PreparedOperation.Execute for which one is picked for a given ExecuteParams and operation type.
//
// This plays the role the spec literature calls a "strand scheduler": a single logical run-queue
// that suspends a field's execution only at well-defined points (a pending Future, a not-yet
// dispatched DataLoader batch) instead of relying on OS threads or goroutines to model where field
// resolution can be interleaved.
type executor interface {
	// Run drives ctx's operation to completion, returning a channel that receives exactly one
	// ExecutionResult.
	Run(ctx *ExecutionContext) <-chan ExecutionResult

	// DispatchRoot schedules a root-level field task (i.e. one of the top-level selections of the
	// operation) to run. It is kept distinct from Dispatch because a serialExecutor must run
	// mutation root fields, and everything each one transitively resolves, one at a time and in
	// document order rather than interleaving them.
	DispatchRoot(task Task)

	// Dispatch schedules a non-root task (a subfield, or a resumed async value) to run. It may run
	// on the calling goroutine or elsewhere depending on the executor implementation.
	Dispatch(task Task)

	// Yield parks task: it performed as much work as it could and is now waiting on something else
	// (typically a pending future.Future) to make progress. It will be rescheduled with Resume.
	Yield(task Task)

	// Resume reschedules a previously yielded task to run again, typically called from a
	// future.Waker callback once the value it was waiting on became ready.
	Resume(task Task)

	// AppendError records an error produced while evaluating result.
	AppendError(err *graphql.Error, result *ResultNode)

	// DataLoaderCycle returns the current data loader dispatch cycle.
	DataLoaderCycle() DataLoaderCycle

	// IncDataLoaderCycle attempts to advance the cycle counter to newCycle. It returns whether this
	// call won the race to do so; only the winner should actually perform the dispatch.
	IncDataLoaderCycle(newCycle DataLoaderCycle) bool
}
