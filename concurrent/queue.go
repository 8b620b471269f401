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

package concurrent

import (
	"errors"
	"time"
)

// Errors a Queue implementation returns from Push, Poll and Remove.
var (
	// ErrQueueClosed means Push was called after Close.
	ErrQueueClosed = errors.New("queue: closed")

	// ErrQueuePollTimeout means Poll's timeout elapsed with no element to return.
	ErrQueuePollTimeout = errors.New("queue: poll timeout")

	// ErrElementNotFound means Remove's argument isn't currently queued.
	ErrElementNotFound = errors.New("queue: given element is not found in the queue")
)

// Queue is a concurrency-safe FIFO container of non-nil elements; every implementation must permit
// concurrent callers of its methods. WorkerPoolExecutor uses one to hand submitted Task's from
// submitting goroutines to its pool workers.
type Queue interface {
	// Push enqueues element, or returns ErrQueueClosed if the queue has been closed. element must
	// not be nil.
	Push(element interface{}) error

	// Poll dequeues and returns the head element, blocking up to timeout for one to become
	// available; returns ErrQueuePollTimeout if none arrives in time.
	Poll(timeout time.Duration) (interface{}, error)

	// Remove drops element from the queue if present, or returns ErrElementNotFound.
	Remove(element interface{}) error

	// Empty reports whether the queue currently holds no elements.
	Empty() bool

	// Close stops the queue accepting further Push calls (which then return ErrQueueClosed) without
	// discarding elements already queued; Poll keeps draining them until none remain, after which it
	// returns immediately.
	Close()
}
