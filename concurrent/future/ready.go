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

package future

// readyFuture is a Future that is immediately ready with a value or an error.
type readyFuture struct {
	value PollResult
	err   error
}

// Poll implements Future.
func (f readyFuture) Poll(waker Waker) (PollResult, error) {
	return f.value, f.err
}

// Ready returns a Future that is immediately ready with the given value.
func Ready(value PollResult) Future {
	return readyFuture{value: value}
}

// Err returns a Future that is immediately ready with the given error.
func Err(err error) Future {
	return readyFuture{err: err}
}
