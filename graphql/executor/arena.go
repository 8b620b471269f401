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

// executionNodeArenaChunkSize is the number of ExecutionNode's preallocated in each arena chunk.
const executionNodeArenaChunkSize = 32

// arena is a per-execution bump allocator for ExecutionNode's (the engine's SharedState: the cache
// of collected fields, coerced args and resolved field definition per (parent node, concrete
// object type) pair). ExecutionContext, ExecutionNode and ResultNode naturally form a cyclic graph
// (a node points to its Parent, and the ExecutionContext reachable from every node keeps the whole
// document alive); allocating every node with its own `&ExecutionNode{}` puts that whole cyclic
// graph on the GC-scanned heap one object at a time. Allocating them out of arena chunks instead
// means the garbage collector only has to scan one slice per chunk rather than one allocation per
// field, and every node created while running a single operation becomes unreachable together, in
// one shot, when the ExecutionContext (and its arena) is dropped at the end of Execute.
//
// This mirrors the chunked, address-stable allocation ResultNodeList already uses for list
// elements (see result_node_list.go); arena generalizes the same idea to ExecutionNode's.
type arena struct {
	// chunk is the slice currently being bumped into. Pointers already handed out from a prior,
	// now-full chunk stay valid: replacing "chunk" with a freshly made slice leaves the old
	// backing array untouched, it simply stops being reachable via the arena itself and is kept
	// alive instead by whatever still references nodes inside it (e.g. ExecutionNode.Parent).
	chunk []ExecutionNode
}

// newExecutionNode allocates a zeroed ExecutionNode out of the arena, growing it with a fresh
// chunk first if the current one is full or hasn't been created yet.
func (a *arena) newExecutionNode() *ExecutionNode {
	if len(a.chunk) == cap(a.chunk) {
		a.chunk = make([]ExecutionNode, 0, executionNodeArenaChunkSize)
	}
	a.chunk = a.chunk[:len(a.chunk)+1]
	return &a.chunk[len(a.chunk)-1]
}
