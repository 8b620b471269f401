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
	"unsafe"
)

// resultNodeListChunkSize is how many ResultNode's a freshly allocated ResultNodeListChunk can hold
// before EmplaceBack must grow the list with another chunk. Like the ExecutionNode arena (see
// arena.go, whose chunks hold executionNodeArenaChunkSize nodes), the chunks give list-element
// completion address-stable storage without per-element heap churn.
const resultNodeListChunkSize = 16

// ResultNodeListChunk is one link of a ResultNodeList: a fixed-capacity run of ResultNode's plus
// the pointers that thread it into the list's circular doubly linked chain.
type ResultNodeListChunk struct {
	nodes []ResultNode
	// prev points at the chunk allocated immediately before this one; for the head chunk, prev
	// wraps around to the tail chunk.
	prev *ResultNodeListChunk
	// next points at the chunk allocated immediately after this one; for the tail chunk, next
	// wraps around to the head chunk.
	next *ResultNodeListChunk
}

// Nodes returns every ResultNode currently populated in this chunk.
func (chunk *ResultNodeListChunk) Nodes() []ResultNode {
	return chunk.nodes
}

// Prev returns the chunk allocated immediately before this one (wrapping to the tail at the head).
func (chunk *ResultNodeListChunk) Prev() *ResultNodeListChunk {
	return chunk.prev
}

// Next returns the chunk allocated immediately after this one (wrapping to the head at the tail).
func (chunk *ResultNodeListChunk) Next() *ResultNodeListChunk {
	return chunk.next
}

// Size returns how many nodes are currently populated in the chunk.
func (chunk *ResultNodeListChunk) Size() int {
	return len(chunk.nodes)
}

// cap reports how many nodes this chunk's backing array can hold in total.
func (chunk *ResultNodeListChunk) cap() int {
	return cap(chunk.nodes)
}

// ResultNodeList holds the completed elements of a List-typed field: a circular doubly linked chain
// of pre-allocated ResultNodeListChunk's. Every List field gets one, built as the Completer walks
// its elements in source order.
//
// Growing a ResultNodeList by appending never reallocates an existing element: once EmplaceBack
// hands back a *ResultNode, that address stays valid for the rest of the execution. That matters
// because the wrapping field's own ResultNode.Value is set to point at the list before any element
// is completed — list-element completion (completeWrappingValue, driving the per-element
// completeNonWrappingValue calls) and whatever already holds a reference to the list value must see
// the same, never-moved backing storage.
//
// The chunked layout also makes IndexOf cheap: given any node's address, which chunk it falls in
// and its offset within that chunk's backing array can be computed directly, which error reporting
// needs to recover a list index from a *ResultNode alone.
type ResultNodeList struct {
	// chunks is the head (first-allocated) chunk in the circular chain.
	chunks *ResultNodeListChunk
}

// NewResultNodeList creates an empty ResultNodeList sized for resultNodeListChunkSize elements
// before its first chunk fills up.
func NewResultNodeList() ResultNodeList {
	return NewFixedSizeResultNodeList(resultNodeListChunkSize)
}

// NewFixedSizeResultNodeList creates an empty ResultNodeList whose head chunk can hold up to n
// elements without growing. Use this when the element count is known up front (e.g. a fixed-length
// array source) to avoid the extra chunk NewResultNodeList's default size might require.
func NewFixedSizeResultNodeList(n int) ResultNodeList {
	head := &ResultNodeListChunk{
		nodes: make([]ResultNode, 0, n),
	}
	head.prev = head
	head.next = head
	return ResultNodeList{chunks: head}
}

// Chunks returns the head chunk of the list's chain.
func (list ResultNodeList) Chunks() *ResultNodeListChunk {
	return list.chunks
}

// Empty reports whether the list has had no elements appended to it yet.
func (list ResultNodeList) Empty() bool {
	head := list.chunks
	return head.next == head && head.Size() == 0
}

// EmplaceBack grows the list by one element, returning a pointer to the freshly zeroed ResultNode
// so the caller can fill it in place. parent links the new node back to the list field's own node
// (for path reconstruction); nullable, when false, immediately marks the node to reject a null
// value the way NonNull-typed fields do.
func (list ResultNodeList) EmplaceBack(parent *ResultNode, nullable bool) *ResultNode {
	head := list.chunks
	tail := head.prev
	used := tail.Size()

	if used >= tail.cap() {
		grown := &ResultNodeListChunk{
			nodes: make([]ResultNode, 0, resultNodeListChunkSize),
			prev:  tail,
			next:  tail.next,
		}
		tail.next = grown
		head.prev = grown
		tail = grown
		used = 0
	}

	tail.nodes = tail.nodes[:used+1]
	node := &tail.nodes[used]

	node.Parent = parent
	if !nullable {
		node.SetToRejectNull()
	}

	return node
}

// IndexOf returns the position of node within the list (0-based), or -1 if node's address doesn't
// fall inside any chunk belonging to this list.
func (list ResultNodeList) IndexOf(node *ResultNode) int {
	nodeAddr := uintptr(unsafe.Pointer(node))
	head := list.chunks
	tail := head.prev

	offset := 0
	for chunk := head; ; chunk = chunk.next {
		firstAddr := uintptr(unsafe.Pointer(&chunk.nodes[0]))
		if nodeAddr >= firstAddr {
			if withinChunk := int((nodeAddr - firstAddr) / sizeOfResultNode); withinChunk < chunk.Size() {
				return offset + withinChunk
			}
		}

		offset += chunk.Size()
		if chunk == tail {
			return -1
		}
	}
}
