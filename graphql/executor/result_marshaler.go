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
	"github.com/gqlcore/engine/jsonwriter"
)

// resultMarshaler implements jsonwriter.ValueMarshaler to stream ExecutionResult to JSON without
// first converting it to an interface{} tree.
type resultMarshaler struct {
	result *ExecutionResult
}

// NewExecutionResultMarshaler creates a marshaler that streams result's JSON encoding through a
// jsonwriter.Stream.
func NewExecutionResultMarshaler(result *ExecutionResult) jsonwriter.ValueMarshaler {
	return resultMarshaler{result}
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (marshaler resultMarshaler) MarshalJSONTo(stream *jsonwriter.Stream) error {
	result := marshaler.result
	stream.WriteObjectStart()

	// The spec's note on response serialization suggests writing "errors" ahead of "data" so a
	// reader scanning the stream sees the failure signal first.
	//
	// See https://graphql.github.io/graphql-spec/June2018/#sec-Response-Format.
	if result.Errors.HaveOccurred() {
		stream.WriteObjectField("errors")
		stream.WriteValue(graphql.NewErrorsMarshaler(result.Errors))
		if result.Data != nil {
			stream.WriteMore()
		}
	}

	if result.Data != nil {
		stream.WriteObjectField("data")
		stream.WriteValue(NewResultNodeMarshaler(result.Data))
	}

	stream.WriteObjectEnd()
	return nil
}

// marshalOp names the bookkeeping steps the result-tree walk below needs to interleave with the
// actual node values it visits: closing a container or separating two sibling entries.
type marshalOp int

const (
	// opWriteNode carries an actual value to stream (a *ResultNode, or an *ExecutionNode standing in
	// for the object-field-name write that must precede its value).
	opWriteNode marshalOp = iota
	opCloseObject
	opCloseArray
	opSeparator
)

// marshalStep is one entry on the explicit work stack MarshalJSONTo drives instead of recursing —
// recursion would make stack depth track GraphQL selection-set depth, which is attacker-
// influenced query-shape, not bounded by this package.
type marshalStep struct {
	op   marshalOp
	node interface{} // *ResultNode or *ExecutionNode; unused for the close/separator ops
}

// NewResultNodeMarshaler creates a marshaler that streams node's JSON encoding through a
// jsonwriter.Stream.
func NewResultNodeMarshaler(node *ResultNode) jsonwriter.ValueMarshaler {
	return resultNodeMarshaler{node}
}

// resultNodeMarshaler implements jsonwriter.ValueMarshaler to stream a ResultNode to JSON.
type resultNodeMarshaler struct {
	node *ResultNode
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (marshaler resultNodeMarshaler) MarshalJSONTo(stream *jsonwriter.Stream) error {
	stack := []marshalStep{{op: opWriteNode, node: marshaler.node}}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch step.op {
		case opCloseObject:
			stream.WriteObjectEnd()
			continue
		case opCloseArray:
			stream.WriteArrayEnd()
			continue
		case opSeparator:
			stream.WriteMore()
			continue
		}

		if execNode, ok := step.node.(*ExecutionNode); ok {
			stream.WriteObjectField(execNode.ResponseKey())
			continue
		}

		result := step.node.(*ResultNode)
		switch result.Kind {
		case ResultKindNil:
			stream.WriteNil()

		case ResultKindList:
			stack = marshalList(stream, result.ListValue(), stack)

		case ResultKindObject:
			var err error
			stack, err = marshalObject(stream, result.ObjectValue(), stack)
			if err != nil {
				return err
			}

		case ResultKindLeaf:
			stream.WriteInterface(result.Value)
		}
	}

	return nil
}

// marshalList pushes the work to stream nodeList's elements, in order, onto stack (LIFO, so they
// are pushed back to front), separated by opSeparator steps and wrapped in an array.
func marshalList(stream *jsonwriter.Stream, nodeList ResultNodeList, stack []marshalStep) []marshalStep {
	if nodeList.Empty() {
		stream.WriteEmptyArray()
		return stack
	}

	stream.WriteArrayStart()
	stack = append(stack, marshalStep{op: opCloseArray})

	firstChunk := nodeList.Chunks()
	for chunk := firstChunk.Prev(); ; chunk = chunk.Prev() {
		nodes := chunk.Nodes()
		for i := len(nodes) - 1; i >= 0; i-- {
			stack = append(stack, marshalStep{op: opWriteNode, node: &nodes[i]}, marshalStep{op: opSeparator})
		}
		if chunk == firstChunk {
			break
		}
	}

	// The element pushed last (written first) needs no leading separator.
	return stack[:len(stack)-1]
}

// marshalObject pushes the work to stream object's fields, in collection order, onto stack,
// interleaving each field's name (from its ExecutionNode) with its value and a separator, wrapped
// in an object.
func marshalObject(stream *jsonwriter.Stream, object *ObjectResultValue, stack []marshalStep) ([]marshalStep, error) {
	if len(object.FieldValues) == 0 {
		// Reached when no field was collected, e.g. when @skip/@include excluded every selection.
		stream.WriteEmptyObject()
		return stack, nil
	}

	nodes := object.ExecutionNodes
	values := object.FieldValues
	if len(nodes) != len(values) {
		return stack, graphql.NewError("malformed object result value: mismatch length of " +
			"field values with the execution nodes")
	}

	stack = append(stack, marshalStep{op: opCloseObject})
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack,
			marshalStep{op: opWriteNode, node: &values[i]},
			marshalStep{op: opWriteNode, node: nodes[i]},
			marshalStep{op: opSeparator})
	}
	return stack[:len(stack)-1], nil
}

// MarshalJSON implements json.Marshaler for ResultNode.
func (result *ResultNode) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(resultNodeMarshaler{result})
}
