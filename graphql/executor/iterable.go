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
	"reflect"

	"github.com/gqlcore/engine/internal/util"
	"github.com/gqlcore/engine/iterator"
)

// Iterable is the completion-time escape hatch for a List field whose resolved value isn't a Go
// slice/array: when a resolver hands back something implementing Iterable, completeWrappingValue
// drives the list from its Iterator instead of reflecting over indices.
type Iterable interface {
	// Iterator returns an Iterator positioned before the first element.
	Iterator() Iterator
}

// SizedIterable is an Iterable that can report its element count up front, letting the Completer
// preallocate the resulting ResultNodeList instead of growing it chunk by chunk.
type SizedIterable interface {
	Iterable

	// Size is the number of elements the Iterator will yield.
	Size() int
}

// Iterator produces the elements of an Iterable one at a time.
type Iterator interface {
	// Next follows the iterator package's [0] exhaustion convention:
	//
	//  - (value, nil): value is the next element.
	//  - (_, iterator.Done): the sequence is exhausted; value is meaningless.
	//  - (_, err): fetching the next element failed; value is meaningless.
	//
	// [0]: github.com/gqlcore/engine/iterator
	Next() (interface{}, error)
}

// mapIteration holds the state shared by MapKeysIterable/MapValuesIterable: both just read a
// different component (key vs. value) off the same underlying reflect.Value map iterator.
type mapIteration struct {
	// m is the Go map being iterated; must satisfy reflect.Value.Kind() == reflect.Map.
	m interface{}
}

// Size implements SizedIterable for both map iterables: the entry count of the underlying map.
func (it mapIteration) Size() int {
	return reflect.ValueOf(it.m).Len()
}

//===----------------------------------------------------------------------------------------====//
// MapKeysIterable
//===----------------------------------------------------------------------------------------====//

// MapKeysIterable presents a Go map's keys as an Iterable. The map must not be mutated while the
// returned Iterator is in use.
type MapKeysIterable struct {
	mapIteration
}

// NewMapKeysIterable wraps m (which must be a Go map) for key iteration.
func NewMapKeysIterable(m interface{}) *MapKeysIterable {
	return &MapKeysIterable{mapIteration{m}}
}

// Iterator implements Iterable.
func (iterable *MapKeysIterable) Iterator() Iterator {
	return MapKeysIterator{util.NewImmutableMapIter(iterable.m)}
}

// MapKeysIterator walks a map's keys.
type MapKeysIterator struct {
	iter *util.ImmutableMapIter
}

// Next implements Iterator.
func (iter MapKeysIterator) Next() (interface{}, error) {
	if !iter.iter.Next() {
		return nil, iterator.Done
	}
	return iter.iter.Key().Interface(), nil
}

//===----------------------------------------------------------------------------------------====//
// MapValuesIterable
//===----------------------------------------------------------------------------------------====//

// MapValuesIterable presents a Go map's values as an Iterable. The map must not be mutated while
// the returned Iterator is in use.
type MapValuesIterable struct {
	mapIteration
}

// NewMapValuesIterable wraps m (which must be a Go map) for value iteration.
func NewMapValuesIterable(m interface{}) *MapValuesIterable {
	return &MapValuesIterable{mapIteration{m}}
}

// Iterator implements Iterable.
func (iterable *MapValuesIterable) Iterator() Iterator {
	return MapValuesIterator{util.NewImmutableMapIter(iterable.m)}
}

// MapValuesIterator walks a map's values.
type MapValuesIterator struct {
	iter *util.ImmutableMapIter
}

// Next implements Iterator.
func (iter MapValuesIterator) Next() (interface{}, error) {
	if !iter.iter.Next() {
		return nil, iterator.Done
	}
	return iter.iter.Value().Interface(), nil
}
