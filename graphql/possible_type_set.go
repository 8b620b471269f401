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

package graphql

// PossibleTypeSet is the set of concrete Object types that can stand for an AbstractType (an
// Interface's implementers, or a Union's members). Schema.PossibleTypes returns one of these per
// abstract type, built once when the Schema is created.
type PossibleTypeSet struct {
	// types supports the O(1) Contains check and is also what callers holding the schema package
	// range over directly (see Schema's reachable-type walk).
	types map[Object]bool

	// order preserves the sequence types were added in (schema definition order for a Union's
	// member list, then type-map order for an Interface's implementers), so that algorithms
	// requiring a deterministic visitation order - e.g. the abstract-type isTypeOf fallback - don't
	// depend on Go's randomized map iteration.
	order []Object
}

// NewPossibleTypeSet returns an empty PossibleTypeSet ready for Add.
func NewPossibleTypeSet() PossibleTypeSet {
	return PossibleTypeSet{types: map[Object]bool{}}
}

// Add records t as a possible type, if it isn't already one.
func (s *PossibleTypeSet) Add(t Object) {
	if s.types == nil {
		s.types = map[Object]bool{}
	}
	if !s.types[t] {
		s.types[t] = true
		s.order = append(s.order, t)
	}
}

// Contains returns whether t is a possible type in the set.
func (s PossibleTypeSet) Contains(t Object) bool {
	return s.types[t]
}

// Slice returns the possible types in the order they were added.
func (s PossibleTypeSet) Slice() []Object {
	return s.order
}
