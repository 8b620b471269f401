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
	"context"

	"github.com/gqlcore/engine/graphql"
)

// The three meta-fields (__schema, __type, __typename) are implicit: they never appear in a
// schema's declared types, yet per spec.md §6 the Collector must still recognize them by name when
// walking the query root (__schema, __type) or any composite type (__typename) and dispatch to a
// fixed resolver instead of asking the schema for a field definition.
//
// See https://spec.graphql.org/#sec-Schema-Introspection and
// https://spec.graphql.org/#sec-Type-Name-Introspection.

// metaFieldResolveFunc adapts a plain function to graphql.FieldResolver so each meta-field below can
// hand a closure to metaField.resolver instead of declaring its own resolver type.
type metaFieldResolveFunc func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error)

func (f metaFieldResolveFunc) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

// metaField implements graphql.Field for one of the three engine-recognized meta-fields; the three
// package-level vars below (schemaMetaField, typeMetaField, typenameMetaField) are its only
// instances, each carrying the shape its meta-field needs.
type metaField struct {
	name        string
	description string
	typ         graphql.Type
	args        []graphql.Argument
	resolve     metaFieldResolveFunc
}

// Name implements graphql.Field.
func (f metaField) Name() string { return f.name }

// Description implements graphql.Field.
func (f metaField) Description() string { return f.description }

// Type implements graphql.Field.
func (f metaField) Type() graphql.Type { return f.typ }

// Args implements graphql.Field.
func (f metaField) Args() []graphql.Argument { return f.args }

// Resolver implements graphql.Field.
func (f metaField) Resolver() graphql.FieldResolver { return f.resolve }

// Deprecation implements graphql.Field; none of the meta-fields can be deprecated.
func (f metaField) Deprecation() *graphql.Deprecation { return nil }

const (
	schemaMetaFieldName   = "__schema"
	typeMetaFieldName     = "__type"
	typenameMetaFieldName = "__typename"
)

// schemaMetaField implements `__schema: __Schema!`, reachable only from the query root.
var schemaMetaField = metaField{
	name:        schemaMetaFieldName,
	description: "Access the current type schema of this server.",
	typ:         graphql.MustNewNonNullOfType(graphql.IntrospectionTypes.Schema()),
	resolve: func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return info.Schema(), nil
	},
}

// typeMetaField implements `__type(name: String!): __Type`, reachable only from the query root.
var typeMetaField = metaField{
	name:        typeMetaFieldName,
	description: "Request the type information of a single type.",
	typ:         graphql.IntrospectionTypes.Type(),
	args: []graphql.Argument{
		// FIXME: Should not use graphql.MockArgument.
		graphql.MockArgument("name", "", graphql.MustNewNonNullOfType(graphql.String()), nil),
	},
	resolve: func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return info.Schema().TypeMap().Lookup(info.Args().Get("name").(string)), nil
	},
}

// typenameMetaField implements `__typename: String!`, reachable from any composite type. Its
// resolver never touches source: the answer is always the concrete object type the Collector
// resolved the selection against.
var typenameMetaField = metaField{
	name:        typenameMetaFieldName,
	description: "The name of the current Object type at runtime.",
	typ:         graphql.MustNewNonNullOfType(graphql.String()),
	resolve: func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return info.Object().Name(), nil
	},
}
