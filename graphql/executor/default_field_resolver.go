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
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/gqlcore/engine/graphql"
	"github.com/gqlcore/engine/internal/util"
)

// DefaultFieldResolverOpt configures a DefaultFieldResolver instance.
type DefaultFieldResolverOpt func(*DefaultFieldResolver)

// DefaultFieldResolver implements the property-access fallback a field uses when the schema gives
// it no explicit resolver: the field's name (§6's "default field resolver") is looked up on the
// source value as a struct field or map entry, or (when ScanMethods is set) as a method, in that
// preference order; a function found there is called if it takes (ctx), (ctx, source) or
// (ctx, source, info). Tag matches walk into embedded structs when ScanAnonymousFields is set.
type DefaultFieldResolver struct {
	UnresolvedAsError   bool
	ScanAnonymousFields bool
	ScanMethods         bool
	FieldTagName        string
}

var _ = (*DefaultFieldResolver)(nil)

// Resolve implements graphql.FieldResolver.
func (resolver *DefaultFieldResolver) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	value := reflect.ValueOf(source)
	if !value.IsValid() {
		return nil, resolver.unresolvedError(info)
	}

	// Dereference a pointer source down to the value it points to.
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
		if !value.IsValid() {
			return nil, resolver.unresolvedError(info)
		}
	}

	switch value.Kind() {
	case reflect.Struct:
		return resolver.resolveFromStruct(ctx, source, value, info)
	case reflect.Map:
		return resolver.resolveFromMap(ctx, source, value, info)
	default:
		return nil, resolver.unresolvedError(info)
	}
}

func (resolver *DefaultFieldResolver) unresolvedErrorWithMessage(message string) error {
	if !resolver.UnresolvedAsError {
		return nil
	}
	return graphql.NewError(message)
}

func (resolver *DefaultFieldResolver) unresolvedError(info graphql.ResolveInfo) error {
	if !resolver.UnresolvedAsError {
		return nil
	}
	return graphql.NewError(fmt.Sprintf(`default resolver cannot resolve value for "%s.%s"`,
		info.Object().Name(), info.Field().Name()))
}

// resolveFromFunc calls f, which was found sitting at the resolved field or method, with whichever
// of the three resolver-compatible signatures it matches.
func (resolver *DefaultFieldResolver) resolveFromFunc(
	ctx context.Context,
	source interface{},
	label string,
	f interface{},
	info graphql.ResolveInfo) (interface{}, error) {

	switch f := f.(type) {
	case func(ctx context.Context) (interface{}, error):
		return f(ctx)

	case func(ctx context.Context, source interface{}) (interface{}, error):
		return f(ctx, source)

	case func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error):
		return f(ctx, source, info)

	default:
		return nil, resolver.unresolvedErrorWithMessage(fmt.Sprintf(
			`default resolver found method %s but is unable to call for resolving %s.%s because of `+
				`unexpected type. Must be one of:
	func(ctx context.Context) (interface{}, error)
	func(ctx context.Context, source interface{}) (interface{}, error)
	func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error), but got
	%T`, label, info.Object().Name(), info.Field().Name(), f))
	}
}

// resolveFromValueOrFunc returns value as-is unless it is itself a callable (a struct field or map
// entry holding a function), in which case it is invoked per resolveFromFunc.
func (resolver *DefaultFieldResolver) resolveFromValueOrFunc(
	ctx context.Context,
	source interface{},
	label string,
	value reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	if value.Kind() == reflect.Func {
		return resolver.resolveFromFunc(ctx, source, label, value.Interface(), info)
	}
	return value.Interface(), nil
}

// matchesTag reports whether field carries resolver.FieldTagName with its first comma-separated
// option equal to resultName, the name of the field being resolved.
func (resolver *DefaultFieldResolver) matchesTag(field reflect.StructField, resultName string) bool {
	tagName := resolver.FieldTagName
	if len(tagName) == 0 {
		return false
	}
	options := strings.Split(field.Tag.Get(tagName), ",")
	return len(options) > 0 && options[0] == resultName
}

// findStructField looks for a tag or camel-cased name match among sourceValue's own fields first,
// then — only if ScanAnonymousFields is set — descends into embedded struct fields one level at a
// time (breadth order: a match on the outer struct always wins over one nested in an embed). The
// camel-cased name lookup uses reflect's FieldByName, which also finds fields promoted from
// embedded structs whether or not ScanAnonymousFields is set.
func (resolver *DefaultFieldResolver) findStructField(sourceValue reflect.Value, resultName, camelName string) (value reflect.Value, label string, ok bool) {
	frontier := []reflect.Value{sourceValue}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		currentType := current.Type()

		for i := 0; i < current.NumField(); i++ {
			field := currentType.Field(i)
			if resolver.matchesTag(field, resultName) {
				return current.Field(i), fmt.Sprintf("%s.%s", currentType.Name(), field.Name), true
			}
		}

		if fieldValue := current.FieldByName(camelName); fieldValue.IsValid() {
			return fieldValue, fmt.Sprintf("%s.%s", currentType.Name(), camelName), true
		}

		if resolver.ScanAnonymousFields {
			for i := 0; i < current.NumField(); i++ {
				field := currentType.Field(i)
				if field.Anonymous && field.Type.Kind() == reflect.Struct {
					frontier = append(frontier, current.Field(i))
				}
			}
		}
	}

	return reflect.Value{}, "", false
}

func (resolver *DefaultFieldResolver) resolveFromStruct(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	resultName := info.Field().Name()
	camelName := util.CamelCase(resultName)

	if fieldValue, label, ok := resolver.findStructField(sourceValue, resultName, camelName); ok {
		return resolver.resolveFromValueOrFunc(ctx, source, label, fieldValue, info)
	}

	if resolver.ScanMethods {
		if sourceValue.CanAddr() {
			sourceValue = sourceValue.Addr()
		}
		if method := sourceValue.MethodByName(camelName); method.IsValid() {
			return resolver.resolveFromFunc(
				ctx, source, fmt.Sprintf("%s.%s", sourceValue.Type().Name(), camelName), method.Interface(), info)
		}
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *DefaultFieldResolver) resolveFromMap(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	resultName := info.Field().Name()
	if value := sourceValue.MapIndex(reflect.ValueOf(resultName)); value.IsValid() {
		return resolver.resolveFromValueOrFunc(ctx, source, fmt.Sprintf("map[%s]", resultName), value, info)
	}
	return nil, resolver.unresolvedError(info)
}
