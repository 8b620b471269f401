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
	"github.com/gqlcore/engine/concurrent"
	"github.com/gqlcore/engine/graphql"
)

// PrepareOption configures a PrepareParams in place. It exists alongside the PrepareParams struct
// literal form for callers (mainly test helpers) that assemble options incrementally rather than
// building the whole struct up front.
type PrepareOption func(*PrepareParams)

// ExecuteOption configures an ExecuteParams in place, for the same reason PrepareOption exists.
type ExecuteOption func(*ExecuteParams)

// OperationName sets PrepareParams.OperationName.
func OperationName(name string) PrepareOption {
	return func(params *PrepareParams) {
		params.OperationName = name
	}
}

// DefaultFieldResolver sets PrepareParams.DefaultFieldResolver.
func DefaultFieldResolver(resolver graphql.FieldResolver) PrepareOption {
	return func(params *PrepareParams) {
		params.DefaultFieldResolver = resolver
	}
}

// Runner sets ExecuteParams.Runner.
func Runner(runner concurrent.Executor) ExecuteOption {
	return func(params *ExecuteParams) {
		params.Runner = runner
	}
}

// RootValue sets ExecuteParams.RootValue.
func RootValue(value interface{}) ExecuteOption {
	return func(params *ExecuteParams) {
		params.RootValue = value
	}
}

// AppContext sets ExecuteParams.AppContext.
func AppContext(value interface{}) ExecuteOption {
	return func(params *ExecuteParams) {
		params.AppContext = value
	}
}

// Variables sets ExecuteParams.VariableValues.
func Variables(values map[string]interface{}) ExecuteOption {
	return func(params *ExecuteParams) {
		params.VariableValues = values
	}
}

// WithDataLoaderManager sets ExecuteParams.DataLoaderManager.
func WithDataLoaderManager(manager graphql.DataLoaderManager) ExecuteOption {
	return func(params *ExecuteParams) {
		params.DataLoaderManager = manager
	}
}

// WithTracer sets ExecuteParams.Tracer.
func WithTracer(tracer Tracer) ExecuteOption {
	return func(params *ExecuteParams) {
		params.Tracer = tracer
	}
}
