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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps the resolution of a single field in a span. It is consulted, when non-nil, by
// ExecuteNodeTask.run for every field resolver invocation. This is opt-in: Execute runs with no
// tracing overhead at all when ExecuteParams.Tracer is left nil.
type Tracer interface {
	// StartFieldSpan starts a span for resolving the field named fieldName at path, returning a
	// context carrying the span (to propagate to the resolver, which may itself start child spans)
	// and a function to call once the field has been resolved (err is nil on success).
	StartFieldSpan(ctx context.Context, path string, fieldName string, parentTypeName string) (context.Context, func(err error))
}

// otelTracer adapts an OpenTelemetry trace.Tracer to Tracer.
type otelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer builds a Tracer that reports field resolutions as spans on tracer.
func NewOTelTracer(tracer trace.Tracer) Tracer {
	return otelTracer{tracer: tracer}
}

// StartFieldSpan implements Tracer.
func (t otelTracer) StartFieldSpan(
	ctx context.Context,
	path string,
	fieldName string,
	parentTypeName string,
) (context.Context, func(err error)) {
	spanCtx, span := t.tracer.Start(ctx, "graphql.resolve "+parentTypeName+"."+fieldName,
		trace.WithAttributes(
			attribute.String("graphql.field.path", path),
			attribute.String("graphql.field.name", fieldName),
			attribute.String("graphql.field.parentType", parentTypeName),
		))

	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
