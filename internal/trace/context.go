package trace

import "context"

// carried is what a context holds for tracing: the tracer and the span that
// work started under this context nests under.
type carried struct {
	tracer Tracer
	parent uint64
}

type ctxKey struct{}

func carriedFrom(ctx context.Context) carried {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carried); ok {
			return c
		}
	}
	return carried{tracer: Nop}
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return carriedFrom(ctx).tracer
}

// WithTracer stores t in ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carried{tracer: t})
}

// ParentSpan returns the ID of the innermost span started through Start, or
// 0 at the root.
func ParentSpan(ctx context.Context) uint64 {
	return carriedFrom(ctx).parent
}

// Start begins a span under ParentSpan(ctx) and returns a context in which
// it is the parent. A span filtered out by the level leaves ctx unchanged,
// so a file span still hangs off the batch span when command spans are hidden.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	c := carriedFrom(ctx)
	span := Begin(c.tracer, scope, name, c.parent)
	if span.ID() == 0 {
		return span, ctx
	}
	return span, context.WithValue(ctx, ctxKey{}, carried{tracer: c.tracer, parent: span.ID()})
}
