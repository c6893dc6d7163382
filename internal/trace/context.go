package trace

import "context"

type tracerKey struct{}

type frameKey struct{}

// frame is what nested spans inherit from their enclosing context.
type frame struct {
	span  uint64
	doc   string
	block *Block
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

func frameOf(ctx context.Context) frame {
	if ctx == nil {
		return frame{}
	}
	f, _ := ctx.Value(frameKey{}).(frame)
	return f
}

// WithDocument tags every event started under ctx with the document URI.
// Entering a new document drops the block of the previous one.
func WithDocument(ctx context.Context, uri string) context.Context {
	f := frameOf(ctx)
	if f.doc == uri {
		return ctx
	}
	f.doc, f.block = uri, nil
	return context.WithValue(ctx, frameKey{}, f)
}

// WithBlock tags every event started under ctx with a diagram block.
// A negative index is the "no diagram" block and leaves ctx unchanged.
func WithBlock(ctx context.Context, index int, title string) context.Context {
	if index < 0 {
		return ctx
	}
	f := frameOf(ctx)
	f.block = &Block{Index: index, Title: title}
	return context.WithValue(ctx, frameKey{}, f)
}
