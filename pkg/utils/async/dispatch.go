package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/razataiab/aftermath-ai/pkg/utils/apperr"
)

// Dispatch executes a handler function asynchronously with panic
// recovery. Webhook handlers use this to acknowledge the platform
// immediately while the postmortem pipeline continues in background.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := NewBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			apperr.Handle(newCtx, err)
		}
	}()
}

// NewBackgroundContext creates a background context detached from the
// request lifecycle while preserving the context-scoped logger. The
// caller's context may be cancelled as soon as the HTTP response is
// written, so the pipeline must not inherit it.
func NewBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	if logger := ctxlog.From(ctx); logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	return newCtx
}
