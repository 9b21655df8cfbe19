package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an application error with the context-scoped logger.
// Errors inside the deferred pipeline are invisible to the original
// HTTP response, so this is their last stop before the operational log.
func Handle(ctx context.Context, err error) {
	ctxlog.From(ctx).Error("application error", "error", err)
}
