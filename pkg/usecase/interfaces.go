package usecase

import (
	"context"

	"github.com/razataiab/aftermath-ai/pkg/domain/model"
)

// PostmortemUseCase defines the interface for the postmortem pipeline,
// consumed by the webhook controllers.
type PostmortemUseCase interface {
	// Generate runs one pipeline pass for a normalized trigger:
	// conversation assembly, log enrichment, synthesis and dispatch.
	Generate(ctx context.Context, trigger model.TriggerContext) error
}
