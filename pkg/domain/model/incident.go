package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

// Incident represents one postmortem-generation request. It is built
// exactly once and read-only afterwards; its lifetime is a single
// pipeline run.
type Incident struct {
	ID                types.IncidentID
	ChannelID         types.ChannelID
	ChannelName       string
	TriggeredByUserID types.UserID
	TriggeredByUser   string
	Conversation      []Message // insertion order = retrieval order
	Source            types.Platform
	TriggerPlatform   string
	// DeploymentLogs holds raw or summarized CI/CD log text. Empty when
	// no CI integration is configured or no completed run exists.
	DeploymentLogs string
}

// NewIncident assembles an Incident from normalized trigger context,
// the assembled conversation and optional deployment logs. It mints a
// fresh incident ID and performs no I/O.
func NewIncident(trigger TriggerContext, conversation []Message, deploymentLogs string) (*Incident, error) {
	if trigger.ChannelID == "" {
		return nil, goerr.Wrap(ErrMissingChannel, "cannot build incident")
	}
	if err := trigger.Platform.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot build incident")
	}

	return &Incident{
		ID:                types.NewIncidentID(),
		ChannelID:         trigger.ChannelID,
		ChannelName:       trigger.ChannelName,
		TriggeredByUserID: trigger.UserID,
		TriggeredByUser:   trigger.UserName,
		Conversation:      conversation,
		Source:            trigger.Platform,
		TriggerPlatform:   trigger.TriggerPlatform,
		DeploymentLogs:    deploymentLogs,
	}, nil
}
