package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Platform identifies a chat platform that can originate an incident
// and receive the finished postmortem.
type Platform string

const (
	PlatformSlack   Platform = "slack"
	PlatformDiscord Platform = "discord"
	PlatformTeams   Platform = "teams"
	PlatformUnknown Platform = "unknown"
)

// String returns the string representation
func (p Platform) String() string {
	return string(p)
}

// Validate returns an error unless the platform is one of the three
// supported origins. Unknown values are never defaulted silently.
func (p Platform) Validate() error {
	switch p {
	case PlatformSlack, PlatformDiscord, PlatformTeams:
		return nil
	}
	return goerr.New("unsupported platform", goerr.V("platform", string(p)))
}

// IncidentID represents a postmortem run identifier
type IncidentID string

// String returns the string representation
func (id IncidentID) String() string {
	return string(id)
}

// NewIncidentID creates a new IncidentID
func NewIncidentID() IncidentID {
	return IncidentID(uuid.New().String())
}

// ChannelID represents a platform-scoped channel identifier
type ChannelID string

// String returns the string representation
func (id ChannelID) String() string {
	return string(id)
}

// UserID represents a platform-scoped user identifier. It is not
// globally unique across platforms.
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}
