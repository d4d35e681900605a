package event

import (
	"github.com/google/uuid"
)

const (
	EventChat             = "chat"
	EventAdvancementGrant = "advancement.granted"
	EventConnectionDesync = "connection.desync"
	EventConnectionClosed = "connection.closed"
)

// ChatEvent is a chat message received from a session.
type ChatEvent struct {
	Session uuid.UUID
	Message string
}

// AdvancementGranted is published once per satisfied criterion listener.
type AdvancementGranted struct {
	Session     uuid.UUID
	Advancement string
	Criterion   string
	Trigger     string
}

// ConnectionDesync reports that a peer sent an id the local registry snapshot
// does not know.
type ConnectionDesync struct {
	Session     uuid.UUID
	Remote      string
	Packet      string
	Field       string
	Fingerprint uint64
	Err         error
}

type ConnectionClosed struct {
	Session uuid.UUID
	Remote  string
	Reason  string
}
