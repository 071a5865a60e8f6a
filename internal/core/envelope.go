package core

import "encoding/json"

// Structural message types the relay interprets itself. Every other type is
// opaque: it is routed purely by senderId/recipientId and forwarded verbatim,
// so new signaling kinds (offer, answer, ice-candidate, ...) need no relay
// changes.
const (
	TypeConnectionEstablished = "connection-established"
	TypeJoin                  = "join"
	TypeRosterUpdate          = "roster-update"
)

// Envelope is the routing header of an inbound frame. Only these fields are
// decoded; the original frame is kept and forwarded byte-for-byte.
type Envelope struct {
	Type        string `json:"type"`
	SenderID    string `json:"senderId,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`
	UserName    string `json:"userName,omitempty"`
}

func DecodeEnvelope(raw Frame) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// RosterEntry is a read-only view for roster fan-out (no transport fields).
// DisplayName is empty for participants that have not joined yet.
type RosterEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// ConnectionEstablished tells a freshly accepted participant its assigned id.
type ConnectionEstablished struct {
	Type       string `json:"type"`
	AssignedID string `json:"assignedId"`
}

// RosterUpdate carries the full participant list; fan-out is never
// incremental.
type RosterUpdate struct {
	Type  string        `json:"type"`
	Users []RosterEntry `json:"users"`
}
