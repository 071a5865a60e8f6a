// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxDisplayNameLen = 36

var ErrDisplayNameTooLong = errors.New("display name too long")

type ParticipantID string

// Participant is one connected entity. The ID is assigned by the relay at
// connection time and never changes; DisplayName stays empty until the first
// join and is overwritten by every subsequent join (last write wins).
type Participant struct {
	ID          ParticipantID `json:"id"`
	DisplayName string        `json:"displayName"`
}

// NewParticipant is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewParticipant(id ParticipantID) *Participant {
	return &Participant{ID: id}
}

func (p *Participant) SetDisplayName(name string) error {
	if len(name) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	p.DisplayName = name
	return nil
}
