package app

import (
	"errors"

	"github.com/avrek/Beacon/internal/core"
	"github.com/avrek/Beacon/internal/domain"
)

type SendFailureAction int

const (
	DropEnvelope SendFailureAction = iota
	Evict
)

// Policy decides what a failed send to a participant means for that
// participant's membership.
type Policy interface {
	OnSendFailure(id domain.ParticipantID, err error) SendFailureAction
}

// EvictOnClosed drops the frame for a slow receiver but evicts a participant
// whose connection already reported closed, so the registry cannot keep a
// dead handle alive.
type EvictOnClosed struct{}

func (EvictOnClosed) OnSendFailure(_ domain.ParticipantID, err error) SendFailureAction {
	if errors.Is(err, core.ErrConnClosed) {
		return Evict
	}
	return DropEnvelope
}
