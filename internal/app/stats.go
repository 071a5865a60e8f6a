package app

import "sync/atomic"

// Stats keeps the relay's silent-drop outcomes countable. Dropping stays
// silent on the wire; these counters are the only place the misses show up.
type Stats struct {
	Connected        atomic.Int64
	Forwarded        atomic.Int64
	Malformed        atomic.Int64
	UnknownRecipient atomic.Int64
	StaleSender      atomic.Int64
	Unroutable       atomic.Int64
	SendFailures     atomic.Int64
	RosterBroadcasts atomic.Int64
}

type StatsSnapshot struct {
	Connected        int64 `json:"connected"`
	Forwarded        int64 `json:"forwarded"`
	Malformed        int64 `json:"dropped_malformed"`
	UnknownRecipient int64 `json:"dropped_unknown_recipient"`
	StaleSender      int64 `json:"dropped_stale_sender"`
	Unroutable       int64 `json:"dropped_unroutable"`
	SendFailures     int64 `json:"send_failures"`
	RosterBroadcasts int64 `json:"roster_broadcasts"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Connected:        s.Connected.Load(),
		Forwarded:        s.Forwarded.Load(),
		Malformed:        s.Malformed.Load(),
		UnknownRecipient: s.UnknownRecipient.Load(),
		StaleSender:      s.StaleSender.Load(),
		Unroutable:       s.Unroutable.Load(),
		SendFailures:     s.SendFailures.Load(),
		RosterBroadcasts: s.RosterBroadcasts.Load(),
	}
}
