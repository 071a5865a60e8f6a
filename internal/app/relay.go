package app

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/avrek/Beacon/internal/core"
	"github.com/avrek/Beacon/internal/domain"
)

// Relay owns the participant registry and implements the signaling protocol:
// id assignment on connect, join handling, full roster fan-out, and verbatim
// forwarding of recipient-addressed envelopes. It never inspects the payload
// of a forwarded frame.
type Relay struct {
	registry *Registry
	ids      IDGenerator
	policy   Policy
	stats    *Stats
}

func NewRelay(registry *Registry, ids IDGenerator, policy Policy) *Relay {
	return &Relay{
		registry: registry,
		ids:      ids,
		policy:   policy,
		stats:    &Stats{},
	}
}

func (r *Relay) Stats() *Stats { return r.stats }

func (r *Relay) Roster() []core.RosterEntry { return r.registry.Snapshot() }

// OnConnect registers the connection under a fresh id and immediately tells
// the participant which id it was assigned.
func (r *Relay) OnConnect(conn core.SignalConnection) *domain.Participant {
	p := domain.NewParticipant(domain.ParticipantID(r.ids.NewID()))
	r.registry.Add(p, conn)
	r.stats.Connected.Add(1)
	log.Info().Str("module", "app.relay").Str("id", string(p.ID)).Msg("participant connected")
	r.sendJSON(p.ID, conn, core.ConnectionEstablished{
		Type:       core.TypeConnectionEstablished,
		AssignedID: string(p.ID),
	})
	return p
}

// OnMessage decodes the routing header and dispatches. A frame that cannot be
// decoded is dropped; the connection it came from stays up.
func (r *Relay) OnMessage(raw core.Frame) {
	env, err := core.DecodeEnvelope(raw)
	if err != nil {
		r.stats.Malformed.Add(1)
		log.Warn().Err(err).Str("module", "app.relay").Msg("malformed envelope dropped")
		return
	}

	switch env.Type {
	case core.TypeJoin:
		r.handleJoin(env)
	default:
		if env.SenderID != "" && env.RecipientID != "" {
			r.forward(env, raw)
			return
		}
		r.stats.Unroutable.Add(1)
		log.Debug().Str("module", "app.relay").Str("type", env.Type).Msg("unroutable envelope dropped")
	}
}

// forward delivers the original frame to the named recipient only. A lookup
// miss is a race outcome (recipient left mid-flight), not an error.
func (r *Relay) forward(env core.Envelope, raw core.Frame) {
	recipient := domain.ParticipantID(env.RecipientID)
	conn, ok := r.registry.Get(recipient)
	if !ok {
		r.stats.UnknownRecipient.Add(1)
		log.Debug().Str("module", "app.relay").
			Str("type", env.Type).
			Str("from", env.SenderID).
			Str("to", env.RecipientID).
			Msg("unknown recipient, envelope dropped")
		return
	}
	if err := conn.TrySend(raw); err != nil {
		r.onSendFailure(recipient, err)
		return
	}
	r.stats.Forwarded.Add(1)
}

func (r *Relay) handleJoin(env core.Envelope) {
	id := domain.ParticipantID(env.SenderID)
	name := env.UserName
	if len(name) > domain.MaxDisplayNameLen {
		cut := domain.MaxDisplayNameLen
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	if !r.registry.SetDisplayName(id, name) {
		r.stats.StaleSender.Add(1)
		log.Debug().Str("module", "app.relay").Str("id", env.SenderID).Msg("join from unknown sender, ignored")
		return
	}
	log.Info().Str("module", "app.relay").Str("id", env.SenderID).Str("name", name).Msg("join")
	r.BroadcastRoster()
}

// BroadcastRoster sends the full participant list, named or not, to every
// registered connection.
func (r *Relay) BroadcastRoster() {
	update := core.RosterUpdate{
		Type:  core.TypeRosterUpdate,
		Users: r.registry.Snapshot(),
	}
	raw, err := json.Marshal(update)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("roster marshal")
		return
	}
	r.stats.RosterBroadcasts.Add(1)
	r.Broadcast(raw)
}

type sendFailure struct {
	id  domain.ParticipantID
	err error
}

// Broadcast is best-effort per recipient; one broken connection never blocks
// delivery to the rest. Failures are handled only after the fan-out, so an
// eviction-triggered roster always reaches survivors after the one being
// delivered, never before it.
func (r *Relay) Broadcast(raw core.Frame) {
	var failed []sendFailure
	for _, snap := range r.registry.Connections() {
		if err := snap.Conn.TrySend(raw); err != nil {
			failed = append(failed, sendFailure{id: snap.ID, err: err})
		}
	}
	for _, f := range failed {
		r.onSendFailure(f.id, f.err)
	}
}

// OnDisconnect removes the participant and tells everyone left. Removing an
// id that is already gone is a no-op, so a double close broadcasts once.
func (r *Relay) OnDisconnect(id domain.ParticipantID) {
	if !r.registry.Remove(id) {
		return
	}
	log.Info().Str("module", "app.relay").Str("id", string(id)).Msg("participant disconnected")
	r.BroadcastRoster()
}

func (r *Relay) onSendFailure(id domain.ParticipantID, err error) {
	r.stats.SendFailures.Add(1)
	log.Warn().Err(err).Str("module", "app.relay").Str("id", string(id)).Msg("send failure")
	if r.policy != nil && r.policy.OnSendFailure(id, err) == Evict {
		r.OnDisconnect(id)
	}
}

func (r *Relay) sendJSON(id domain.ParticipantID, conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("sendJSON marshal")
		return
	}
	if err := conn.TrySend(b); err != nil {
		r.onSendFailure(id, err)
	}
}
