package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/avrek/Beacon/internal/core"
	"github.com/avrek/Beacon/internal/domain"
)

type entry struct {
	Participant *domain.Participant
	Conn        core.SignalConnection
}

// Registry is the single owner of connected-participant state. A participant
// is present exactly while its transport connection is open; every mutation
// goes through the registry under one lock so a concurrent join cannot race
// a disconnect into a lost update.
type Registry struct {
	mu      sync.RWMutex
	entries map[domain.ParticipantID]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[domain.ParticipantID]*entry)}
}

func (r *Registry) Add(p *domain.Participant, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[p.ID] = &entry{Participant: p, Conn: conn}
	log.Info().Str("module", "app.registry").Str("id", string(p.ID)).Msg("participant added")
}

func (r *Registry) Get(id domain.ParticipantID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

// SetDisplayName reports false when id is not registered (stale sender).
func (r *Registry) SetDisplayName(id domain.ParticipantID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	if err := e.Participant.SetDisplayName(name); err != nil {
		log.Warn().Err(err).Str("module", "app.registry").Str("id", string(id)).Msg("display name rejected")
		return true
	}
	log.Info().Str("module", "app.registry").Str("id", string(id)).Str("name", name).Msg("display name set")
	return true
}

// Remove reports whether the id was present, so a double disconnect stays a
// no-op for the caller.
func (r *Registry) Remove(id domain.ParticipantID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("participant removed")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns the roster view. Iteration order of the underlying map is
// not contractual.
func (r *Registry) Snapshot() []core.RosterEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RosterEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, core.RosterEntry{ID: string(e.Participant.ID), DisplayName: e.Participant.DisplayName})
	}
	return out
}

type regSnap struct {
	ID   domain.ParticipantID
	Conn core.SignalConnection
}

// Connections returns a fan-out view consistent at the time of the call;
// a send racing a disconnect that lands right after is expected to fail soft.
func (r *Registry) Connections() []regSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]regSnap, 0, len(r.entries))
	for id, e := range r.entries {
		out = append(out, regSnap{ID: id, Conn: e.Conn})
	}
	return out
}
