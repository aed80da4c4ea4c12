package app

import (
	"sort"

	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type registryEntry struct {
	client domain.Client
	conn   core.SignalConnection
	seq    uint64
}

// Registry is the authoritative map of live connections.
// It does not lock: the orchestrator owns it and serializes every call
// together with the topology. It never cascades into the topology either.
type Registry struct {
	entries map[domain.ConnID]*registryEntry
	seq     uint64
	newID   func() domain.ConnID
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[domain.ConnID]*registryEntry),
		newID:   func() domain.ConnID { return domain.ConnID(uuid.NewString()) },
	}
}

// Register adds a connection and returns its fresh id. The privileged
// flag is fixed here for the lifetime of the entry.
func (r *Registry) Register(conn core.SignalConnection, name string, privileged bool) domain.ConnID {
	id := r.newID()
	for r.Has(id) {
		id = r.newID()
	}
	r.seq++
	r.entries[id] = &registryEntry{
		client: domain.Client{ID: id, Name: name, Privileged: privileged},
		conn:   conn,
		seq:    r.seq,
	}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Bool("privileged", privileged).Msg("registered")
	return id
}

// Deregister removes the entry. Reports whether it existed.
func (r *Registry) Deregister(id domain.ConnID) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("deregistered")
	return true
}

func (r *Registry) Has(id domain.ConnID) bool {
	_, ok := r.entries[id]
	return ok
}

func (r *Registry) Get(id domain.ConnID) (domain.Client, bool) {
	e, ok := r.entries[id]
	if !ok {
		return domain.Client{}, false
	}
	return e.client, true
}

// Conn returns the transport endpoint registered under id.
func (r *Registry) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.conn, true
}

func (r *Registry) SetDisplayName(id domain.ConnID, name string) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.client.Name = name
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("name", name).Msg("updated name")
	return true
}

func (r *Registry) IsPrivileged(id domain.ConnID) bool {
	e, ok := r.entries[id]
	return ok && e.client.Privileged
}

// Clients lists entries in registration order, optionally skipping
// privileged ones.
func (r *Registry) Clients(excludePrivileged bool) []domain.Client {
	list := make([]*registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if excludePrivileged && e.client.Privileged {
			continue
		}
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })
	out := make([]domain.Client, len(list))
	for i, e := range list {
		out[i] = e.client
	}
	return out
}

func (r *Registry) AllIDs(excludePrivileged bool) []domain.ConnID {
	clients := r.Clients(excludePrivileged)
	out := make([]domain.ConnID, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}

// PrivilegedIDs lists the observers in registration order.
func (r *Registry) PrivilegedIDs() []domain.ConnID {
	var out []domain.ConnID
	for _, c := range r.Clients(false) {
		if c.Privileged {
			out = append(out, c.ID)
		}
	}
	return out
}

func (r *Registry) Len() int { return len(r.entries) }
