package orch

import (
	"sync"

	"github.com/dkeye/patchbay/internal/app"
	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator owns the registry and the topology. Every operation that
// touches either runs under mu, so connect, disconnect, route commands and
// the disconnect cascade never interleave. Sends made under mu only enqueue
// (SignalConnection.TrySend), which keeps per-recipient ordering equal to
// mutation order.
type Orchestrator struct {
	mu       sync.RWMutex
	Registry *app.Registry
	Topology *app.Topology
	Policy   app.Policy

	// MaxNameLen bounds display names; <= 0 uses domain.DefaultMaxNameLen.
	MaxNameLen int
}

func New(policy app.Policy) *Orchestrator {
	if policy == nil {
		policy = app.SimplePolicy{}
	}
	return &Orchestrator{
		Registry: app.NewRegistry(),
		Topology: app.NewTopology(),
		Policy:   policy,
	}
}

// outbox queues frames while the lock is held and defers closing kicked
// connections until after it is released.
type outbox struct {
	o     *Orchestrator
	kicks []core.SignalConnection
}

func (o *Orchestrator) newOutbox() *outbox {
	return &outbox{o: o}
}

// send reports whether the frame was queued for the recipient.
func (b *outbox) send(to domain.ConnID, class app.MessageClass, v any) bool {
	conn, ok := b.o.Registry.Conn(to)
	if !ok || conn == nil {
		return false
	}
	frame, err := core.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(to)).Msg("encode")
		return false
	}
	err = conn.TrySend(frame)
	if err == nil {
		return true
	}
	action := b.o.Policy.OnBackPressure(to, class)
	log.Warn().Err(err).Str("module", "orch").Str("sid", string(to)).Str("action", action.String()).Msg("send failed")
	if action == app.KickMember {
		b.kicks = append(b.kicks, conn)
	}
	return false
}

// toObservers sends v to every privileged connection.
func (b *outbox) toObservers(v any) {
	for _, id := range b.o.Registry.PrivilegedIDs() {
		b.send(id, app.ClassObserver, v)
	}
}

// flush must be called without holding mu.
func (b *outbox) flush() {
	for _, conn := range b.kicks {
		conn.Close()
	}
}

// Connect registers a new connection and announces it.
func (o *Orchestrator) Connect(conn core.SignalConnection, name string, privileged bool) domain.ConnID {
	if name != "" {
		if n, err := domain.NormalizeName(name, o.MaxNameLen); err == nil {
			name = n
		} else {
			name = ""
		}
	}

	o.mu.Lock()
	out := o.newOutbox()
	id := o.Registry.Register(conn, name, privileged)
	out.send(id, app.ClassControl, core.IdentityAssigned{Type: core.EventIdentityAssigned, ID: id})
	if privileged {
		out.send(id, app.ClassObserver, o.peerList())
	} else {
		out.toObservers(core.PeerMembership{Type: core.EventPeerJoined, ID: id})
	}
	o.pushSnapshot(out)
	o.mu.Unlock()

	out.flush()
	log.Info().Str("module", "orch").Str("sid", string(id)).Bool("privileged", privileged).Msg("connected")
	return id
}

// Disconnect runs the cascade for a lost connection: drop its routes,
// tell each surviving endpoint, deregister, tell observers, sync once.
// Calling it for an unknown id is a no-op.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.mu.Lock()
	client, ok := o.Registry.Get(id)
	if !ok {
		o.mu.Unlock()
		return
	}
	out := o.newOutbox()
	removed := o.Topology.RemoveAllRoutesFor(id)
	for _, r := range removed {
		out.send(r.Peer(id), app.ClassControl, core.PeerRouteEnded{Type: core.EventPeerRouteEnded, PeerID: id})
	}
	o.Registry.Deregister(id)
	if !client.Privileged {
		out.toObservers(core.PeerMembership{Type: core.EventPeerLeft, ID: id})
	}
	o.pushSnapshot(out)
	o.mu.Unlock()

	out.flush()
	log.Info().Str("module", "orch").Str("sid", string(id)).Int("routes_removed", len(removed)).Msg("disconnected")
}

// Rename sets the display name and resyncs observers.
func (o *Orchestrator) Rename(id domain.ConnID, name string) error {
	name, err := domain.NormalizeName(name, o.MaxNameLen)
	if err != nil {
		return err
	}
	o.mu.Lock()
	out := o.newOutbox()
	if o.Registry.SetDisplayName(id, name) {
		o.pushSnapshot(out)
	}
	o.mu.Unlock()
	out.flush()
	return nil
}

// Client returns the registry entry for id.
func (o *Orchestrator) Client(id domain.ConnID) (domain.Client, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.Registry.Get(id)
}

// Counts reports the number of live connections and routes.
func (o *Orchestrator) Counts() (clients, routes int) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.Registry.Len(), o.Topology.Len()
}
