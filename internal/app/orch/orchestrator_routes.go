package orch

import (
	"github.com/dkeye/patchbay/internal/app"
	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

// routable reports whether id may be a route endpoint: a registered,
// non-privileged connection.
func (o *Orchestrator) routable(id domain.ConnID) bool {
	c, ok := o.Registry.Get(id)
	return ok && !c.Privileged
}

// ConnectRoute makes receiver listen to transmitter. Only a privileged
// caller may do this; unknown endpoints and self-routes are ignored.
// Reports whether a new edge was added.
func (o *Orchestrator) ConnectRoute(caller, transmitter, receiver domain.ConnID) bool {
	o.mu.Lock()
	if !o.Registry.IsPrivileged(caller) ||
		transmitter == receiver ||
		!o.routable(transmitter) || !o.routable(receiver) {
		o.mu.Unlock()
		log.Debug().Str("module", "orch").Str("sid", string(caller)).Str("transmitter", string(transmitter)).Str("receiver", string(receiver)).Msg("connect route ignored")
		return false
	}
	if !o.Topology.AddRoute(transmitter, receiver) {
		o.mu.Unlock()
		return false
	}
	out := o.newOutbox()
	out.send(transmitter, app.ClassControl, core.BeginSetup{Type: core.EventBeginSetup, PeerID: receiver, Initiator: true})
	out.send(receiver, app.ClassControl, core.BeginSetup{Type: core.EventBeginSetup, PeerID: transmitter, Initiator: false})
	o.pushSnapshot(out)
	o.mu.Unlock()

	out.flush()
	log.Info().Str("module", "orch").Str("transmitter", string(transmitter)).Str("receiver", string(receiver)).Msg("route connected")
	return true
}

// DisconnectRoute removes transmitter -> receiver and tells both ends.
func (o *Orchestrator) DisconnectRoute(caller, transmitter, receiver domain.ConnID) bool {
	o.mu.Lock()
	if !o.Registry.IsPrivileged(caller) || !o.Topology.RemoveRoute(transmitter, receiver) {
		o.mu.Unlock()
		return false
	}
	out := o.newOutbox()
	out.send(transmitter, app.ClassControl, core.PeerRouteEnded{Type: core.EventPeerRouteEnded, PeerID: receiver})
	out.send(receiver, app.ClassControl, core.PeerRouteEnded{Type: core.EventPeerRouteEnded, PeerID: transmitter})
	o.pushSnapshot(out)
	o.mu.Unlock()

	out.flush()
	log.Info().Str("module", "orch").Str("transmitter", string(transmitter)).Str("receiver", string(receiver)).Msg("route disconnected")
	return true
}

// ClearAllRoutes drains the topology. Each endpoint gets one
// peer-route-ended per edge it lost; observers get a single snapshot.
// Returns the number of edges removed.
func (o *Orchestrator) ClearAllRoutes(caller domain.ConnID) int {
	o.mu.Lock()
	if !o.Registry.IsPrivileged(caller) {
		o.mu.Unlock()
		return 0
	}
	out := o.newOutbox()
	removed := o.Topology.ClearAll()
	for _, r := range removed {
		out.send(r.Transmitter, app.ClassControl, core.PeerRouteEnded{Type: core.EventPeerRouteEnded, PeerID: r.Receiver})
		out.send(r.Receiver, app.ClassControl, core.PeerRouteEnded{Type: core.EventPeerRouteEnded, PeerID: r.Transmitter})
	}
	o.pushSnapshot(out)
	o.mu.Unlock()

	out.flush()
	log.Info().Str("module", "orch").Str("sid", string(caller)).Int("routes_removed", len(removed)).Msg("routes cleared")
	return len(removed)
}

// Routes returns a copy of the current topology.
func (o *Orchestrator) Routes() []domain.Route {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.Topology.Routes()
}
