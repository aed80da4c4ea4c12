package orch

import (
	"github.com/dkeye/patchbay/internal/app"
	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

// buildSnapshot projects registry and topology. Callers hold mu.
func (o *Orchestrator) buildSnapshot() core.Snapshot {
	clients := o.Registry.Clients(true)
	snap := core.Snapshot{
		Clients: make([]core.ClientDTO, 0, len(clients)),
		Routes:  []core.RouteDTO{},
	}
	for _, c := range clients {
		snap.Clients = append(snap.Clients, core.ClientDTO{ID: c.ID, Name: c.Name})
	}
	for _, rx := range o.Topology.Receivers() {
		snap.Routes = append(snap.Routes, core.RouteDTO{
			ReceiverID:     rx,
			TransmitterIDs: o.Topology.RoutesByReceiver(rx),
		})
	}
	return snap
}

// peerList is the id list sent to a freshly registered observer.
func (o *Orchestrator) peerList() core.PeerList {
	ids := o.Registry.AllIDs(true)
	if ids == nil {
		ids = []domain.ConnID{}
	}
	return core.PeerList{Type: core.EventPeerList, IDs: ids}
}

// pushSnapshot queues a fresh snapshot for every observer. With no
// observer registered nothing is built or queued.
func (o *Orchestrator) pushSnapshot(out *outbox) {
	observers := o.Registry.PrivilegedIDs()
	if len(observers) == 0 {
		return
	}
	msg := core.TopologySnapshot{Type: core.EventTopologySnapshot, Snapshot: o.buildSnapshot()}
	for _, id := range observers {
		out.send(id, app.ClassObserver, msg)
	}
	log.Debug().Str("module", "orch").Int("observers", len(observers)).Int("clients", len(msg.Clients)).Int("routes", msg.RouteCount()).Msg("snapshot pushed")
}

// Snapshot returns the observer projection of the current state.
func (o *Orchestrator) Snapshot() core.Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.buildSnapshot()
}

// Resync sends the peer list and a snapshot again to a privileged caller.
// Non-privileged callers are ignored; this never grants privilege.
func (o *Orchestrator) Resync(caller domain.ConnID) bool {
	o.mu.Lock()
	if !o.Registry.IsPrivileged(caller) {
		o.mu.Unlock()
		log.Debug().Str("module", "orch").Str("sid", string(caller)).Msg("resync ignored for unprivileged connection")
		return false
	}
	out := o.newOutbox()
	out.send(caller, app.ClassObserver, o.peerList())
	out.send(caller, app.ClassObserver, core.TopologySnapshot{Type: core.EventTopologySnapshot, Snapshot: o.buildSnapshot()})
	o.mu.Unlock()
	out.flush()
	return true
}
