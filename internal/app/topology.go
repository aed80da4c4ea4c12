package app

import (
	"sort"

	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

type idSet map[domain.ConnID]struct{}

func (s idSet) sorted() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Topology holds the directed routes, indexed both ways.
// byReceiver[r] is the set of transmitters feeding r, byTransmitter[t]
// the set of receivers t feeds. Both indexes always describe the same edges.
// Like Registry it relies on the orchestrator for serialization.
type Topology struct {
	byReceiver    map[domain.ConnID]idSet
	byTransmitter map[domain.ConnID]idSet
	size          int
}

func NewTopology() *Topology {
	return &Topology{
		byReceiver:    make(map[domain.ConnID]idSet),
		byTransmitter: make(map[domain.ConnID]idSet),
	}
}

// AddRoute inserts t -> r. Returns false for a self-loop or an existing edge.
func (t *Topology) AddRoute(transmitter, receiver domain.ConnID) bool {
	if transmitter == receiver || transmitter == "" || receiver == "" {
		return false
	}
	if _, ok := t.byReceiver[receiver][transmitter]; ok {
		return false
	}
	link(t.byReceiver, receiver, transmitter)
	link(t.byTransmitter, transmitter, receiver)
	t.size++
	log.Debug().Str("module", "app.topology").Str("transmitter", string(transmitter)).Str("receiver", string(receiver)).Msg("route added")
	return true
}

func (t *Topology) RemoveRoute(transmitter, receiver domain.ConnID) bool {
	if _, ok := t.byReceiver[receiver][transmitter]; !ok {
		return false
	}
	unlink(t.byReceiver, receiver, transmitter)
	unlink(t.byTransmitter, transmitter, receiver)
	t.size--
	log.Debug().Str("module", "app.topology").Str("transmitter", string(transmitter)).Str("receiver", string(receiver)).Msg("route removed")
	return true
}

func (t *Topology) HasRoute(transmitter, receiver domain.ConnID) bool {
	_, ok := t.byReceiver[receiver][transmitter]
	return ok
}

// RemoveAllRoutesFor drops every edge touching id and returns them:
// first the ones where id receives, then the ones where it transmits.
func (t *Topology) RemoveAllRoutesFor(id domain.ConnID) []domain.Route {
	var removed []domain.Route
	for _, tx := range t.byReceiver[id].sorted() {
		removed = append(removed, domain.Route{Transmitter: tx, Receiver: id})
	}
	for _, rx := range t.byTransmitter[id].sorted() {
		removed = append(removed, domain.Route{Transmitter: id, Receiver: rx})
	}
	for _, r := range removed {
		t.RemoveRoute(r.Transmitter, r.Receiver)
	}
	return removed
}

// RoutesByReceiver answers "who feeds me".
func (t *Topology) RoutesByReceiver(id domain.ConnID) []domain.ConnID {
	return t.byReceiver[id].sorted()
}

// RoutesByTransmitter answers "who do I feed".
func (t *Topology) RoutesByTransmitter(id domain.ConnID) []domain.ConnID {
	return t.byTransmitter[id].sorted()
}

// ClearAll drains the store and returns every edge it held.
func (t *Topology) ClearAll() []domain.Route {
	removed := t.Routes()
	t.byReceiver = make(map[domain.ConnID]idSet)
	t.byTransmitter = make(map[domain.ConnID]idSet)
	t.size = 0
	return removed
}

// Routes lists every edge ordered by receiver, then transmitter.
func (t *Topology) Routes() []domain.Route {
	out := make([]domain.Route, 0, t.size)
	for _, rx := range t.Receivers() {
		for _, tx := range t.byReceiver[rx].sorted() {
			out = append(out, domain.Route{Transmitter: tx, Receiver: rx})
		}
	}
	return out
}

// Receivers lists every id that currently has at least one transmitter.
func (t *Topology) Receivers() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(t.byReceiver))
	for rx := range t.byReceiver {
		out = append(out, rx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *Topology) Len() int { return t.size }

func link(index map[domain.ConnID]idSet, key, val domain.ConnID) {
	set, ok := index[key]
	if !ok {
		set = make(idSet)
		index[key] = set
	}
	set[val] = struct{}{}
}

func unlink(index map[domain.ConnID]idSet, key, val domain.ConnID) {
	set := index[key]
	delete(set, val)
	if len(set) == 0 {
		delete(index, key)
	}
}
