package orch

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/stretchr/testify/require"
)

var errFull = errors.New("full")

// recorder is a SignalConnection that keeps every frame it is given.
type recorder struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func (r *recorder) TrySend(f core.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full || r.closed {
		return errFull
	}
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *recorder) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.frames = nil
	r.mu.Unlock()
}

type event struct {
	Type      core.EventType   `json:"type"`
	ID        domain.ConnID    `json:"id"`
	IDs       []domain.ConnID  `json:"ids"`
	PeerID    domain.ConnID    `json:"peerId"`
	Initiator bool             `json:"initiator"`
	From      domain.ConnID    `json:"from"`
	Payload   json.RawMessage  `json:"payload"`
	Clients   []core.ClientDTO `json:"clients"`
	Routes    []core.RouteDTO  `json:"routes"`
}

func (r *recorder) events(t *testing.T) []event {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event, 0, len(r.frames))
	for _, f := range r.frames {
		var ev event
		require.NoError(t, json.Unmarshal(f, &ev))
		out = append(out, ev)
	}
	return out
}

func (r *recorder) ofType(t *testing.T, typ core.EventType) []event {
	t.Helper()
	var out []event
	for _, ev := range r.events(t) {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// lastSnapshot returns the most recent topology-snapshot frame.
func (r *recorder) lastSnapshot(t *testing.T) event {
	t.Helper()
	snaps := r.ofType(t, core.EventTopologySnapshot)
	require.NotEmpty(t, snaps, "no snapshot received")
	return snaps[len(snaps)-1]
}

type harness struct {
	o     *Orchestrator
	conns map[domain.ConnID]*recorder
}

func newHarness() *harness {
	return &harness{o: New(nil), conns: make(map[domain.ConnID]*recorder)}
}

func (h *harness) client(name string) (domain.ConnID, *recorder) {
	rec := &recorder{}
	id := h.o.Connect(rec, name, false)
	h.conns[id] = rec
	return id, rec
}

func (h *harness) observer() (domain.ConnID, *recorder) {
	rec := &recorder{}
	id := h.o.Connect(rec, "", true)
	h.conns[id] = rec
	return id, rec
}

func (h *harness) resetAll() {
	for _, rec := range h.conns {
		rec.reset()
	}
}

// snapshotEdges flattens the grouped routes of a snapshot.
func snapshotEdges(ev event) []domain.Route {
	var out []domain.Route
	for _, r := range ev.Routes {
		for _, tx := range r.TransmitterIDs {
			out = append(out, domain.Route{Transmitter: tx, Receiver: r.ReceiverID})
		}
	}
	return out
}

func clientIDs(ev event) []domain.ConnID {
	out := make([]domain.ConnID, 0, len(ev.Clients))
	for _, c := range ev.Clients {
		out = append(out, c.ID)
	}
	return out
}
