package orch

import (
	"encoding/json"

	"github.com/dkeye/patchbay/internal/app"
	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards an opaque handshake payload from one connection to
// another, tagged with the sender's id. A missing sender or target drops
// the payload silently. Reports whether the payload was handed to the
// target's queue.
func (o *Orchestrator) Relay(from, to domain.ConnID, payload json.RawMessage) bool {
	o.mu.RLock()
	if from == to || !o.Registry.Has(from) || !o.Registry.Has(to) {
		o.mu.RUnlock()
		log.Debug().Str("module", "orch").Str("sid", string(from)).Str("target", string(to)).Msg("relay dropped")
		return false
	}
	out := o.newOutbox()
	queued := out.send(to, app.ClassSignal, core.SignalPayload{Type: core.EventSignalPayload, From: from, Payload: payload})
	o.mu.RUnlock()

	out.flush()
	return queued
}
