package signal

import (
	"encoding/json"

	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleAddRoute(sid domain.ConnID, conn *WsSignalConn, data []byte) {
	var p routeRequest
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad add-route payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.Orch.ConnectRoute(sid, p.TransmitterID, p.ReceiverID)
}

func (ctl *SignalWSController) handleRemoveRoute(sid domain.ConnID, conn *WsSignalConn, data []byte) {
	var p routeRequest
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad remove-route payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.Orch.DisconnectRoute(sid, p.TransmitterID, p.ReceiverID)
}

// handleRelay forwards the raw payload; it is never inspected here.
func (ctl *SignalWSController) handleRelay(sid domain.ConnID, conn *WsSignalConn, data []byte) {
	var p signalRequest
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad signal payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if p.Target == "" {
		return
	}
	ctl.Orch.Relay(sid, p.Target, p.Payload)
}
