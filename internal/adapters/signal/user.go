package signal

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRename(
	sid domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p renameRequest
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad rename payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	if err := ctl.Orch.Rename(sid, p.Name); err != nil {
		switch {
		case errors.Is(err, domain.ErrNameEmpty):
			ctl.sendError(conn, "empty name")
		default:
			ctl.sendError(conn, "invalid_name")
		}
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.Name).Msg("rename")
	ctl.handleWhoAmI(sid, conn)
}

func (ctl *SignalWSController) handleWhoAmI(
	sid domain.ConnID,
	conn *WsSignalConn,
) {
	client, ok := ctl.Orch.Client(sid)
	if !ok {
		return
	}

	ctl.sendJSON(conn, core.WhoAmI{
		Type:       core.EventWhoAmI,
		ID:         client.ID,
		Name:       client.Name,
		Privileged: client.Privileged,
	})
}
