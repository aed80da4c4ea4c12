package signal

import "github.com/dkeye/patchbay/internal/core"

// handlePing answers the application level ping. Websocket ping frames
// are handled by the pumps.
func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendJSON(conn, core.Pong{Type: core.EventPong})
}
