package signal

import (
	"encoding/json"

	"github.com/dkeye/patchbay/internal/domain"
)

type messageType string

const (
	msgDeclarePrivileged messageType = "declare-privileged"
	msgSignal            messageType = "signal"
	msgAddRoute          messageType = "add-route"
	msgRemoveRoute       messageType = "remove-route"
	msgClearAllRoutes    messageType = "clear-all-routes"
	msgRename            messageType = "rename"
	msgWhoAmI            messageType = "whoami"
	msgPing              messageType = "ping"
)

type envelope struct {
	Type messageType `json:"type"`
}

// signalRequest addresses an opaque payload to another connection.
// Payload stays raw JSON all the way to the recipient.
type signalRequest struct {
	Target  domain.ConnID   `json:"target"`
	Payload json.RawMessage `json:"payload"`
}

type routeRequest struct {
	TransmitterID domain.ConnID `json:"transmitterId"`
	ReceiverID    domain.ConnID `json:"receiverId"`
}

type renameRequest struct {
	Name string `json:"name"`
}
