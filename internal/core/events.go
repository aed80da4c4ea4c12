package core

import (
	"encoding/json"

	"github.com/dkeye/patchbay/internal/domain"
)

// EventType names a server-to-client message.
type EventType string

const (
	EventIdentityAssigned EventType = "identity-assigned"
	EventPeerList         EventType = "peer-list"
	EventTopologySnapshot EventType = "topology-snapshot"
	EventPeerJoined       EventType = "peer-joined"
	EventPeerLeft         EventType = "peer-left"
	EventBeginSetup       EventType = "begin-setup"
	EventPeerRouteEnded   EventType = "peer-route-ended"
	EventSignalPayload    EventType = "signal-payload"
	EventWhoAmI           EventType = "whoami"
	EventPong             EventType = "pong"
	EventError            EventType = "error"
)

type IdentityAssigned struct {
	Type EventType     `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type PeerList struct {
	Type EventType       `json:"type"`
	IDs  []domain.ConnID `json:"ids"`
}

type TopologySnapshot struct {
	Type EventType `json:"type"`
	Snapshot
}

// PeerMembership is used for both peer-joined and peer-left.
type PeerMembership struct {
	Type EventType     `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type BeginSetup struct {
	Type      EventType     `json:"type"`
	PeerID    domain.ConnID `json:"peerId"`
	Initiator bool          `json:"initiator"`
}

type PeerRouteEnded struct {
	Type   EventType     `json:"type"`
	PeerID domain.ConnID `json:"peerId"`
}

// SignalPayload carries an opaque handshake blob. Payload is never decoded.
type SignalPayload struct {
	Type    EventType       `json:"type"`
	From    domain.ConnID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type WhoAmI struct {
	Type       EventType     `json:"type"`
	ID         domain.ConnID `json:"id"`
	Name       string        `json:"name"`
	Privileged bool          `json:"privileged"`
}

type Pong struct {
	Type EventType `json:"type"`
}

// ErrorReply answers a malformed or invalid request.
type ErrorReply struct {
	Type  EventType `json:"type"`
	Error string    `json:"error"`
}

// Encode marshals a message into a frame.
func Encode(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}
