package app

import "github.com/dkeye/patchbay/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

func (a BackpressureAction) String() string {
	switch a {
	case DropFrame:
		return "drop"
	case KickMember:
		return "kick"
	default:
		return "none"
	}
}

// MessageClass tells the policy what kind of frame could not be queued.
type MessageClass int

const (
	// ClassSignal is a relayed handshake payload.
	ClassSignal MessageClass = iota
	// ClassControl covers begin-setup, peer-route-ended and similar instructions.
	ClassControl
	// ClassObserver covers snapshots and membership deltas sent to observers.
	ClassObserver
)

type Policy interface {
	OnBackPressure(target domain.ConnID, class MessageClass) BackpressureAction
}

// SimplePolicy drops relayed payloads and kicks recipients that miss
// control or observer frames.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ domain.ConnID, class MessageClass) BackpressureAction {
	if class == ClassSignal {
		return DropFrame
	}
	return KickMember
}
