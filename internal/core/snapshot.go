package core

import "github.com/dkeye/patchbay/internal/domain"

// ClientDTO is a read-only view for APIs (no transport fields).
type ClientDTO struct {
	ID   domain.ConnID `json:"id"`
	Name string        `json:"name"`
}

// RouteDTO groups every transmitter feeding one receiver.
type RouteDTO struct {
	ReceiverID     domain.ConnID   `json:"receiverId"`
	TransmitterIDs []domain.ConnID `json:"transmitterIds"`
}

// Snapshot is the observer's projection of registry and topology.
// It is always rebuilt from source state, never patched.
type Snapshot struct {
	Clients []ClientDTO `json:"clients"`
	Routes  []RouteDTO  `json:"routes"`
}

// RouteCount returns the number of individual edges in the snapshot.
func (s Snapshot) RouteCount() int {
	n := 0
	for _, r := range s.Routes {
		n += len(r.TransmitterIDs)
	}
	return n
}
