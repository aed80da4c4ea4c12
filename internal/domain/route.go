package domain

// Route is a directed edge: Receiver accepts audio from Transmitter.
type Route struct {
	Transmitter ConnID `json:"transmitterId"`
	Receiver    ConnID `json:"receiverId"`
}

func (r Route) Touches(id ConnID) bool {
	return r.Transmitter == id || r.Receiver == id
}

// Peer returns the other endpoint of the route as seen from id.
func (r Route) Peer(id ConnID) ConnID {
	if r.Transmitter == id {
		return r.Receiver
	}
	return r.Transmitter
}
