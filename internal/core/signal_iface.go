package core

// Frame is one encoded server-to-client message.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
// TrySend must never block: it enqueues or fails.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
