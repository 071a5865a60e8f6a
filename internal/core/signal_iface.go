package core

import "errors"

// Frame is a raw serialized envelope.
type Frame []byte

var (
	// ErrBackpressure is returned by TrySend when the peer's outbound buffer
	// is full; the frame is dropped, the connection stays up.
	ErrBackpressure = errors.New("backpressure")
	// ErrConnClosed is returned by TrySend after the connection was closed.
	ErrConnClosed = errors.New("connection closed")
)

// SignalConnection abstracts for a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
