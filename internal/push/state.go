// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package push

// State is the lifecycle position of a Channel.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	// StateClosed is entered through Close. No reconnection is scheduled
	// from it; only an explicit Connect re-arms the channel.
	StateClosed
	// StateFailed is entered when the reconnect policy runs out of attempts.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// active reports whether a socket exists or is being dialled.
func (s State) active() bool {
	return s == StateConnecting || s == StateConnected
}
