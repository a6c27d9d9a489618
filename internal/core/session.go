// Package core defines the boundary between the host-facing SDK and the
// embedded conferencing engine.
package core

import (
	"context"
	"errors"

	"github.com/dkeye/videoapi/internal/options"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/dkeye/videoapi/internal/core Engine,Session,DeviceEnumerator

var (
	ErrSessionClosed = errors.New("session closed")
	ErrQueueFull     = errors.New("session command queue full")
)

type SessionID string

// MediaState is the local participant's toggleable state inside a session.
type MediaState struct {
	AudioMuted bool `json:"audioMuted"`
	VideoMuted bool `json:"videoMuted"`
	HandRaised bool `json:"handRaised"`
	TileView   bool `json:"tileView"`
}

// Session is a live engine instance bound to one room.
type Session interface {
	ID() SessionID
	Room() string
	// Dispatch enqueues cmd on the session's command queue and returns
	// without waiting for it to run.
	Dispatch(cmd Command) error
	// MediaState returns the state after the last processed command.
	MediaState() MediaState
	// Close stops the session and waits for its loop to exit. Commands
	// still queued are dropped.
	Close() error
	Done() <-chan struct{}
}

// Engine starts sessions. Init is called once per process, before the
// first Start.
type Engine interface {
	Init(ctx context.Context) error
	Start(ctx context.Context, opts *options.ConferenceOptions) (Session, error)
}
