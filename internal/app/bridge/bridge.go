// Package bridge routes control verbs from host code and engine UI to the
// active conference session.
package bridge

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/events"
)

var ErrUnknownCommand = errors.New("bridge: unknown command")

// SessionSource resolves the session commands go to.
type SessionSource interface {
	ActiveSession() (core.Session, bool)
}

// Bridge is stateless: every verb looks up the active session at call time.
// Verbs never fail; with no session they do nothing.
type Bridge struct {
	sessions SessionSource
	bus      *events.Bus
}

func New(sessions SessionSource, bus *events.Bus) *Bridge {
	return &Bridge{sessions: sessions, bus: bus}
}

// GetDevicesList asks the session to enumerate devices. The list arrives
// later as an events.DevicesListUpdated event.
func (b *Bridge) GetDevicesList() { b.send(core.CmdGetDevicesList) }

func (b *Bridge) ToggleAudio()     { b.send(core.CmdToggleAudio) }
func (b *Bridge) ToggleVideo()     { b.send(core.CmdToggleVideo) }
func (b *Bridge) ToggleRaiseHand() { b.send(core.CmdToggleRaiseHand) }
func (b *Bridge) ToggleTileView()  { b.send(core.CmdToggleTileView) }

// Dispatch runs the verb with the given wire name, e.g. "vToggleAudio".
// Only an unknown name is an error.
func (b *Bridge) Dispatch(name string) error {
	cmd, ok := core.ParseCommand(name)
	if !ok {
		log.Warn().Str("module", "bridge").Str("command", name).Msg("unknown command")
		return ErrUnknownCommand
	}
	b.send(cmd)
	return nil
}

func (b *Bridge) send(cmd core.Command) {
	sess, ok := b.sessions.ActiveSession()
	if !ok || sess == nil {
		log.Debug().Str("module", "bridge").Str("command", string(cmd)).Msg("no active session, dropped")
		return
	}
	if err := sess.Dispatch(cmd); err != nil {
		log.Warn().Err(err).Str("module", "bridge").Str("sid", string(sess.ID())).Str("command", string(cmd)).Msg("dispatch failed")
		b.bus.Publish(events.New(events.CommandDispatchFail, sess.ID(), map[string]string{"command": string(cmd)}).WithErr(err))
		return
	}
	log.Debug().Str("module", "bridge").Str("sid", string(sess.ID())).Str("command", string(cmd)).Msg("dispatched")
}
