package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/events"
)

// Session processes commands one at a time on its own goroutine.
type Session struct {
	id    core.SessionID
	room  string
	props map[string]any

	cmds          chan core.Command
	devices       core.DeviceEnumerator
	deviceTimeout time.Duration
	bus           *events.Bus
	logger        zerolog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu    sync.RWMutex
	state core.MediaState
}

func (s *Session) ID() core.SessionID    { return s.id }
func (s *Session) Room() string          { return s.room }
func (s *Session) Done() <-chan struct{} { return s.done }

// Props is the conference props the session was started with.
func (s *Session) Props() map[string]any { return s.props }

func (s *Session) MediaState() core.MediaState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Dispatch(cmd core.Command) error {
	if s.ctx.Err() != nil {
		return core.ErrSessionClosed
	}
	select {
	case s.cmds <- cmd:
		return nil
	case <-s.ctx.Done():
		return core.ErrSessionClosed
	default:
		return core.ErrQueueFull
	}
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
	})
	<-s.done
	return nil
}

func (s *Session) loop() {
	defer func() {
		s.wg.Wait()
		close(s.done)
		s.logger.Info().Msg("session loop exited")
	}()
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info().Msg("session ctx done")
			return
		case cmd := <-s.cmds:
			s.handle(cmd)
		}
	}
}

func (s *Session) handle(cmd core.Command) {
	if cmd == core.CmdGetDevicesList {
		s.wg.Add(1)
		go s.enumerateDevices()
		return
	}

	s.mu.Lock()
	s.state = s.state.Apply(cmd)
	snap := s.state
	s.mu.Unlock()

	s.logger.Debug().
		Str("command", string(cmd)).
		Bool("audio_muted", snap.AudioMuted).
		Bool("video_muted", snap.VideoMuted).
		Bool("hand_raised", snap.HandRaised).
		Bool("tile_view", snap.TileView).
		Msg("command applied")
	s.bus.Publish(events.New(events.MediaStateChanged, s.id, snap))
}

// enumerateDevices reports the device list, or an empty list with the
// error, on the event bus.
func (s *Session) enumerateDevices() {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.deviceTimeout)
	defer cancel()

	var (
		list []core.DeviceInfo
		err  error
	)
	if s.devices == nil {
		err = errNoEnumerator
	} else {
		list, err = s.devices.EnumerateDevices(ctx)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("device enumeration failed")
		s.bus.Publish(events.New(events.DevicesListUpdated, s.id, []core.DeviceInfo{}).WithErr(err))
		return
	}
	if list == nil {
		list = []core.DeviceInfo{}
	}
	s.logger.Debug().Int("devices", len(list)).Msg("devices enumerated")
	s.bus.Publish(events.New(events.DevicesListUpdated, s.id, list))
}
