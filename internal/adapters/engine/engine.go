// Package engine is the in-process conferencing engine the SDK drives.
// Media and signaling live elsewhere; this engine keeps the per-session
// control state and answers device queries.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/events"
	"github.com/dkeye/videoapi/internal/options"
)

var (
	ErrNotInitialized = errors.New("engine: Init has not been called")
	errNoEnumerator   = errors.New("engine: no device enumerator configured")
)

type Config struct {
	QueueSize     int           `mapstructure:"command_queue"`
	DeviceTimeout time.Duration `mapstructure:"device_timeout"`
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 32
	}
	if c.DeviceTimeout <= 0 {
		c.DeviceTimeout = 5 * time.Second
	}
	return c
}

type Engine struct {
	cfg     Config
	devices core.DeviceEnumerator
	bus     *events.Bus
	inits   atomic.Int32
}

func New(devices core.DeviceEnumerator, bus *events.Bus, cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults(), devices: devices, bus: bus}
}

func (e *Engine) Init(ctx context.Context) error {
	n := e.inits.Add(1)
	log.Info().Str("module", "engine").Int32("init", n).Int("queue", e.cfg.QueueSize).Msg("engine init")
	return nil
}

// Inits reports how many times Init ran.
func (e *Engine) Inits() int { return int(e.inits.Load()) }

// Start launches a session for opts. The session outlives ctx; it ends on
// Close.
func (e *Engine) Start(ctx context.Context, opts *options.ConferenceOptions) (core.Session, error) {
	if e.inits.Load() == 0 {
		return nil, ErrNotInitialized
	}
	props, err := opts.Props()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sid := core.SessionID(uuid.NewString())
	logger := log.With().
		Str("module", "engine.session").
		Str("sid", string(sid)).
		Logger()

	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &Session{
		id:            sid,
		room:          opts.Room(),
		props:         props,
		cmds:          make(chan core.Command, e.cfg.QueueSize),
		devices:       e.devices,
		deviceTimeout: e.cfg.DeviceTimeout,
		bus:           e.bus,
		logger:        logger,
		ctx:           sessCtx,
		cancel:        cancel,
		done:          make(chan struct{}),
		state: core.MediaState{
			AudioMuted: opts.AudioMuted(),
			VideoMuted: opts.VideoMuted() || opts.AudioOnly(),
		},
	}
	logger.Info().Object("options", opts).Msg("starting session loop")
	go s.loop()
	return s, nil
}
