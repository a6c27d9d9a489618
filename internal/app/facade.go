package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/events"
	"github.com/dkeye/videoapi/internal/options"
)

var (
	ErrSessionBusy        = errors.New("app: a conference session is already configuring or active")
	ErrDefaultsAlreadySet = errors.New("app: default conference options already set")
)

type Option func(*Facade)

func WithRouting(r Routing) Option {
	return func(f *Facade) {
		f.routing = r
	}
}

// WithCrashReportingDisabled sets the static crash reporting opt-out.
func WithCrashReportingDisabled(disabled bool) Option {
	return func(f *Facade) {
		f.crashReportingDisabled = disabled
	}
}

// Facade owns the process-wide SDK state: default options, deep-link
// routing and the single session slot. Build one per process with
// NewFacade and hand it to collaborators.
type Facade struct {
	engine core.Engine
	bus    *events.Bus

	routing                Routing
	crashReportingDisabled bool

	launchOnce   sync.Once
	launchResult bool

	defaults atomic.Pointer[options.ConferenceOptions]

	initialMu sync.RWMutex
	initial   *options.ConferenceOptions

	slot sessionSlot
}

func NewFacade(engine core.Engine, bus *events.Bus, opts ...Option) *Facade {
	f := &Facade{engine: engine, bus: bus}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Facade) Routing() Routing { return f.routing }

// SetDefaultConferenceOptions installs the options merged into every join.
// Defaults are set once and read many times.
func (f *Facade) SetDefaultConferenceOptions(o *options.ConferenceOptions) error {
	if err := o.Check(); err != nil {
		return err
	}
	if !f.defaults.CompareAndSwap(nil, o) {
		return ErrDefaultsAlreadySet
	}
	log.Info().Str("module", "app.facade").Object("defaults", o).Msg("default conference options set")
	return nil
}

// DefaultConferenceOptions returns the defaults, or nil if none were set.
func (f *Facade) DefaultConferenceOptions() *options.ConferenceOptions {
	return f.defaults.Load()
}

// IsCrashReportingDisabled is a pure read of the static opt-out switch.
func (f *Facade) IsCrashReportingDisabled() bool {
	return f.crashReportingDisabled
}

// GetInitialConferenceOptions returns the options resolved from the most
// recent deep link or activity, or empty options when there is none.
func (f *Facade) GetInitialConferenceOptions() *options.ConferenceOptions {
	f.initialMu.RLock()
	o := f.initial
	f.initialMu.RUnlock()
	if o == nil {
		return options.FromBuilder(nil)
	}
	return o
}

func (f *Facade) setInitial(o *options.ConferenceOptions, source string) {
	f.initialMu.Lock()
	f.initial = o
	f.initialMu.Unlock()
	log.Info().Str("module", "app.facade").Str("source", source).Object("options", o).Msg("deep link resolved")
	f.bus.Publish(events.New(events.DeepLinkResolved, "", map[string]string{
		"source": source,
		"room":   o.Room(),
	}))
}

func (f *Facade) State() SessionState { return f.slot.State() }

// ActiveSession returns the running session, if any.
func (f *Facade) ActiveSession() (core.Session, bool) {
	return f.slot.current()
}

// Join merges perJoin over the defaults and starts a session with the
// result. Only one session may be configuring or active at a time.
func (f *Facade) Join(ctx context.Context, perJoin *options.ConferenceOptions) (core.SessionID, error) {
	merged, err := options.Merge(f.DefaultConferenceOptions(), perJoin)
	if err != nil {
		return "", err
	}
	if err := options.Require(merged, options.FieldRoom); err != nil {
		return "", err
	}
	if !f.slot.claim() {
		log.Warn().Str("module", "app.facade").Str("room", merged.Room()).Msg("join rejected, slot busy")
		return "", ErrSessionBusy
	}

	f.bus.Publish(events.New(events.ConferenceWillJoin, "", map[string]string{"room": merged.Room()}))
	sess, err := f.engine.Start(ctx, merged)
	if err != nil {
		f.slot.release()
		f.bus.Publish(events.New(events.ConferenceFailed, "", map[string]string{"room": merged.Room()}).WithErr(err))
		log.Error().Err(err).Str("module", "app.facade").Str("room", merged.Room()).Msg("session start failed")
		return "", fmt.Errorf("app: start session: %w", err)
	}
	f.slot.activate(sess)
	f.bus.Publish(events.New(events.ConferenceJoined, sess.ID(), map[string]string{"room": sess.Room()}))
	go f.watch(sess)

	return sess.ID(), nil
}

// watch frees the slot when the engine ends a session on its own.
func (f *Facade) watch(sess core.Session) {
	done := sess.Done()
	if done == nil {
		return
	}
	<-done
	if f.slot.clearIf(sess) {
		log.Info().Str("module", "app.facade").Str("sid", string(sess.ID())).Msg("session ended by engine")
		f.bus.Publish(events.New(events.ConferenceLeft, sess.ID(), nil))
	}
}

// Leave stops the active session. Without one it does nothing.
func (f *Facade) Leave(ctx context.Context) error {
	sess := f.slot.take()
	if sess == nil {
		return nil
	}
	err := sess.Close()
	f.bus.Publish(events.New(events.ConferenceLeft, sess.ID(), nil).WithErr(err))
	if err != nil {
		return fmt.Errorf("app: close session %s: %w", sess.ID(), err)
	}
	return nil
}
