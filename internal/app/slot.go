package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/core"
)

type SessionState int32

const (
	StateIdle SessionState = iota
	StateConfiguring
	StateActive
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfiguring:
		return "configuring"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// sessionSlot holds the process's single session. Writers go through
// claim/activate/release/take; a successful claim is the only way into
// StateConfiguring, so two joins cannot both win.
type sessionSlot struct {
	mu      sync.RWMutex
	state   SessionState
	session core.Session
}

func (s *sessionSlot) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return false
	}
	s.state = StateConfiguring
	log.Debug().Str("module", "app.slot").Msg("slot claimed")
	return true
}

func (s *sessionSlot) activate(sess core.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateActive
	s.session = sess
	log.Info().Str("module", "app.slot").Str("sid", string(sess.ID())).Msg("session active")
}

func (s *sessionSlot) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.session = nil
	log.Debug().Str("module", "app.slot").Msg("slot released")
}

// take empties an active slot and returns the session it held.
func (s *sessionSlot) take() core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return nil
	}
	sess := s.session
	s.state = StateIdle
	s.session = nil
	log.Info().Str("module", "app.slot").Str("sid", string(sess.ID())).Msg("session taken")
	return sess
}

// clearIf empties the slot only if it still holds sess.
func (s *sessionSlot) clearIf(sess core.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || s.session != sess {
		return false
	}
	s.state = StateIdle
	s.session = nil
	return true
}

func (s *sessionSlot) current() (core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateActive {
		return nil, false
	}
	return s.session, true
}

func (s *sessionSlot) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
