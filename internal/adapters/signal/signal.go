// Package signal is the websocket channel between the engine UI and the
// host. Bus events stream out; bridge verbs come in.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/app"
	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/events"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Commander runs bridge verbs by wire name.
type Commander interface {
	Dispatch(name string) error
}

// StateSource reports the session slot.
type StateSource interface {
	State() app.SessionState
	ActiveSession() (core.Session, bool)
}

type Config struct {
	ReadLimit    int64
	PingPeriod   time.Duration
	RateLimit    int
	RateInterval time.Duration
	// Policy defaults to SimplePolicy{MaxDropped: 64}.
	Policy Policy
}

type EventsWSController struct {
	commands Commander
	state    StateSource
	bus      *events.Bus
	limiter  *RateLimiter
	policy   Policy

	readLimit  int64
	pingPeriod time.Duration
}

func NewEventsWSController(commands Commander, state StateSource, bus *events.Bus, cfg Config) *EventsWSController {
	if cfg.PingPeriod <= 0 {
		cfg.PingPeriod = 54 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 20
	}
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = time.Second
	}
	if cfg.Policy == nil {
		cfg.Policy = SimplePolicy{MaxDropped: 64}
	}
	return &EventsWSController{
		commands:   commands,
		state:      state,
		bus:        bus,
		limiter:    NewRateLimiter(cfg.RateLimit, cfg.RateInterval),
		policy:     cfg.Policy,
		readLimit:  cfg.ReadLimit,
		pingPeriod: cfg.PingPeriod,
	}
}

type WsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(b []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- b:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleEvents upgrades the request and serves the connection until the
// peer goes away or ctx ends.
func (ctl *EventsWSController) HandleEvents(ctx context.Context, c *gin.Context) {
	client := c.GetString("client_token")
	log.Info().Str("module", "signal").Str("client", client).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.readLimit > 0 {
		ws.SetReadLimit(ctl.readLimit)
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan []byte, 32),
	}
	sub := ctl.bus.Subscribe(64)
	ctx, cancel := context.WithCancel(ctx)

	go ctl.forwardEvents(ctx, client, conn, sub)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, client, conn)
}

// forwardEvents streams bus events to the client. A full send buffer is
// handed to the backpressure policy.
func (ctl *EventsWSController) forwardEvents(ctx context.Context, client string, c *WsConn, sub *events.Subscription) {
	defer ctl.bus.Unsubscribe(sub)

	dropped := 0
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub.C:
			if !ok {
				return
			}
			b, err := json.Marshal(e)
			if err != nil {
				log.Error().Err(err).Str("module", "signal").Str("event", string(e.Kind)).Msg("event marshal")
				continue
			}
			switch err := c.TrySend(b); {
			case err == nil:
				dropped = 0
			case errors.Is(err, ErrBackpressure):
				dropped++
				if ctl.policy.OnBackpressure(client, dropped) == Disconnect {
					log.Warn().Str("module", "signal").Str("client", client).Int("dropped", dropped).Msg("slow client disconnected")
					c.Close()
					return
				}
				log.Debug().Str("module", "signal").Str("client", client).Str("event", string(e.Kind)).Msg("event dropped")
			default:
				return
			}
		}
	}
}
