package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *EventsWSController) writePump(ctx context.Context, c *WsConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			c.Close()
			return
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Info().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *EventsWSController) readPump(ctx context.Context, cancel context.CancelFunc, client string, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("client", client).Msg("readPump closing")
		cancel()
		c.Close()
	}()

	pongWait := ctl.pingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("client", client).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("client", client).Msg("readPump read error")
				}
				return
			}
			ctl.handleMessage(client, c, data)
		}
	}
}

func (ctl *EventsWSController) handleMessage(client string, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "bad_json")
		return
	}

	switch env.Type {
	case "command":
		ctl.handleCommand(client, c, data)
	case "state":
		ctl.handleState(c)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown message")
		ctl.sendError(c, "unknown_type")
	}
}

func (ctl *EventsWSController) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("sendJSON dropped")
	}
}

func (ctl *EventsWSController) sendError(c *WsConn, code string) {
	ctl.sendJSON(c, map[string]any{
		"type":  "error",
		"error": code,
	})
}
