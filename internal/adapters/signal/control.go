package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/app/bridge"
	"github.com/dkeye/videoapi/internal/core"
)

func (ctl *EventsWSController) handlePing(c *WsConn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(c, resp)
}

func (ctl *EventsWSController) handleCommand(client string, c *WsConn, data []byte) {
	var p struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad command payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if !ctl.limiter.Allow(client) {
		log.Warn().Str("module", "signal").Str("client", client).Str("command", p.Name).Msg("rate limited")
		ctl.sendError(c, "rate_limited")
		return
	}
	if err := ctl.commands.Dispatch(p.Name); err != nil {
		if errors.Is(err, bridge.ErrUnknownCommand) {
			ctl.sendError(c, "unknown_command")
			return
		}
		ctl.sendError(c, "dispatch_failed")
		return
	}
	ctl.sendJSON(c, map[string]any{
		"type": "ack",
		"name": p.Name,
	})
}

func (ctl *EventsWSController) handleState(c *WsConn) {
	resp := struct {
		Type    string           `json:"type"`
		State   string           `json:"state"`
		Session core.SessionID   `json:"sessionId,omitempty"`
		Room    string           `json:"room,omitempty"`
		Media   *core.MediaState `json:"media,omitempty"`
	}{
		Type:  "state",
		State: ctl.state.State().String(),
	}
	if sess, ok := ctl.state.ActiveSession(); ok {
		ms := sess.MediaState()
		resp.Session = sess.ID()
		resp.Room = sess.Room()
		resp.Media = &ms
	}
	ctl.sendJSON(c, resp)
}
