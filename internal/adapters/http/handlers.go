package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/app"
	"github.com/dkeye/videoapi/internal/app/bridge"
	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/options"
)

const sessionKeyJoined = "joined_session"

type handlers struct {
	facade *app.Facade
	bridge *bridge.Bridge
}

type ActivityRequest struct {
	Type       string         `json:"type" binding:"required"`
	WebpageURL string         `json:"webpageURL"`
	UserInfo   map[string]any `json:"userInfo"`
}

func (a ActivityRequest) activity() (app.Activity, error) {
	act := app.Activity{Type: a.Type, UserInfo: a.UserInfo}
	if a.WebpageURL != "" {
		u, err := url.Parse(a.WebpageURL)
		if err != nil {
			return app.Activity{}, err
		}
		act.WebpageURL = u
	}
	return act, nil
}

type LaunchRequest struct {
	URL               string           `json:"url"`
	SourceApplication string           `json:"sourceApplication"`
	Activity          *ActivityRequest `json:"activity"`
}

type OpenURLRequest struct {
	URL               string `json:"url" binding:"required"`
	SourceApplication string `json:"sourceApplication"`
}

type StateResponse struct {
	State                  string           `json:"state"`
	SessionID              core.SessionID   `json:"sessionId,omitempty"`
	Room                   string           `json:"room,omitempty"`
	Media                  *core.MediaState `json:"media,omitempty"`
	JoinedByClient         bool             `json:"joinedByClient"`
	CrashReportingDisabled bool             `json:"crashReportingDisabled"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func (h *handlers) launch(c *gin.Context) {
	var req LaunchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid launch payload")
			return
		}
	}
	launch := app.LaunchOptions{}
	if req.URL != "" {
		launch[app.LaunchURLKey] = req.URL
	}
	if req.SourceApplication != "" {
		launch[app.LaunchSourceApplicationKey] = req.SourceApplication
	}
	if req.Activity != nil {
		act, err := req.Activity.activity()
		if err != nil {
			badRequest(c, "invalid activity url")
			return
		}
		launch[app.LaunchUserActivityKey] = act
	}
	c.JSON(http.StatusOK, gin.H{"initialized": h.facade.HandleLaunch(c.Request.Context(), launch)})
}

func (h *handlers) openURL(c *gin.Context) {
	var req OpenURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing or invalid url")
		return
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		badRequest(c, "missing or invalid url")
		return
	}
	handled := h.facade.HandleOpenURL(u, app.OpenURLOptions{SourceApplication: req.SourceApplication})
	c.JSON(http.StatusOK, gin.H{"handled": handled})
}

func (h *handlers) continueActivity(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing or invalid activity")
		return
	}
	act, err := req.activity()
	if err != nil {
		badRequest(c, "invalid activity url")
		return
	}
	c.JSON(http.StatusOK, gin.H{"handled": h.facade.HandleContinueActivity(act, nil)})
}

func (h *handlers) initialOptions(c *gin.Context) {
	props, err := h.facade.GetInitialConferenceOptions().Props()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, props)
}

func (h *handlers) join(c *gin.Context) {
	var req options.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid options payload")
		return
	}
	perJoin, err := req.Build()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	sid, err := h.facade.Join(c.Request.Context(), perJoin)
	var missing *options.MissingFieldError
	switch {
	case err == nil:
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": missing.Field.String()})
		return
	case errors.Is(err, app.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("join failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s := sessions.Default(c)
	s.Set(sessionKeyJoined, string(sid))
	if err := s.Save(); err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": sid})
}

func (h *handlers) leave(c *gin.Context) {
	if err := h.facade.Leave(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s := sessions.Default(c)
	s.Delete(sessionKeyJoined)
	_ = s.Save()
	c.Status(http.StatusNoContent)
}

func (h *handlers) state(c *gin.Context) {
	resp := StateResponse{
		State:                  h.facade.State().String(),
		CrashReportingDisabled: h.facade.IsCrashReportingDisabled(),
	}
	if sess, ok := h.facade.ActiveSession(); ok {
		ms := sess.MediaState()
		resp.SessionID = sess.ID()
		resp.Room = sess.Room()
		resp.Media = &ms
		joined, _ := sessions.Default(c).Get(sessionKeyJoined).(string)
		resp.JoinedByClient = joined == string(sess.ID())
	}
	c.JSON(http.StatusOK, resp)
}

// command is accepted whether or not a session is running.
func (h *handlers) command(c *gin.Context) {
	verb := c.Param("verb")
	if err := h.bridge.Dispatch(verb); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": verb})
}
