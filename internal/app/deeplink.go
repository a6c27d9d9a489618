package app

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dkeye/videoapi/internal/options"
)

// Routing tells the facade which inbound URLs and activities are
// conference-join intents.
type Routing struct {
	ConferenceActivityType string   `mapstructure:"conference_activity_type"`
	CustomURLScheme        string   `mapstructure:"custom_url_scheme"`
	UniversalLinkDomains   []string `mapstructure:"universal_link_domains"`
}

// matches reports whether u is a deep link for this host.
func (r Routing) matches(u *url.URL) bool {
	if u == nil || u.Scheme == "" {
		return false
	}
	if r.CustomURLScheme != "" && strings.EqualFold(u.Scheme, r.CustomURLScheme) {
		return true
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	host := u.Hostname()
	for _, d := range r.UniversalLinkDomains {
		if d != "" && strings.EqualFold(host, d) {
			return true
		}
	}
	return false
}

// roomFromURL returns the last non-empty path segment, or the host for
// links of the form "scheme://room".
func roomFromURL(u *url.URL, customScheme string) string {
	p := strings.Trim(u.Path, "/")
	if p == "" && u.Opaque != "" {
		p = strings.Trim(u.Opaque, "/")
	}
	if p != "" {
		return path.Base(p)
	}
	if customScheme != "" && strings.EqualFold(u.Scheme, customScheme) {
		return u.Host
	}
	return ""
}

// optionsFromURL turns a join link into options. Recognised query keys:
// jwt (or token), apiID, apiKey, subject, audioMuted, videoMuted, audioOnly.
// Malformed booleans are ignored.
func optionsFromURL(u *url.URL, customScheme string) *options.ConferenceOptions {
	q := u.Query()
	apiID, apiKey := q.Get("apiID"), q.Get("apiKey")
	room := options.NormalizeRoom(roomFromURL(u, customScheme), apiID, apiKey)

	return options.FromBuilder(func(b *options.Builder) {
		if room != "" {
			b.SetRoom(room)
		}
		if apiID != "" {
			b.SetAPIID(apiID)
		}
		if apiKey != "" {
			b.SetAPIKey(apiKey)
		}
		token := q.Get("jwt")
		if token == "" {
			token = q.Get("token")
		}
		if token != "" {
			b.SetToken(token)
		}
		if s := q.Get("subject"); s != "" {
			b.SetSubject(s)
		}
		if v, ok := queryBool(q, "audioMuted"); ok {
			b.SetAudioMuted(v)
		}
		if v, ok := queryBool(q, "videoMuted"); ok {
			b.SetVideoMuted(v)
		}
		if v, ok := queryBool(q, "audioOnly"); ok {
			b.SetAudioOnly(v)
		}
	})
}

func queryBool(q url.Values, key string) (bool, bool) {
	if !q.Has(key) {
		return false, false
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return false, false
	}
	return v, true
}
