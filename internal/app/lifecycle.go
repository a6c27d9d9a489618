package app

import (
	"context"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/options"
)

// Launch option keys understood by HandleLaunch.
const (
	LaunchURLKey               = "url"
	LaunchSourceApplicationKey = "sourceApplication"
	LaunchUserActivityKey      = "userActivity"
)

// ActivityTypeBrowsingWeb is the platform activity type for universal links.
const ActivityTypeBrowsingWeb = "NSUserActivityTypeBrowsingWeb"

// LaunchOptions is the mapping the host receives when the process starts.
type LaunchOptions map[string]any

// OpenURLOptions accompanies a URL handed to the host by another app.
type OpenURLOptions struct {
	SourceApplication string
	Annotation        any
}

// Activity is a continued user activity (handoff, Siri, universal link).
type Activity struct {
	Type       string
	WebpageURL *url.URL
	UserInfo   map[string]any
}

// RestorationHandler receives objects to restore after an activity has
// been continued.
type RestorationHandler func(restorable []any)

// HandleLaunch initialises the engine on the first call and resolves a
// launch URL or activity, if present. Later calls return the first
// result and have no side effects. A failed engine Init is not retried: the
// facade reports false for the rest of the process.
func (f *Facade) HandleLaunch(ctx context.Context, launch LaunchOptions) bool {
	f.launchOnce.Do(func() {
		f.launchResult = f.launch(ctx, launch)
	})
	return f.launchResult
}

func (f *Facade) launch(ctx context.Context, launch LaunchOptions) bool {
	if err := f.engine.Init(ctx); err != nil {
		log.Error().Err(err).Str("module", "app.facade").Msg("engine init failed")
		return false
	}
	log.Info().
		Str("module", "app.facade").
		Bool("crash_reporting_disabled", f.crashReportingDisabled).
		Str("url_scheme", f.routing.CustomURLScheme).
		Strs("link_domains", f.routing.UniversalLinkDomains).
		Msg("engine initialised")

	switch v := launch[LaunchURLKey].(type) {
	case *url.URL:
		f.HandleOpenURL(v, OpenURLOptions{SourceApplication: launchString(launch, LaunchSourceApplicationKey)})
	case string:
		if u, err := url.Parse(v); err == nil {
			f.HandleOpenURL(u, OpenURLOptions{SourceApplication: launchString(launch, LaunchSourceApplicationKey)})
		}
	}
	if act, ok := launch[LaunchUserActivityKey].(Activity); ok {
		f.HandleContinueActivity(act, nil)
	}
	return true
}

func launchString(launch LaunchOptions, key string) string {
	s, _ := launch[key].(string)
	return s
}

// HandleOpenURL consumes u when it matches the custom scheme or one of the
// universal link domains. Anything else returns false so the host can try
// other handlers.
func (f *Facade) HandleOpenURL(u *url.URL, opts OpenURLOptions) bool {
	if !f.routing.matches(u) {
		log.Debug().Str("module", "app.facade").Str("source_app", opts.SourceApplication).Msg("url not handled")
		return false
	}
	f.setInitial(optionsFromURL(u, f.routing.CustomURLScheme), "url")
	return true
}

// HandleContinueActivity consumes activities of the configured conference
// type that name a room, through a deep link in "url" or the webpage URL or
// through a "room" entry, and browsing-web activities whose page is a
// universal link. The core keeps no restorable objects, so restore
// is never called.
func (f *Facade) HandleContinueActivity(act Activity, restore RestorationHandler) bool {
	switch {
	case f.routing.ConferenceActivityType != "" && act.Type == f.routing.ConferenceActivityType:
		o, ok := f.optionsFromActivity(act)
		if !ok {
			return false
		}
		f.setInitial(o, "activity")
		return true
	case act.Type == ActivityTypeBrowsingWeb:
		return f.HandleOpenURL(act.WebpageURL, OpenURLOptions{})
	default:
		return false
	}
}

func (f *Facade) optionsFromActivity(act Activity) (*options.ConferenceOptions, bool) {
	if raw, ok := act.UserInfo["url"].(string); ok && raw != "" {
		if u, err := url.Parse(raw); err == nil {
			if o, ok := f.optionsFromLink(u); ok {
				return o, true
			}
		}
	}
	if room, ok := act.UserInfo["room"].(string); ok {
		if room = options.NormalizeRoom(room, "", ""); room != "" {
			return options.FromBuilder(func(b *options.Builder) {
				b.SetRoom(room)
			}), true
		}
	}
	return f.optionsFromLink(act.WebpageURL)
}

// optionsFromLink accepts only deep links for this host that name a room.
func (f *Facade) optionsFromLink(u *url.URL) (*options.ConferenceOptions, bool) {
	if !f.routing.matches(u) {
		return nil, false
	}
	o := optionsFromURL(u, f.routing.CustomURLScheme)
	if o.IsRoomUnset() {
		return nil, false
	}
	return o, true
}
