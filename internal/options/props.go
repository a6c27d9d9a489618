package options

import "github.com/dkeye/videoapi/internal/domain"

// Props renders the options as the launch properties the engine reads:
//
//	flags        feature flags, pip.enabled defaults to true
//	colorScheme  only when set
//	url          serverURL, room, apiID, apiKey, jwt and a config block
//	userInfo     only when present
//
// Only explicitly set settings are emitted so that the engine applies its
// own defaults for the rest.
func (o *ConferenceOptions) Props() (map[string]any, error) {
	if err := o.Check(); err != nil {
		return nil, err
	}

	flags := o.flags.Interface()
	if _, ok := flags[domain.FlagPipEnabled]; !ok {
		flags[domain.FlagPipEnabled] = true
	}
	if o.f.welcomePageEnabled.set {
		if _, ok := flags[domain.FlagWelcomePageEnabled]; !ok {
			flags[domain.FlagWelcomePageEnabled] = o.f.welcomePageEnabled.value
		}
	}

	props := map[string]any{"flags": flags}
	if o.f.colorScheme.set && o.f.colorScheme.value != nil {
		props["colorScheme"] = map[string]any(o.f.colorScheme.value.Clone())
	}

	config := map[string]any{}
	if o.f.audioMuted.set {
		config["startWithAudioMuted"] = o.f.audioMuted.value
	}
	if o.f.audioOnly.set {
		config["startAudioOnly"] = o.f.audioOnly.value
	}
	if o.f.videoMuted.set {
		config["startWithVideoMuted"] = o.f.videoMuted.value
	}
	if o.f.subject.set {
		config["subject"] = o.f.subject.value
	}

	urlProps := map[string]any{
		"serverURL": o.ServerURL().String(),
		"config":    config,
	}
	if o.f.room.set {
		urlProps["room"] = o.f.room.value
	}
	if o.f.apiKey.set {
		urlProps["apiKey"] = o.f.apiKey.value
	}
	if o.f.apiID.set {
		urlProps["apiID"] = o.f.apiID.value
	}
	if o.f.token.set {
		urlProps["jwt"] = o.f.token.value
	}
	props["url"] = urlProps

	if u := o.UserInfo(); !u.IsEmpty() {
		props["userInfo"] = u.Props()
	}
	return props, nil
}
