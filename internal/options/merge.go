package options

import "github.com/dkeye/videoapi/internal/domain"

// Merge combines process-wide defaults with per-join options. Scalars set on
// perJoin win, otherwise the default is used; feature flags are merged key by
// key with perJoin winning; a color scheme on perJoin replaces the default
// one wholesale. defaults may be nil.
//
// Merge does not validate the result; see Require.
func Merge(defaults, perJoin *ConferenceOptions) (*ConferenceOptions, error) {
	if err := perJoin.Check(); err != nil {
		return nil, err
	}
	if defaults == nil {
		defaults = FromBuilder(nil)
	} else if err := defaults.Check(); err != nil {
		return nil, err
	}

	d, j := defaults.f, perJoin.f
	out := &ConferenceOptions{
		built: true,
		f: fields{
			apiID:              j.apiID.or(d.apiID),
			apiKey:             j.apiKey.or(d.apiKey),
			room:               j.room.or(d.room),
			subject:            j.subject.or(d.subject),
			token:              j.token.or(d.token),
			colorScheme:        j.colorScheme.or(d.colorScheme),
			audioOnly:          j.audioOnly.or(d.audioOnly),
			audioMuted:         j.audioMuted.or(d.audioMuted),
			videoMuted:         j.videoMuted.or(d.videoMuted),
			welcomePageEnabled: j.welcomePageEnabled.or(d.welcomePageEnabled),
		},
		flags: defaults.flags.Merge(perJoin.flags),
	}
	if out.f.colorScheme.set {
		out.f.colorScheme = some(out.f.colorScheme.value.Clone())
	}

	var u *domain.UserInfo
	if u = perJoin.UserInfo(); u == nil {
		u = defaults.UserInfo()
	}
	out.userInfo.Store(u)
	return out, nil
}

// Require returns a MissingFieldError for the first of fields that is empty.
// Only string settings can be required.
func Require(o *ConferenceOptions, fields ...Field) error {
	if err := o.Check(); err != nil {
		return err
	}
	for _, f := range fields {
		var v string
		switch f {
		case FieldAPIID:
			v = o.APIID()
		case FieldAPIKey:
			v = o.APIKey()
		case FieldRoom:
			if o.IsRoomUnset() {
				return &MissingFieldError{Field: f}
			}
			continue
		case FieldSubject:
			v = o.Subject()
		case FieldToken:
			v = o.Token()
		default:
			continue
		}
		if v == "" {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}
