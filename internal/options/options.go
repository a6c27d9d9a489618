package options

import (
	"errors"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dkeye/videoapi/internal/domain"
)

// DefaultServerURL is the engine endpoint every conference is served from.
const DefaultServerURL = "http://videoapi.ngagevideoapi.com/"

var serverURL = func() *url.URL {
	u, err := url.Parse(DefaultServerURL)
	if err != nil {
		panic(err)
	}
	return u
}()

var ErrInvalidConstruction = errors.New("options: conference options must be created with FromBuilder")

// MissingFieldError reports a setting the engine cannot join without.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return "options: missing required field " + e.Field.String()
}

// Field names a scalar setting, for IsSet and error reporting.
type Field uint8

const (
	FieldAPIID Field = iota + 1
	FieldAPIKey
	FieldRoom
	FieldSubject
	FieldToken
	FieldColorScheme
	FieldAudioOnly
	FieldAudioMuted
	FieldVideoMuted
	FieldWelcomePageEnabled
)

func (f Field) String() string {
	switch f {
	case FieldAPIID:
		return "apiID"
	case FieldAPIKey:
		return "apiKey"
	case FieldRoom:
		return "room"
	case FieldSubject:
		return "subject"
	case FieldToken:
		return "token"
	case FieldColorScheme:
		return "colorScheme"
	case FieldAudioOnly:
		return "audioOnly"
	case FieldAudioMuted:
		return "audioMuted"
	case FieldVideoMuted:
		return "videoMuted"
	case FieldWelcomePageEnabled:
		return "welcomePageEnabled"
	default:
		return "unknown"
	}
}

// ConferenceOptions is the immutable form of a Builder and the only form the
// engine accepts. The participant info is the one exception: it may be
// replaced later with SetUserInfo, e.g. once a profile fetch completes.
//
// The zero value is not usable; every consumer rejects it with
// ErrInvalidConstruction.
type ConferenceOptions struct {
	built    bool
	f        fields
	flags    domain.FeatureFlags
	userInfo atomic.Pointer[domain.UserInfo]
}

// Check returns ErrInvalidConstruction unless o came out of a Builder.
func (o *ConferenceOptions) Check() error {
	if o == nil || !o.built {
		return ErrInvalidConstruction
	}
	return nil
}

// ServerURL returns a copy of the fixed engine endpoint. It is the same for
// every conference and is never supplied by the host.
func (o *ConferenceOptions) ServerURL() *url.URL {
	u := *serverURL
	return &u
}

func (o *ConferenceOptions) APIID() string   { return o.f.apiID.value }
func (o *ConferenceOptions) APIKey() string  { return o.f.apiKey.value }
func (o *ConferenceOptions) Room() string    { return o.f.room.value }
func (o *ConferenceOptions) Subject() string { return o.f.subject.value }
func (o *ConferenceOptions) Token() string   { return o.f.token.value }

func (o *ConferenceOptions) AudioOnly() bool          { return o.f.audioOnly.value }
func (o *ConferenceOptions) AudioMuted() bool         { return o.f.audioMuted.value }
func (o *ConferenceOptions) VideoMuted() bool         { return o.f.videoMuted.value }
func (o *ConferenceOptions) WelcomePageEnabled() bool { return o.f.welcomePageEnabled.value }

// ColorScheme returns a copy of the scheme, or nil when none was set.
func (o *ConferenceOptions) ColorScheme() domain.ColorScheme {
	return o.f.colorScheme.value.Clone()
}

func (o *ConferenceOptions) FeatureFlags() domain.FeatureFlags { return o.flags }

func (o *ConferenceOptions) UserInfo() *domain.UserInfo { return o.userInfo.Load() }

// SetUserInfo swaps the participant info. Safe for concurrent use.
func (o *ConferenceOptions) SetUserInfo(u *domain.UserInfo) { o.userInfo.Store(u) }

// IsRoomUnset reports whether no usable room is present.
func (o *ConferenceOptions) IsRoomUnset() bool {
	return strings.TrimSpace(o.f.room.value) == ""
}

// IsSet reports whether field was explicitly set on the builder.
func (o *ConferenceOptions) IsSet(field Field) bool {
	switch field {
	case FieldAPIID:
		return o.f.apiID.set
	case FieldAPIKey:
		return o.f.apiKey.set
	case FieldRoom:
		return o.f.room.set
	case FieldSubject:
		return o.f.subject.set
	case FieldToken:
		return o.f.token.set
	case FieldColorScheme:
		return o.f.colorScheme.set
	case FieldAudioOnly:
		return o.f.audioOnly.set
	case FieldAudioMuted:
		return o.f.audioMuted.set
	case FieldVideoMuted:
		return o.f.videoMuted.set
	case FieldWelcomePageEnabled:
		return o.f.welcomePageEnabled.set
	default:
		return false
	}
}

// MarshalZerologObject logs the options without credentials.
func (o *ConferenceOptions) MarshalZerologObject(e *zerolog.Event) {
	if o.Check() != nil {
		e.Bool("built", false)
		return
	}
	e.Str("room", o.Room()).
		Str("api_id", o.APIID()).
		Bool("has_token", o.f.token.value != "").
		Bool("audio_only", o.AudioOnly()).
		Bool("audio_muted", o.AudioMuted()).
		Bool("video_muted", o.VideoMuted()).
		Strs("flags", o.flags.Keys())
}
