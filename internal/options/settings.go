package options

import (
	"fmt"

	"github.com/dkeye/videoapi/internal/domain"
)

// Settings is the serialisable form of a builder transaction, as it arrives
// from config files and HTTP payloads. Nil pointers mean "not set".
type Settings struct {
	APIID              *string           `json:"apiID,omitempty" mapstructure:"api_id"`
	APIKey             *string           `json:"apiKey,omitempty" mapstructure:"api_key"`
	Room               *string           `json:"room,omitempty" mapstructure:"room"`
	Subject            *string           `json:"subject,omitempty" mapstructure:"subject"`
	Token              *string           `json:"token,omitempty" mapstructure:"token"`
	ColorScheme        map[string]any    `json:"colorScheme,omitempty" mapstructure:"color_scheme"`
	FeatureFlags       map[string]any    `json:"featureFlags,omitempty" mapstructure:"feature_flags"`
	AudioOnly          *bool             `json:"audioOnly,omitempty" mapstructure:"audio_only"`
	AudioMuted         *bool             `json:"audioMuted,omitempty" mapstructure:"audio_muted"`
	VideoMuted         *bool             `json:"videoMuted,omitempty" mapstructure:"video_muted"`
	WelcomePageEnabled *bool             `json:"welcomePageEnabled,omitempty" mapstructure:"welcome_page_enabled"`
	UserInfo           *UserInfoSettings `json:"userInfo,omitempty" mapstructure:"user_info"`
}

type UserInfoSettings struct {
	DisplayName string `json:"displayName,omitempty" mapstructure:"display_name"`
	Email       string `json:"email,omitempty" mapstructure:"email"`
	Avatar      string `json:"avatar,omitempty" mapstructure:"avatar"`
}

// Configure returns a builder callback applying s. Conversion errors (bad
// flag values, bad avatar URL) are reported before any builder is touched.
func (s Settings) Configure() (func(*Builder), error) {
	flags := make(map[string]domain.FlagValue, len(s.FeatureFlags))
	for name, raw := range s.FeatureFlags {
		v, err := domain.FlagOf(raw)
		if err != nil {
			return nil, fmt.Errorf("feature flag %q: %w", name, err)
		}
		flags[name] = v
	}
	var user *domain.UserInfo
	if s.UserInfo != nil {
		u, err := domain.ParseUserInfo(s.UserInfo.DisplayName, s.UserInfo.Email, s.UserInfo.Avatar)
		if err != nil {
			return nil, fmt.Errorf("user info: %w", err)
		}
		user = u
	}

	return func(b *Builder) {
		if s.APIID != nil {
			b.SetAPIID(*s.APIID)
		}
		if s.APIKey != nil {
			b.SetAPIKey(*s.APIKey)
		}
		if s.Room != nil {
			b.SetRoom(*s.Room)
		}
		if s.Subject != nil {
			b.SetSubject(*s.Subject)
		}
		if s.Token != nil {
			b.SetToken(*s.Token)
		}
		if s.ColorScheme != nil {
			b.SetColorScheme(domain.ColorScheme(s.ColorScheme))
		}
		if s.AudioOnly != nil {
			b.SetAudioOnly(*s.AudioOnly)
		}
		if s.AudioMuted != nil {
			b.SetAudioMuted(*s.AudioMuted)
		}
		if s.VideoMuted != nil {
			b.SetVideoMuted(*s.VideoMuted)
		}
		if s.WelcomePageEnabled != nil {
			b.SetWelcomePageEnabled(*s.WelcomePageEnabled)
		}
		for name, v := range flags {
			b.SetFeatureFlagValue(name, v)
		}
		if user != nil {
			b.SetUserInfo(user)
		}
	}, nil
}

// Build is shorthand for FromBuilder(s.Configure()).
func (s Settings) Build() (*ConferenceOptions, error) {
	configure, err := s.Configure()
	if err != nil {
		return nil, err
	}
	return FromBuilder(configure), nil
}
