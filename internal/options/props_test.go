package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/videoapi/internal/domain"
)

func TestProps_Full(t *testing.T) {
	o := FromBuilder(func(b *Builder) {
		b.SetAPIID("app").SetAPIKey("key").SetRoom("standup").SetToken("jwt-token")
		b.SetSubject("Daily").SetAudioMuted(true).SetAudioOnly(false).SetVideoMuted(true)
		b.SetColorScheme(domain.ColorScheme{"Header": "dark"})
		b.SetFeatureFlag(domain.FlagToolboxEnabled, false)
		b.SetFeatureFlagValue(domain.FlagToolbarButtons, domain.String("chat"))
	})

	props, err := o.Props()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		domain.FlagToolboxEnabled: false,
		domain.FlagToolbarButtons: "chat",
		domain.FlagPipEnabled:     true,
	}, props["flags"])
	assert.Equal(t, map[string]any{"Header": "dark"}, props["colorScheme"])
	assert.Equal(t, map[string]any{
		"serverURL": DefaultServerURL,
		"room":      "standup",
		"apiID":     "app",
		"apiKey":    "key",
		"jwt":       "jwt-token",
		"config": map[string]any{
			"startWithAudioMuted": true,
			"startAudioOnly":      false,
			"startWithVideoMuted": true,
			"subject":             "Daily",
		},
	}, props["url"])
	assert.NotContains(t, props, "userInfo")
}

func TestProps_OnlySetFieldsEmitted(t *testing.T) {
	props, err := FromBuilder(func(b *Builder) { b.SetRoom("r") }).Props()
	require.NoError(t, err)

	url := props["url"].(map[string]any)
	assert.NotContains(t, url, "jwt")
	assert.NotContains(t, url, "apiID")
	assert.Empty(t, url["config"])
	assert.NotContains(t, props, "colorScheme")
}

func TestProps_PipExplicitlyDisabled(t *testing.T) {
	props, err := FromBuilder(func(b *Builder) {
		b.SetFeatureFlag(domain.FlagPipEnabled, false)
	}).Props()
	require.NoError(t, err)
	assert.Equal(t, false, props["flags"].(map[string]any)[domain.FlagPipEnabled])
}

func TestProps_WelcomePage(t *testing.T) {
	props, err := FromBuilder(func(b *Builder) { b.SetWelcomePageEnabled(true) }).Props()
	require.NoError(t, err)
	assert.Equal(t, true, props["flags"].(map[string]any)[domain.FlagWelcomePageEnabled])

	props, err = FromBuilder(func(b *Builder) {
		b.SetWelcomePageEnabled(true)
		b.SetFeatureFlag(domain.FlagWelcomePageEnabled, false)
	}).Props()
	require.NoError(t, err)
	assert.Equal(t, false, props["flags"].(map[string]any)[domain.FlagWelcomePageEnabled], "explicit flag wins")
}

func TestSettings_Build(t *testing.T) {
	room, muted := "standup", true
	s := Settings{
		Room:         &room,
		AudioMuted:   &muted,
		FeatureFlags: map[string]any{domain.FlagToolboxEnabled: false, "breakout": map[string]any{"enabled": true}},
		UserInfo:     &UserInfoSettings{DisplayName: "Ada", Avatar: "https://cdn.example.com/a.png"},
	}
	o, err := s.Build()
	require.NoError(t, err)

	assert.Equal(t, "standup", o.Room())
	assert.True(t, o.AudioMuted())
	assert.False(t, o.IsSet(FieldVideoMuted))
	assert.Equal(t, 2, o.FeatureFlags().Len())
	assert.Equal(t, "Ada", o.UserInfo().DisplayName())
}

func TestSettings_BuildErrors(t *testing.T) {
	_, err := Settings{FeatureFlags: map[string]any{"bad": []any{1}}}.Build()
	assert.ErrorIs(t, err, domain.ErrUnsupportedFlagValue)

	long := make([]byte, domain.MaxDisplayNameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = Settings{UserInfo: &UserInfoSettings{DisplayName: string(long)}}.Build()
	assert.ErrorIs(t, err, domain.ErrDisplayNameTooLong)
}
