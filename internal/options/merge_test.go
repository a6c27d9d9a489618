package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/videoapi/internal/domain"
)

func TestMerge_PerJoinWinsWhenSet(t *testing.T) {
	defaults := FromBuilder(func(b *Builder) {
		b.SetAPIID("app").SetAPIKey("key").SetAudioMuted(true).SetSubject("Default")
		b.SetFeatureFlag(domain.FlagToolboxEnabled, true)
		b.SetFeatureFlag(domain.FlagPipEnabled, true)
		b.SetUserInfo(domain.NewUserInfo("Default User", "", nil))
	})
	perJoin := FromBuilder(func(b *Builder) {
		b.SetRoom("standup").SetAudioMuted(false)
		b.SetFeatureFlag(domain.FlagPipEnabled, false)
	})

	m, err := Merge(defaults, perJoin)
	require.NoError(t, err)

	assert.Equal(t, "app", m.APIID())
	assert.Equal(t, "key", m.APIKey())
	assert.Equal(t, "standup", m.Room())
	assert.Equal(t, "Default", m.Subject())
	assert.False(t, m.AudioMuted(), "explicit false overrides default true")

	toolbox, _ := m.FeatureFlags().Bool(domain.FlagToolboxEnabled)
	pip, _ := m.FeatureFlags().Bool(domain.FlagPipEnabled)
	assert.True(t, toolbox)
	assert.False(t, pip)
	assert.Equal(t, "Default User", m.UserInfo().DisplayName())
}

func TestMerge_EmptyDefaultsIsIdentity(t *testing.T) {
	perJoin := FromBuilder(func(b *Builder) {
		b.SetRoom("r").SetVideoMuted(true).SetToken("jwt")
	})

	for _, defaults := range []*ConferenceOptions{nil, FromBuilder(nil)} {
		m, err := Merge(defaults, perJoin)
		require.NoError(t, err)

		want, _ := perJoin.Props()
		got, _ := m.Props()
		assert.Equal(t, want, got)
	}
}

func TestMerge_ColorSchemeReplacedWholesale(t *testing.T) {
	defaults := FromBuilder(func(b *Builder) {
		b.SetColorScheme(domain.ColorScheme{"Header": "dark", "Toolbox": "dark"})
	})
	perJoin := FromBuilder(func(b *Builder) {
		b.SetRoom("r").SetColorScheme(domain.ColorScheme{"Header": "light"})
	})

	m, err := Merge(defaults, perJoin)
	require.NoError(t, err)
	assert.Equal(t, domain.ColorScheme{"Header": "light"}, m.ColorScheme())
}

func TestMerge_InputsUnchanged(t *testing.T) {
	defaults := FromBuilder(func(b *Builder) { b.SetFeatureFlag("a", true) })
	perJoin := FromBuilder(func(b *Builder) { b.SetRoom("r").SetFeatureFlag("b", true) })

	_, err := Merge(defaults, perJoin)
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, defaults.FeatureFlags().Keys())
	assert.Equal(t, []string{"b"}, perJoin.FeatureFlags().Keys())
	assert.True(t, defaults.IsRoomUnset())
}

func TestMerge_UserInfoLateBindingDoesNotLeak(t *testing.T) {
	defaults := FromBuilder(nil)
	m, err := Merge(defaults, FromBuilder(func(b *Builder) { b.SetRoom("r") }))
	require.NoError(t, err)

	m.SetUserInfo(domain.NewUserInfo("Late", "", nil))
	assert.Nil(t, defaults.UserInfo())
}
