package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/videoapi/internal/core"
)

const sample = `
mode: debug
port: 9090
routing:
  custom_url_scheme: myapp
  universal_link_domains:
    - meet.example.com
engine:
  command_queue: 8
  device_timeout: 250ms
devices:
  static:
    - id: cam0
      label: Front
    - id: mic0
      kind: audioinput
      label: Built-in
defaults:
  api_id: app1
  api_key: key1
  audio_muted: true
  feature_flags:
    toolbox.enabled: false
    toolbar.buttons: chat
  user_info:
    display_name: Ada
    email: ada@example.com
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "myapp", cfg.Routing.CustomURLScheme)
	assert.Equal(t, []string{"meet.example.com"}, cfg.Routing.UniversalLinkDomains)
	assert.Equal(t, 8, cfg.Engine.QueueSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.DeviceTimeout)

	// untouched keys keep their defaults
	assert.Equal(t, int64(32768), cfg.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 20, cfg.Bridge.RateLimit)
	assert.Equal(t, time.Second, cfg.Bridge.RateInterval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "videoapi", cfg.Routing.CustomURLScheme)
	assert.Equal(t, 32, cfg.Engine.QueueSize)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VIDEOAPI_PORT", "7000")
	t.Setenv("VIDEOAPI_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestConfig_DefaultOptions(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	o, err := cfg.DefaultOptions()
	require.NoError(t, err)
	assert.Equal(t, "app1", o.APIID())
	assert.Equal(t, "key1", o.APIKey())
	assert.True(t, o.AudioMuted())
	assert.True(t, o.IsRoomUnset())

	v, ok := o.FeatureFlags().Bool("toolbox.enabled")
	require.True(t, ok)
	assert.False(t, v)
	s, ok := o.FeatureFlags().Get("toolbar.buttons")
	require.True(t, ok)
	assert.Equal(t, "chat", s.String())

	require.NotNil(t, o.UserInfo())
	assert.Equal(t, "Ada", o.UserInfo().DisplayName())
}

func TestConfig_DefaultsKeepKeyCase(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
defaults:
  feature_flags:
    ios.screenSharing.enabled: true
    toolbox.enabled: false
  color_scheme:
    Dialog:
      buttonBackground: "#112233"
`))
	require.NoError(t, err)

	o, err := cfg.DefaultOptions()
	require.NoError(t, err)
	v, ok := o.FeatureFlags().Bool("ios.screenSharing.enabled")
	require.True(t, ok)
	assert.True(t, v)
	_, ok = o.FeatureFlags().Get("ios.screensharing.enabled")
	assert.False(t, ok)

	dialog, ok := o.ColorScheme()["Dialog"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#112233", dialog["buttonBackground"])
}

func TestConfig_StaticDevices(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, []core.DeviceInfo{
		{DeviceID: "cam0", Kind: core.DeviceVideoInput, Label: "Front"},
		{DeviceID: "mic0", Kind: core.DeviceAudioInput, Label: "Built-in"},
	}, cfg.StaticDevices())
}
