package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dkeye/videoapi/internal/adapters/engine"
	"github.com/dkeye/videoapi/internal/app"
	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/options"
)

// KeyDelimiter separates nested keys. Feature flag names contain dots, so
// the viper default cannot be used.
const KeyDelimiter = "::"

const EnvPrefix = "VIDEOAPI"

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`

	Log                    LogConfig        `mapstructure:"log"`
	Routing                app.Routing      `mapstructure:"routing"`
	CrashReportingDisabled bool             `mapstructure:"crash_reporting_disabled"`
	Engine                 engine.Config    `mapstructure:"engine"`
	Devices                DevicesConfig    `mapstructure:"devices"`
	Bridge                 BridgeConfig     `mapstructure:"bridge"`
	Defaults               options.Settings `mapstructure:"defaults"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DevicesConfig struct {
	Audio  bool          `mapstructure:"audio"`
	Static []DeviceEntry `mapstructure:"static"`
}

type DeviceEntry struct {
	ID      string `mapstructure:"id"`
	GroupID string `mapstructure:"group_id"`
	Kind    string `mapstructure:"kind"`
	Label   string `mapstructure:"label"`
}

// BridgeConfig limits verbs arriving over the engine-UI websocket, per
// client.
type BridgeConfig struct {
	RateLimit    int           `mapstructure:"rate_limit"`
	RateInterval time.Duration `mapstructure:"rate_interval"`
}

// StaticDevices converts the configured device entries.
func (c *Config) StaticDevices() []core.DeviceInfo {
	out := make([]core.DeviceInfo, 0, len(c.Devices.Static))
	for _, d := range c.Devices.Static {
		kind := core.DeviceKind(d.Kind)
		if kind == "" {
			kind = core.DeviceVideoInput
		}
		out = append(out, core.DeviceInfo{DeviceID: d.ID, GroupID: d.GroupID, Kind: kind, Label: d.Label})
	}
	return out
}

// DefaultOptions builds the conference options from the defaults section.
func (c *Config) DefaultOptions() (*options.ConferenceOptions, error) {
	o, err := c.Defaults.Build()
	if err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return o, nil
}

// New returns a viper instance with defaults and env bindings. file may be
// empty, in which case config/config.<CONFIG_ENV>.yaml is used.
func New(file string) *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	v.SetConfigType("yaml")

	if file == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		file = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(file)

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("secret", "videoapi-dev-secret")
	v.SetDefault(Key("log", "level"), "info")
	v.SetDefault(Key("log", "format"), "console")
	v.SetDefault(Key("routing", "conference_activity_type"), "com.ngagevideoapi.conference")
	v.SetDefault(Key("routing", "custom_url_scheme"), "videoapi")
	v.SetDefault(Key("routing", "universal_link_domains"), []string{})
	v.SetDefault("crash_reporting_disabled", false)
	v.SetDefault(Key("engine", "command_queue"), 32)
	v.SetDefault(Key("engine", "device_timeout"), "5s")
	v.SetDefault(Key("devices", "audio"), false)
	v.SetDefault(Key("bridge", "rate_limit"), 20)
	v.SetDefault(Key("bridge", "rate_interval"), "1s")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(KeyDelimiter, "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Decode reads the config file, if any, and unmarshals v.
func Decode(v *viper.Viper) (*Config, error) {
	loaded := true
	if err := v.ReadInConfig(); err != nil {
		loaded = false
		log.Warn().Str("module", "config").Str("file", v.ConfigFileUsed()).Msg("config file not loaded, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", v.ConfigFileUsed()).Msg("config loaded")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if loaded {
		if err := decodeDefaultMaps(v.ConfigFileUsed(), &cfg.Defaults); err != nil {
			return nil, err
		}
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("url_scheme", cfg.Routing.CustomURLScheme).
		Msg("config ready")
	return &cfg, nil
}

// defaultMaps mirrors the free-form maps of the defaults section. viper
// lowercases map keys, and feature flag names and color scheme keys are case
// sensitive, so these are read from the file as written.
type defaultMaps struct {
	Defaults struct {
		FeatureFlags map[string]any `yaml:"feature_flags"`
		ColorScheme  map[string]any `yaml:"color_scheme"`
	} `yaml:"defaults"`
}

func decodeDefaultMaps(file string, s *options.Settings) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var m defaultMaps
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("failed to parse config defaults: %w", err)
	}
	if m.Defaults.FeatureFlags != nil {
		s.FeatureFlags = m.Defaults.FeatureFlags
	}
	if m.Defaults.ColorScheme != nil {
		s.ColorScheme = m.Defaults.ColorScheme
	}
	return nil
}

func Load(file string) (*Config, error) {
	return Decode(New(file))
}

// Key joins nested key parts with KeyDelimiter.
func Key(parts ...string) string {
	return strings.Join(parts, KeyDelimiter)
}
