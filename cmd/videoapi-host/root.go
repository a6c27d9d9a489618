package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkeye/videoapi/internal/adapters/devices"
	"github.com/dkeye/videoapi/internal/adapters/engine"
	"github.com/dkeye/videoapi/internal/app"
	"github.com/dkeye/videoapi/internal/app/bridge"
	"github.com/dkeye/videoapi/internal/config"
	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/events"
	"github.com/dkeye/videoapi/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "videoapi-host",
		Short:        "Host shell for the video conferencing SDK",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file path (default config/config.<CONFIG_ENV>.yaml).")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error.")
	cmd.PersistentFlags().String("log-format", "console", "Log format: console or json.")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newPropsCmd())

	return cmd
}

// loadConfig reads the config file named by --config, with persistent
// flags taking precedence over file and env values.
func loadConfig(cmd *cobra.Command, bind func(v *viper.Viper) error) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	v := config.New(file)

	flags := cmd.Flags()
	if err := v.BindPFlag(config.Key("log", "level"), flags.Lookup("log-level")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag(config.Key("log", "format"), flags.Lookup("log-format")); err != nil {
		return nil, err
	}
	if bind != nil {
		if err := bind(v); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return nil, err
	}
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

type runtime struct {
	bus    *events.Bus
	engine *engine.Engine
	facade *app.Facade
	bridge *bridge.Bridge
}

func wire(cfg *config.Config) (*runtime, error) {
	bus := events.NewBus()

	sources := []core.DeviceEnumerator{devices.Static(cfg.StaticDevices())}
	if cfg.Devices.Audio {
		sources = append(sources, devices.Audio{})
	}
	eng := engine.New(devices.Combine(sources...), bus, cfg.Engine)

	facade := app.NewFacade(eng, bus,
		app.WithRouting(cfg.Routing),
		app.WithCrashReportingDisabled(cfg.CrashReportingDisabled),
	)
	defaults, err := cfg.DefaultOptions()
	if err != nil {
		return nil, err
	}
	if err := facade.SetDefaultConferenceOptions(defaults); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}
	log.Info().
		Str("module", "main").
		Int("static_devices", len(cfg.Devices.Static)).
		Bool("audio_devices", cfg.Devices.Audio).
		Msg("sdk wired")

	return &runtime{
		bus:    bus,
		engine: eng,
		facade: facade,
		bridge: bridge.New(facade, bus),
	}, nil
}
