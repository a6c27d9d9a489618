package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dkeye/videoapi/internal/app"
	"github.com/dkeye/videoapi/internal/options"
)

func newPropsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props [deep-link]",
		Short: "Print the launch props for a deep link or room",
		Long: "Resolves the optional deep link the way a launch would, merges the result\n" +
			"over the configured defaults and prints the props handed to the engine.",
		Args: cobra.MaximumNArgs(1),
		RunE: runProps,
	}
	cmd.Flags().String("room", "", "Room to use when no deep link is given.")
	return cmd
}

func runProps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	rt, err := wire(cfg)
	if err != nil {
		return err
	}

	launch := app.LaunchOptions{}
	if len(args) == 1 {
		launch[app.LaunchURLKey] = args[0]
	}
	rt.facade.HandleLaunch(cmd.Context(), launch)

	perJoin := rt.facade.GetInitialConferenceOptions()
	if room, _ := cmd.Flags().GetString("room"); room != "" && perJoin.IsRoomUnset() {
		perJoin = options.FromBuilder(func(b *options.Builder) { b.SetRoom(room) })
	}
	merged, err := options.Merge(rt.facade.DefaultConferenceOptions(), perJoin)
	if err != nil {
		return err
	}
	props, err := merged.Props()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(props)
}
