package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/blinds/config"
)

// rootFlags are shared by every subcommand and override file values when set
type rootFlags struct {
	configPath string
	debug      bool
	logFile    string
	strips     int
	mute       bool
	image      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "blinds",
		Short:        "Venetian-blind strip reveal for the terminal",
		Long:         `blinds captures a view, cuts it into horizontal strips and lets you peel them away with the mouse. Flick a strip right to dismiss the overlay.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         flags.runE,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pf.BoolVar(&flags.debug, "debug", false, "write logs to the log file at debug level")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path used with --debug")
	pf.IntVarP(&flags.strips, "strips", "n", 0, "number of strips")
	pf.BoolVar(&flags.mute, "mute", false, "disable sound cues")
	pf.StringVarP(&flags.image, "image", "i", "", "snapshot image to cut instead of the rendered card")

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Start the interactive reveal (default)",
		Args:  cobra.NoArgs,
		RunE:  flags.runE,
	})
	root.AddCommand(newSliceCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func (f *rootFlags) runE(cmd *cobra.Command, _ []string) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}
	return runInteractive(cmd.Context(), cfg)
}

// load reads the config file and applies explicitly set flags on top
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("debug") {
		cfg.Log.Debug = f.debug
		if f.debug {
			cfg.Log.Level = log.DebugLevel.String()
		}
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if changed("strips") {
		cfg.Strips.Count = f.strips
	}
	if changed("mute") && f.mute {
		cfg.Audio.Enabled = false
	}
	if changed("image") {
		cfg.Capture.Source = config.SourceFile
		cfg.Capture.Path = f.image
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
