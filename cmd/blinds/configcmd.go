package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/blinds/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var (
		format string
		write  string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after applying the config file and flags. Use --write to save it as a starting point.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if write != "" {
				if err := config.SaveConfig(cfg, write); err != nil {
					return err
				}
				newLogger(cmd.ErrOrStderr(), log.InfoLevel).Info("config written", "path", write)
				return nil
			}
			return cfg.Encode(cmd.OutOrStdout(), config.Format(format))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "output format: toml or yaml")
	cmd.Flags().StringVarP(&write, "write", "w", "", "write to this file instead of stdout")
	return cmd
}
