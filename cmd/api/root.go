package main

import (
	"github.com/spf13/cobra"

	"github.com/zhouzirui/fpo-database/backend/internal/config"
)

type rootFlags struct {
	addr     string
	dataPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "fpo-api",
		Short: "Read-only HTTP API over the FPO company dataset",
		Long: `fpo-api loads the FPO company records from a JSON file once at startup
and serves paged listings, record lookups and director lists over HTTP.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.dataPath, "data", "", "Path to the records JSON file (overrides FPO_DATA_PATH)")
	cmd.Flags().StringVar(&flags.addr, "addr", "", "Listen address, e.g. :8080 (overrides PORT)")

	cmd.AddCommand(newServeCmd(flags), newCheckCmd(flags))
	return cmd
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.dataPath != "" {
		cfg.Data.Path = flags.dataPath
	}
	if flags.addr != "" {
		addr, err := config.ParseAddr(flags.addr)
		if err != nil {
			return nil, err
		}
		cfg.Server.Addr = addr
	}
	return cfg, nil
}
