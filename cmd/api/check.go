package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/fpo-database/backend/internal/model/record"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the records file without starting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			path := cfg.Data.Path

			records, err := record.Load(path)
			if err != nil {
				return err
			}

			directors := 0
			for _, rec := range records {
				directors += len(rec.Directors)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:      %s\n", path)
			fmt.Fprintf(out, "records:   %d\n", len(records))
			fmt.Fprintf(out, "directors: %d\n", directors)
			if dups := record.DuplicateIDs(records); len(dups) > 0 {
				fmt.Fprintf(out, "duplicate data_id values: %v\n", dups)
			}
			return nil
		},
	}
}
