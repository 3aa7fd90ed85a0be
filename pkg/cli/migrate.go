package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vivero/database"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table and report row counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.OpenAndMigrate(a.cfg.DBPath)
			if err != nil {
				return err
			}
			counts, err := database.Counts(cmd.Context(), db)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "migrated %s\n", a.cfg.DBPath)
			for _, t := range sortedKeys(counts) {
				fmt.Fprintf(out, "  %-28s %d\n", t, counts[t])
			}
			return nil
		},
	}
}
