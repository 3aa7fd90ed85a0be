package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"vivero/database"
	"vivero/entities"
	"vivero/pkg/catalog/importer"
	"vivero/pkg/catalog/serviceImp"
	"vivero/pkg/validation"
)

func importCmd(a *app) *cobra.Command {
	var kind, file, format string

	c := &cobra.Command{
		Use:   "import",
		Short: "Load a control-product catalog from CSV, XLSX or HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := entities.ParseProductKind(kind)
			if err != nil {
				return err
			}
			var f importer.Format
			if format != "" {
				f, err = importer.ParseFormat(format)
			} else {
				f, err = importer.FormatFromName(file)
			}
			if err != nil {
				return err
			}

			st, err := os.Stat(file)
			if err != nil {
				return err
			}
			if a.cfg.ImportMaxBytes > 0 && st.Size() > a.cfg.ImportMaxBytes {
				return fmt.Errorf("%s is %d bytes, limit is %d (IMPORT_MAX_BYTES)", file, st.Size(), a.cfg.ImportMaxBytes)
			}
			src, err := os.Open(file)
			if err != nil {
				return err
			}
			defer src.Close()

			db, err := database.OpenAndMigrate(a.cfg.DBPath)
			if err != nil {
				return err
			}
			imp, err := serviceImp.NewServices(db, validation.New()).Importer(k)
			if err != nil {
				return err
			}
			res, err := imp.ImportFrom(cmd.Context(), f, src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d created, %d updated\n", res.Kind, res.Rows, res.Created, res.Updated)
			return nil
		},
	}

	c.Flags().StringVarP(&kind, "kind", "k", "", "catalog: fungus, pest or fertilizer (required)")
	c.Flags().StringVarP(&file, "file", "f", "", "catalog file (required)")
	c.Flags().StringVar(&format, "format", "", "csv, xlsx or html (default from the file extension)")
	_ = c.MarkFlagRequired("kind")
	_ = c.MarkFlagRequired("file")
	return c
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
