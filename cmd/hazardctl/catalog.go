package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export and validate hazard catalogs",
	Long:  "Exports the active catalog as JSON or YAML for editing, and validates catalog files before they are deployed via CATALOG_PATH.",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active catalog as JSON or YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = "json"
			if catalog.IsYAML(path) {
				format = "yaml"
			}
		}

		out := cmd.OutOrStdout()
		if path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		return writeCatalog(out, cat, format)
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file for errors and gaps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		warnings := cat.Lint()
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "WARN  %s\n", w)
		}
		if strict, _ := cmd.Flags().GetBool("strict"); strict && len(warnings) > 0 {
			return fmt.Errorf("%d catalog warnings", len(warnings))
		}
		_, _ = fmt.Fprintf(out, "OK    %s (%d warnings)\n", args[0], len(warnings))
		return nil
	},
}

func init() {
	catalogExportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	catalogExportCmd.Flags().String("format", "", "json or yaml (default: from the output extension, else json)")
	catalogValidateCmd.Flags().Bool("strict", false, "treat warnings as errors")
	catalogCmd.AddCommand(catalogExportCmd, catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

func writeCatalog(w io.Writer, cat *catalog.Catalog, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.Data())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cat.Data()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: want json or yaml", format)
	}
}
