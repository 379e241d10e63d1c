// Command hazardctl runs one-shot hazard risk assessments and inspects the
// hazard catalog from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/hazard-risk-service/internal/config"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "hazardctl",
	Short:        "Multi-hazard risk assessment for locations in India",
	Long:         "Scores flood, earthquake, landslide, cyclone, and drought risk for a coordinate and inspects the hazard catalog.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		logger = observability.NewLoggerTo(cmd.ErrOrStderr(), cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "JSON catalog file (overrides CATALOG_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
