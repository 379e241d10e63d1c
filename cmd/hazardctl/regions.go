package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List catalog hazard zones",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		hazards := domain.HazardOrder
		if v, _ := cmd.Flags().GetString("hazard"); v != "" {
			h, err := domain.ParseHazardType(v)
			if err != nil {
				return err
			}
			hazards = []domain.HazardType{h}
		}

		switch format, _ := cmd.Flags().GetString("format"); format {
		case "table":
		case "geojson":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cat.FeatureCollection(hazards...))
		default:
			return fmt.Errorf("unknown format %q: want table or geojson", format)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "HAZARD\tNAME\tSTATE\tTIER\tRADIUS_KM\tCENTER")
		_, _ = fmt.Fprintln(w, "------\t----\t-----\t----\t---------\t------")
		for _, h := range hazards {
			for _, r := range cat.Regions(h) {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.4f, %.4f\n",
					hazardTitle(h), r.Name, r.State, r.BaselineTier, r.RadiusMeters/1000, r.Center.Lat, r.Center.Lon)
			}
		}
		return w.Flush()
	},
}

func init() {
	regionsCmd.Flags().String("hazard", "", "only list zones for this hazard")
	regionsCmd.Flags().String("format", "table", "output format: table or geojson")
	rootCmd.AddCommand(regionsCmd)
}
