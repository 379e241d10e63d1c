package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess hazard risk at a coordinate",
	Long:  "Fetches current weather and recent earthquakes (unless --offline) and prints the multi-hazard risk report for --lat/--lon.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		format, _ := cmd.Flags().GetString("format")

		a, err := newAssessor(cmd)
		if err != nil {
			return err
		}
		report, err := a.Assess(cmd.Context(), domain.Coordinate{Lat: lat, Lon: lon})
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), report, format)
	},
}

func init() {
	f := assessCmd.Flags()
	f.Float64("lat", 0, "latitude in degrees")
	f.Float64("lon", 0, "longitude in degrees")
	f.String("format", "text", "output format: text or json")
	addAssessFlags(assessCmd)
	_ = assessCmd.MarkFlagRequired("lat")
	_ = assessCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(assessCmd)
}

var titleCaser = cases.Title(language.English)

// hazardTitle renders a hazard type for human-readable output.
func hazardTitle(h domain.HazardType) string {
	return titleCaser.String(string(h))
}

func writeReport(out io.Writer, r domain.RiskReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "text":
	default:
		return fmt.Errorf("unknown format %q: want text or json", format)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Location:\t%.4f, %.4f\n", r.Location.Lat, r.Location.Lon)
	_, _ = fmt.Fprintf(w, "Season:\t%s\n", r.Overall.Season)
	_, _ = fmt.Fprintf(w, "Overall:\t%.0f (%s)\n", r.Overall.Score, r.Overall.Tier)
	_, _ = fmt.Fprintf(w, "Primary hazard:\t%s\n", hazardTitle(r.Overall.Primary.Type))
	_, _ = fmt.Fprintf(w, "Confidence:\t%.0f%%\n", r.Overall.ConfidencePct)
	if r.RegionProfile != nil {
		_, _ = fmt.Fprintf(w, "State profile:\t%s: %s, %s, %s\n", r.RegionProfile.State,
			r.RegionProfile.Primary, r.RegionProfile.Secondary, r.RegionProfile.Tertiary)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "HAZARD\tSCORE\tTIER\tNEAREST\tFACTORS")
	_, _ = fmt.Fprintln(w, "------\t-----\t----\t-------\t-------")
	for _, h := range domain.HazardOrder {
		a, ok := r.Hazards[h]
		if !ok {
			continue
		}
		nearest := "-"
		if a.NearestZoneKm != nil {
			nearest = fmt.Sprintf("%.0fkm %s", *a.NearestZoneKm, a.ZoneName)
		}
		_, _ = fmt.Fprintf(w, "%s\t%.0f\t%s\t%s\t%s\n", hazardTitle(h), a.Score, a.Tier, nearest, strings.Join(a.Factors, "; "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "\nRecommendations:")
	for _, rec := range r.Recommendations {
		_, _ = fmt.Fprintf(out, "  - %s\n", rec)
	}
	return nil
}
