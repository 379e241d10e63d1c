package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Assess every demonstration city",
	Long:  "Runs an assessment for each demo city in the catalog and prints a one-line summary per city.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newAssessor(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "CITY\tSCORE\tTIER\tPRIMARY\tSEASON\tCONFIDENCE")
		_, _ = fmt.Fprintln(w, "----\t-----\t----\t-------\t------\t----------")
		for _, city := range a.Catalog().DemoCities() {
			r, err := a.Assess(cmd.Context(), city.Location)
			if err != nil {
				return fmt.Errorf("assess %s: %w", city.Name, err)
			}
			_, _ = fmt.Fprintf(w, "%s\t%.0f\t%s\t%s\t%s\t%.0f%%\n",
				city.Name, r.Overall.Score, r.Overall.Tier, hazardTitle(r.Overall.Primary.Type), r.Overall.Season, r.Overall.ConfidencePct)
		}
		return w.Flush()
	},
}

func init() {
	addAssessFlags(demoCmd)
	rootCmd.AddCommand(demoCmd)
}
