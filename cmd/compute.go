package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumir-ai/tbi-engine/internal/tbi"
)

var (
	computeName string
	computeDOB  string
	computeRef  string
	computeJSON bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the full indicator report for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := buildProfile(computeName, computeDOB, computeRef)
		if err != nil {
			return err
		}

		report, err := tbi.Compute(profile)
		if err != nil {
			return err
		}

		if computeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Report for %s (born %s, as of %s)\n\n",
			profile.Name,
			profile.DateOfBirth.Format(tbi.DateLayoutISO),
			profile.ReferenceDate.Format(tbi.DateLayoutISO),
		)
		for _, v := range report.Values {
			line := fmt.Sprintf("%-5s %-32s %d/%d", v.Key, v.Label, v.Score, v.Max)
			if len(v.Set) > 0 {
				line += fmt.Sprintf("  set=%v", v.Set)
			}
			if v.Category != "" {
				line += "  " + v.Category
			}
			if v.Explanation != "" {
				line += "  (" + v.Explanation + ")"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

// buildProfile parses the date flags and assembles a validated profile.
// An empty reference date resolves to today; the engine itself never reads
// the clock.
func buildProfile(name, dob, ref string) (tbi.Profile, error) {
	dobDate, err := tbi.ParseDate(dob)
	if err != nil {
		return tbi.Profile{}, err
	}

	var refDate time.Time
	if strings.TrimSpace(ref) == "" {
		refDate = time.Now().UTC()
	} else {
		refDate, err = tbi.ParseDate(ref)
		if err != nil {
			return tbi.Profile{}, err
		}
	}

	return tbi.NewProfile(name, dobDate, refDate)
}

func init() {
	computeCmd.Flags().StringVar(&computeName, "name", "", "full name (required)")
	computeCmd.Flags().StringVar(&computeDOB, "dob", "", "date of birth, YYYY-MM-DD or DD/MM/YYYY (required)")
	computeCmd.Flags().StringVar(&computeRef, "ref", "", "reference date (default today)")
	computeCmd.Flags().BoolVar(&computeJSON, "json", false, "emit the report as JSON")
	computeCmd.MarkFlagRequired("name") //nolint:errcheck
	computeCmd.MarkFlagRequired("dob")  //nolint:errcheck
	rootCmd.AddCommand(computeCmd)
}
