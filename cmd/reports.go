package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumir-ai/tbi-engine/internal/store"
	"github.com/lumir-ai/tbi-engine/internal/tbi"
)

var (
	reportsName  string
	reportsFrom  string
	reportsLimit int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect stored indicator reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		filter := store.ReportFilter{
			Name:  reportsName,
			Limit: reportsLimit,
		}
		if reportsFrom != "" {
			from, err := tbi.ParseDate(reportsFrom)
			if err != nil {
				return err
			}
			filter.From = from
		}

		records, err := st.ListReports(cmd.Context(), filter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "no reports found")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(out, "%s  %s  %s\n",
				rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Name)
		}
		return nil
	},
}

var reportsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Print one stored report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.GetReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsName, "name", "", "filter by profile name")
	reportsListCmd.Flags().StringVar(&reportsFrom, "from", "", "only reports created on or after this date")
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 20, "maximum reports to list")
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsGetCmd)
	rootCmd.AddCommand(reportsCmd)
}
