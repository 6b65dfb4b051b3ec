package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lumir-ai/tbi-engine/pkg/tradingdata"
)

var tradingCmd = &cobra.Command{
	Use:   "trading ACCOUNT_NUMBER",
	Short: "Fetch trading analysis for an account and print it as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Trading.AnalyzeURL == "" {
			return eris.New("trading.analyze_url is not configured")
		}

		client := tradingdata.NewClient(cfg.Trading.AnalyzeURL,
			tradingdata.WithTimeout(time.Duration(cfg.Trading.TimeoutSecs)*time.Second),
			tradingdata.WithRateLimit(cfg.Trading.RequestsPerSec),
		)

		data, err := client.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tradingdata.RenderMarkdown(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tradingCmd)
}
