package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumir-ai/tbi-engine/internal/config"
	"github.com/lumir-ai/tbi-engine/internal/vocab"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tbi",
	Short: "Trading Behavior Intelligence engine",
	Long:  "Derives deterministic trading-behavior indicators from a person's name, date of birth, and a reference date, and serves them over CLI and HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if cfg.Vocab.OverridesFile != "" {
			if err := vocab.LoadOverrides(cfg.Vocab.OverridesFile); err != nil {
				return err
			}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
