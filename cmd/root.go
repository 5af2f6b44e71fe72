package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carboniq/carboniq/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "carboniq",
	Short: "AI-powered climate impact simulator for NYC",
	Long:  "Serves a synthetic NYC CO₂ emission grid and simulates what-if scenarios from natural language prompts, diffed against a fixed baseline.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
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
