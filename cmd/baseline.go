package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Print the baseline emission grid as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := initService(cfg)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(svc.Baseline())
	},
}

func init() {
	rootCmd.AddCommand(baselineCmd)
}
