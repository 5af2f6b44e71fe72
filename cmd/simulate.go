package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [prompt]",
	Short: "Run one simulation and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := initService(cfg)
		if err != nil {
			return err
		}

		resp, err := svc.Simulate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
