package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var hallsCmd = &cobra.Command{
	Use:     "halls",
	Short:   "List the configured halls and operating hours",
	GroupID: "availability",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := hallbook.ListHalls(context.Background())
		if err != nil {
			return fmt.Errorf("listing halls: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		for _, h := range resp.Halls {
			fmt.Println(h)
		}
		if open, ok := resp.Hours["open"]; ok {
			fmt.Printf("\nHours: %s–%s\n", open, resp.Hours["close"])
		}
		return nil
	},
}
