package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <token>",
	Short:   "Show a reservation by its token",
	GroupID: "reservations",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := hallbook.GetReservation(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetching reservation: %w", err)
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}
		printReservation(res)
		return nil
	},
}
