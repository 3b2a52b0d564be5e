package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List reservations for a requester",
	GroupID: "reservations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		reservations, err := hallbook.ListReservations(context.Background(), email)
		if err != nil {
			return fmt.Errorf("listing reservations: %w", err)
		}

		if jsonOutput {
			printJSON(reservations)
			return nil
		}
		printReservationList(reservations)
		return nil
	},
}

func init() {
	listCmd.Flags().String("email", "", "requester email to list reservations for")
	listCmd.MarkFlagRequired("email")
}
