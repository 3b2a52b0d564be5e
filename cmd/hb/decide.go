package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/hallbook/internal/client"
	"github.com/spf13/cobra"
)

func runDecide(token, outcome, reason string) error {
	res, err := hallbook.Decide(context.Background(), token, &client.DecideRequest{
		Outcome: outcome,
		Reason:  reason,
	})
	if err != nil {
		return fmt.Errorf("deciding reservation: %w", err)
	}

	if jsonOutput {
		printJSON(res)
		return nil
	}
	printReservation(res)
	return nil
}

var approveCmd = &cobra.Command{
	Use:     "approve <token>",
	Short:   "Approve a pending reservation",
	GroupID: "reservations",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecide(args[0], "approved", "")
	},
}

var rejectCmd = &cobra.Command{
	Use:     "reject <token>",
	Short:   "Reject a pending reservation (requires --reason)",
	GroupID: "reservations",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return runDecide(args[0], "rejected", reason)
	},
}

func init() {
	rejectCmd.Flags().String("reason", "", "reason shown to the requester")
	rejectCmd.MarkFlagRequired("reason")
}
