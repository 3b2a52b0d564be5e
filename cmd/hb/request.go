package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/hallbook/internal/client"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:     "request <hall>",
	Short:   "Request a reservation for a hall",
	GroupID: "reservations",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hall := args[0]
		day, _ := cmd.Flags().GetString("day")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		res, err := hallbook.CreateReservation(context.Background(), &client.CreateReservationRequest{
			Hall:      hall,
			Day:       day,
			Start:     start,
			End:       end,
			Requester: client.Requester{Name: name, Email: email},
		})
		if err != nil {
			return fmt.Errorf("requesting reservation: %w", err)
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}
		printReservation(res)
		if res.Token != "" {
			fmt.Println("\nKeep the token: it is the only way to look up or decide this reservation.")
		}
		return nil
	},
}

func init() {
	requestCmd.Flags().String("day", "", "reservation day (YYYY-MM-DD)")
	requestCmd.Flags().String("start", "", "start time (HH:MM)")
	requestCmd.Flags().String("end", "", "end time (HH:MM)")
	requestCmd.Flags().String("name", "", "requester name")
	requestCmd.Flags().String("email", "", "requester email")
	requestCmd.MarkFlagRequired("day")
	requestCmd.MarkFlagRequired("start")
	requestCmd.MarkFlagRequired("end")
	requestCmd.MarkFlagRequired("name")
	requestCmd.MarkFlagRequired("email")
}
