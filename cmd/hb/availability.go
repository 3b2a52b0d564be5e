package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/hallbook/internal/client"
	"github.com/alfredjeanlab/hallbook/internal/ui"
	"github.com/spf13/cobra"
)

var availabilityCmd = &cobra.Command{
	Use:     "availability <hall>",
	Short:   "Check whether a hall is free for a time slot",
	GroupID: "availability",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("day")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")

		resp, err := hallbook.CheckAvailability(context.Background(), &client.AvailabilityRequest{
			Hall:  args[0],
			Day:   day,
			Start: start,
			End:   end,
		})
		if err != nil {
			return fmt.Errorf("checking availability: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		state := "fully-booked"
		if resp.Available {
			state = "available"
		}
		fmt.Printf("%s on %s %s–%s: %s\n", resp.Hall, resp.Day, resp.Start, resp.End, ui.RenderState(state))
		return nil
	},
}

func init() {
	availabilityCmd.Flags().String("day", "", "day to check (YYYY-MM-DD)")
	availabilityCmd.Flags().String("start", "", "start time (HH:MM)")
	availabilityCmd.Flags().String("end", "", "end time (HH:MM)")
	availabilityCmd.MarkFlagRequired("day")
	availabilityCmd.MarkFlagRequired("start")
	availabilityCmd.MarkFlagRequired("end")
}
