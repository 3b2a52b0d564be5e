package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/client"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Short:   "Show per-day availability for a month",
	GroupID: "availability",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")
		halls, _ := cmd.Flags().GetStringSlice("hall")

		// Default to the current month.
		now := time.Now()
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = int(now.Month())
		}

		resp, err := hallbook.Calendar(context.Background(), &client.CalendarRequest{
			Year:  year,
			Month: month,
			Halls: halls,
		})
		if err != nil {
			return fmt.Errorf("fetching calendar: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		printCalendar(resp)
		return nil
	},
}

func init() {
	calendarCmd.Flags().Int("year", 0, "calendar year (default: current)")
	calendarCmd.Flags().Int("month", 0, "calendar month 1-12 (default: current)")
	calendarCmd.Flags().StringSlice("hall", nil, "restrict to specific halls (default: all)")
}
