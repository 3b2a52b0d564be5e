package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alfredjeanlab/hallbook/internal/client"
	"github.com/alfredjeanlab/hallbook/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printReservation(r *client.Reservation) {
	fmt.Printf("ID:         %s\n", r.ID)
	fmt.Printf("Hall:       %s\n", r.Hall)
	fmt.Printf("Day:        %s\n", r.Day)
	fmt.Printf("Time:       %s–%s\n", r.Start, r.End)
	fmt.Printf("Requester:  %s <%s>\n", r.Requester.Name, r.Requester.Email)
	fmt.Printf("State:      %s\n", ui.RenderState(r.DisplayState))
	if r.Token != "" {
		fmt.Printf("Token:      %s\n", r.Token)
	}
	if r.ApprovalRequired {
		fmt.Printf("Approval:   required\n")
	}
	if r.ClassifierReason != "" {
		fmt.Printf("Hold For:   %s\n", r.ClassifierReason)
	}
	if r.DecisionReason != "" {
		fmt.Printf("Reason:     %s\n", r.DecisionReason)
	}
	if r.CreatedAt != "" {
		fmt.Printf("Created:    %s\n", r.CreatedAt)
	}
	if r.DecidedAt != "" {
		fmt.Printf("Decided:    %s\n", r.DecidedAt)
	}
}

func printReservationList(reservations []*client.Reservation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHALL\tDAY\tTIME\tSTATE\tREQUESTER")
	for _, r := range reservations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s–%s\t%s\t%s\n",
			r.ID,
			r.Hall,
			r.Day,
			r.Start,
			r.End,
			ui.RenderState(r.DisplayState),
			r.Requester.Email,
		)
	}
	w.Flush()
	fmt.Printf("\n%d reservations\n", len(reservations))
}

func printCalendar(resp *client.CalendarResponse) {
	fmt.Printf("%04d-%02d\n", resp.Year, resp.Month)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tSTATUS")
	days := 0
	for d := 1; d <= 31; d++ {
		status, ok := resp.Days[d]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%02d\t%s\n", d, ui.RenderState(status))
		days++
	}
	w.Flush()
	fmt.Printf("\n%d days\n", days)
}
