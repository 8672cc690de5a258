package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

var calendarsJSON bool

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List the linked account's calendars",
	RunE:  runCalendars,
}

func init() {
	calendarsCmd.Flags().BoolVar(&calendarsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(calendarsCmd)
}

func runCalendars(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	d, cleanup, err := newDriver(ctx, "")
	if err != nil {
		return err
	}
	defer cleanup()

	calendars, err := d.ListCalendars(ctx)
	if err != nil {
		return fmt.Errorf("listing calendars: %w", err)
	}

	if calendarsJSON {
		data, err := json.MarshalIndent(calendars, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal calendars: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(calendars) == 0 {
		cmd.Println("No calendars. Run 'gcaldriver connect' to link an account.")
		return nil
	}

	ids := make([]string, 0, len(calendars))
	for id := range calendars {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cmd.Printf("Calendars for %s:\n\n", d.Account())
	for _, id := range ids {
		cal := calendars[id]
		marker := " "
		if cal.Active {
			marker = "*"
		}
		cmd.Printf("  %s %s\n", marker, cal.Name)
		cmd.Printf("      id: %s\n", cal.ID)
		if cal.Color != "" {
			cmd.Printf("      color: #%s\n", cal.Color)
		}
	}
	cmd.Println()
	cmd.Println("* = active (shown in the host calendar view). All calendars are read-only.")
	return nil
}

// printEvent writes one event in the human-readable list format shared by
// the events and event commands.
func printEvent(cmd *cobra.Command, event domain.Event) {
	when := "unknown time"
	if !event.Start.IsZero() {
		if event.AllDay {
			when = event.Start.Format("2006-01-02") + " (all day)"
		} else {
			when = event.Start.Format("2006-01-02 15:04")
			if !event.End.IsZero() {
				when += " - " + event.End.Format("15:04")
			}
		}
	}

	title := event.Title
	if title == "" {
		title = "(no title)"
	}

	cmd.Printf("  %s  %s\n", when, title)
	cmd.Printf("      id: %s\n", event.ID)
	if event.Location != "" {
		cmd.Printf("      location: %s\n", event.Location)
	}
	if len(event.Attendees) > 0 {
		cmd.Printf("      attendees: %d\n", len(event.Attendees))
	}
}
