package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	eventsFrom      string
	eventsTo        string
	eventsQuery     string
	eventsCalendars []string
	eventsJSON      bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events in a date range",
	Long: `List events in a date range across the linked account's calendars.

Without flags the coming week is shown. Dates are YYYY-MM-DD; the end date
is inclusive.`,
	RunE: runEvents,
}

var eventCmd = &cobra.Command{
	Use:   "event [id]",
	Short: "Show one event by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvent,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsFrom, "from", "", "range start date (default today)")
	eventsCmd.Flags().StringVar(&eventsTo, "to", "", "range end date (default start + 7 days)")
	eventsCmd.Flags().StringVarP(&eventsQuery, "query", "q", "", "free-text filter applied by the provider")
	eventsCmd.Flags().StringSliceVar(&eventsCalendars, "calendar", nil, "restrict to these calendar ids")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(eventCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	start, end, err := resolveRange(eventsFrom, eventsTo)
	if err != nil {
		return err
	}

	d, cleanup, err := newDriver(ctx, "")
	if err != nil {
		return err
	}
	defer cleanup()

	events, err := d.LoadEvents(ctx, start, end, eventsQuery, eventsCalendars)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	if eventsJSON {
		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal events: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(events) == 0 {
		cmd.Println("No events in range.")
		return nil
	}

	cmd.Printf("%d event(s) from %s to %s:\n\n",
		len(events), start.Format("2006-01-02"), end.Format("2006-01-02"))
	for _, event := range events {
		printEvent(cmd, event)
		cmd.Println()
	}
	return nil
}

func runEvent(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, cleanup, err := newDriver(ctx, "")
	if err != nil {
		return err
	}
	defer cleanup()

	event, err := d.GetEvent(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching event: %w", err)
	}
	if event == nil {
		cmd.Println("Event not found.")
		return nil
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// resolveRange parses the from/to flags into an inclusive window.
func resolveRange(from, to string) (time.Time, time.Time, error) {
	start := time.Now().Truncate(24 * time.Hour)
	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		start = parsed
	}

	end := start.AddDate(0, 0, 7)
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		// The end date is inclusive: extend to the end of that day.
		end = parsed.AddDate(0, 0, 1)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to is before --from")
	}

	return start, end, nil
}
