package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/mechapp/internal/domain/availability"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots <schedule text>",
		Short: "Print the hourly slots generated for a workshop schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			r := availability.ComputeScheduleRange(text)
			if _, ok := availability.ParseScheduleRange(text); !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "schedule not understood, using default window")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n",
				availability.FormatMinutes(r.Start), availability.FormatMinutes(r.End))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(availability.GenerateTimeSlots(r), " "))
			return nil
		},
	}
}

func newCalendarCmd() *cobra.Command {
	var (
		month       string
		unavailable []string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Render the booking calendar of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := availability.NewCalendarState(timezone.Now())

			if month != "" {
				m, err := time.ParseInLocation("2006-01", month, timezone.App())
				if err != nil {
					return fmt.Errorf("invalid --month %q: %w", month, err)
				}
				state.CurrentMonth = availability.StartOfMonth(m)
			}
			state.SetUnavailableDates(availability.NewDateSet(unavailable...))

			renderGrid(cmd, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM), defaults to the current one")
	cmd.Flags().StringSliceVar(&unavailable, "unavailable", nil, "Blocked dates (YYYY-MM-DD)")
	return cmd
}

// renderGrid marks selectable days with their number and the rest with dots.
func renderGrid(cmd *cobra.Command, state *availability.CalendarState) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, state.CurrentMonth.Format("January 2006"))
	fmt.Fprintln(out, " Lu  Ma  Mi  Ju  Vi  Sá  Do")

	grid := state.Grid()
	for i, cell := range grid {
		switch {
		case !cell.InMonth:
			fmt.Fprint(out, "    ")
		case cell.Selected:
			fmt.Fprintf(out, "[%2d]", cell.Day)
		case cell.Selectable:
			fmt.Fprintf(out, " %2d ", cell.Day)
		default:
			fmt.Fprint(out, "  · ")
		}
		if i%7 == 6 {
			fmt.Fprintln(out)
		}
	}
}
