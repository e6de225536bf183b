package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/booking"
	"github.com/BruksfildServices01/mechapp/internal/config"
	"github.com/BruksfildServices01/mechapp/internal/integrations/mechapi"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

func newBookCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	var (
		email, password string
		mechanicID      uint
		date, hm        string
		details         booking.AppointmentDetails
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment through the API, like the booking page does",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			client := mechapi.NewClient(cfg.APIBaseURL, cfg.APITimeout, log)
			if res := client.Login(ctx, mechapi.LoginRequest{Email: email, Password: password}); !res.OK() {
				return fmt.Errorf("login failed: %s", describe(res.Message, res.Err))
			}

			s := booking.NewSession(client, timezone.Now(), log)
			if nav, err := s.LoadMechanics(ctx); err != nil || nav != booking.Stay {
				return navigationError(nav, err)
			}

			if mechanicID == 0 {
				for _, m := range s.Mechanics() {
					ws := "-"
					if m.Workshop != nil {
						ws = m.Workshop.Name + " (" + m.Workshop.Schedule + ")"
					}
					fmt.Fprintf(out, "%d\t%s\t%s\n", m.ID, m.Name, ws)
				}
				return nil
			}

			if nav, err := s.SelectMechanic(ctx, mechanicID); err != nil || nav != booking.Stay {
				return navigationError(nav, err)
			}

			if date == "" {
				renderCalendarView(cmd, s.Calendar())
				return nil
			}

			ok, nav := s.SelectDate(ctx, date)
			if nav != booking.Stay {
				return navigationError(nav, nil)
			}
			if !ok {
				return fmt.Errorf("%s is not selectable", date)
			}

			if hm == "" {
				view := s.TimeSlots()
				if view.Prompt != "" {
					return errors.New(view.Prompt)
				}
				for _, slot := range view.Slots {
					mark := ""
					if slot.Disabled {
						mark = " (reservado)"
					}
					fmt.Fprintf(out, "%s%s\n", slot.Time, mark)
				}
				return nil
			}

			if !s.SelectTime(hm) {
				return fmt.Errorf("%s is not an available time", hm)
			}

			res, nav, err := s.SubmitAppointment(ctx, details)
			if err != nil || nav != booking.Stay {
				return navigationError(nav, err)
			}
			if !res.OK() {
				return fmt.Errorf("booking rejected: %s", describe(res.Message, res.Err))
			}

			fmt.Fprintf(out, "appointment %d booked for %s\n",
				res.Value.ID, res.Value.ScheduledFor.In(timezone.App()).Format("2006-01-02 15:04"))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&email, "email", "", "Client email")
	f.StringVar(&password, "password", "", "Client password")
	f.UintVar(&mechanicID, "mechanic", 0, "Mechanic id; omit to list mechanics")
	f.StringVar(&date, "date", "", "Date (YYYY-MM-DD); omit to show the calendar")
	f.StringVar(&hm, "time", "", "Time (HH:MM); omit to list slots")
	f.StringVar(&details.Service, "service", "", "Requested service")
	f.StringVar(&details.VisitType, "visit", "taller", "Visit type: taller or domicilio")
	f.StringVar(&details.Address, "address", "", "Address for home visits")
	f.StringVar(&details.Notes, "notes", "", "Notes for the mechanic")
	return cmd
}

func renderCalendarView(cmd *cobra.Command, v booking.CalendarView) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, v.Month.Format("January 2006"))
	var free []string
	for _, c := range v.Cells {
		if c.Selectable {
			free = append(free, c.Key)
		}
	}
	fmt.Fprintln(out, strings.Join(free, "\n"))
}

func navigationError(nav booking.Navigation, err error) error {
	switch nav {
	case booking.GoToLogin:
		return errors.New("session expired, log in again")
	case booking.Forbidden:
		return errors.New("this account cannot book appointments")
	}
	return err
}

func describe(msg string, err error) string {
	if msg != "" {
		return msg
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}
