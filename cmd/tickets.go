package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/s0up4200/evbrite/eventbrite"
)

var (
	eventFlag     string
	codeFlag      string
	ticketFlags   []string
	quantityFlag  int
	codeStartFlag string
	codeEndFlag   string
)

var attendeesCmd = &cobra.Command{
	Use:     "attendees",
	Aliases: []string{"attendee"},
	Short:   "List the attendees of an event",
}

var attendeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the attendees of an event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &eventbrite.RequestOptions{EventID: eventFlag, Expand: expandFlag}
		w := cmd.OutOrStdout()
		return paginate(w, pageFlag, func(page int) (*eventbrite.Page[eventbrite.Attendee], error) {
			opts.Page = page
			return client.Attendees().List(cmd.Context(), opts)
		}, func(attendees []eventbrite.Attendee) error {
			return render(w, cfg.Output.Format, attendees, func(t *uitable.Table) {
				t.AddRow("ID", "NAME", "EMAIL", "TICKET", "STATUS", "CHECKED IN")
				for _, a := range attendees {
					t.AddRow(a.ID, orDash(a.Profile.Name), orDash(a.Profile.Email),
						orDash(a.TicketClassName), orDash(a.Status), a.CheckedIn)
				}
			})
		})
	},
}

var ticketClassesCmd = &cobra.Command{
	Use:     "ticket-classes",
	Aliases: []string{"tickets"},
	Short:   "List the ticket classes of an event",
}

var ticketClassesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the ticket classes of an event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &eventbrite.RequestOptions{EventID: eventFlag}
		w := cmd.OutOrStdout()
		return paginate(w, pageFlag, func(page int) (*eventbrite.Page[eventbrite.TicketClass], error) {
			opts.Page = page
			return eventbrite.List[eventbrite.TicketClass](cmd.Context(), client, opts)
		}, func(classes []eventbrite.TicketClass) error {
			return render(w, cfg.Output.Format, classes, func(t *uitable.Table) {
				t.AddRow("ID", "NAME", "COST", "SOLD", "REMAINING", "HIDDEN")
				for _, tc := range classes {
					t.AddRow(tc.ID, tc.Name, formatCost(&tc), tc.QuantitySold, tc.Remaining(), tc.Hidden)
				}
			})
		})
	},
}

var accessCodesCmd = &cobra.Command{
	Use:     "access-codes",
	Aliases: []string{"access-code", "codes"},
	Short:   "Manage the access codes of an event",
}

var accessCodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the access codes of an event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &eventbrite.RequestOptions{EventID: eventFlag}
		w := cmd.OutOrStdout()
		return paginate(w, pageFlag, func(page int) (*eventbrite.Page[eventbrite.AccessCode], error) {
			opts.Page = page
			return client.AccessCodes().List(cmd.Context(), opts)
		}, func(codes []eventbrite.AccessCode) error {
			return render(w, cfg.Output.Format, codes, accessCodeRows(codes))
		})
	},
}

var accessCodesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show an access code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := eventbrite.Get[eventbrite.AccessCode](cmd.Context(), client, args[0],
			&eventbrite.RequestOptions{EventID: eventFlag})
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, code, accessCodeRows([]eventbrite.AccessCode{*code}))
	},
}

var accessCodesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an access code for an event",
	Long: `Create an access code that unlocks hidden ticket classes.

Example:
  evbrite access-codes create --event 123 --code VIP --ticket 456 --ticket 789 --quantity 20`,
	Args: cobra.NoArgs,
	RunE: runAccessCodeCreate,
}

func accessCodeRows(codes []eventbrite.AccessCode) func(t *uitable.Table) {
	return func(t *uitable.Table) {
		t.AddRow("ID", "CODE", "TICKETS", "AVAILABLE", "SOLD", "STARTS", "ENDS")
		for _, c := range codes {
			t.AddRow(c.ID, c.Code, orDash(strings.Join(c.TicketIDs, ",")),
				c.QuantityAvailable, c.QuantitySold, formatDate(c.StartDate), formatDate(c.EndDate))
		}
	}
}

func runAccessCodeCreate(cmd *cobra.Command, args []string) error {
	if codeFlag == "" {
		return errors.New("--code is required")
	}
	if len(ticketFlags) == 0 {
		return errors.New("at least one --ticket is required")
	}

	code := &eventbrite.AccessCode{
		Code:              codeFlag,
		TicketIDs:         ticketFlags,
		QuantityAvailable: quantityFlag,
	}

	start, err := parseTime(codeStartFlag)
	if err != nil {
		return err
	}
	if !start.IsZero() {
		code.StartDate = eventbrite.NewDateTimeTZ(start)
	}
	end, err := parseTime(codeEndFlag)
	if err != nil {
		return err
	}
	if !end.IsZero() {
		if !start.IsZero() && end.Before(start) {
			return fmt.Errorf("--end %s is before --start %s", codeEndFlag, codeStartFlag)
		}
		code.EndDate = eventbrite.NewDateTimeTZ(end)
	}

	created, err := client.AccessCodes().Create(cmd.Context(), code, &eventbrite.RequestOptions{EventID: eventFlag})
	if err != nil {
		return err
	}

	logger.Info().
		Str("event_id", eventFlag).
		Str("access_code_id", created.ID).
		Str("code", created.Code).
		Msg("Access code created")

	return render(cmd.OutOrStdout(), cfg.Output.Format, created, accessCodeRows([]eventbrite.AccessCode{*created}))
}

func formatCost(tc *eventbrite.TicketClass) string {
	switch {
	case tc.Free:
		return "free"
	case tc.Donation:
		return "donation"
	case tc.Cost == nil:
		return "-"
	case tc.Cost.Display != "":
		return tc.Cost.Display
	default:
		return tc.Cost.MajorValue.StringFixed(2) + " " + tc.Cost.Currency
	}
}

func init() {
	rootCmd.AddCommand(attendeesCmd, ticketClassesCmd, accessCodesCmd)
	attendeesCmd.AddCommand(attendeesListCmd)
	ticketClassesCmd.AddCommand(ticketClassesListCmd)
	accessCodesCmd.AddCommand(accessCodesListCmd, accessCodesGetCmd, accessCodesCreateCmd)

	// every command here is scoped to one event
	for _, c := range []*cobra.Command{attendeesCmd, ticketClassesCmd, accessCodesCmd} {
		c.PersistentFlags().StringVarP(&eventFlag, "event", "e", "", "event id")
		_ = c.MarkPersistentFlagRequired("event")
	}
	for _, c := range []*cobra.Command{attendeesListCmd, ticketClassesListCmd, accessCodesListCmd} {
		c.Flags().IntVar(&pageFlag, "page", 1, "first page to fetch")
	}
	attendeesListCmd.Flags().StringSliceVar(&expandFlag, "expand", nil, "related objects to expand, e.g. profile")

	f := accessCodesCreateCmd.Flags()
	f.StringVar(&codeFlag, "code", "", "the code attendees enter")
	f.StringSliceVar(&ticketFlags, "ticket", nil, "ticket class ids the code unlocks (repeatable)")
	f.IntVar(&quantityFlag, "quantity", 0, "number of times the code can be used (0 for unlimited)")
	f.StringVar(&codeStartFlag, "start", "", "when the code becomes valid")
	f.StringVar(&codeEndFlag, "end", "", "when the code expires")
}
