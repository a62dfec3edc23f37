package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/s0up4200/evbrite/eventbrite"
)

var (
	orgEventStatus []string
	orgEventOrder  string
	onlyPublic     bool
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the user the token belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, user, func(t *uitable.Table) {
			t.AddRow("ID:", user.ID)
			t.AddRow("Name:", orDash(user.GetDisplayName()))
			t.AddRow("Email:", orDash(user.PrimaryEmail()))
		})
	},
}

var venuesCmd = &cobra.Command{
	Use:     "venues",
	Aliases: []string{"venue"},
	Short:   "List and inspect venues",
}

var venuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the venues of a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &eventbrite.RequestOptions{UserID: firstNonEmpty(userID, cfg.Defaults.UserID)}
		w := cmd.OutOrStdout()
		return paginate(w, pageFlag, func(page int) (*eventbrite.Page[eventbrite.Venue], error) {
			opts.Page = page
			return eventbrite.List[eventbrite.Venue](cmd.Context(), client, opts)
		}, func(venues []eventbrite.Venue) error {
			return render(w, cfg.Output.Format, venues, venueRows(venues))
		})
	},
}

var venuesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a venue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		venue, err := eventbrite.Get[eventbrite.Venue](cmd.Context(), client, args[0], nil)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, venue, venueRows([]eventbrite.Venue{*venue}))
	},
}

func venueRows(venues []eventbrite.Venue) func(t *uitable.Table) {
	return func(t *uitable.Table) {
		t.AddRow("ID", "NAME", "CITY", "COUNTRY", "CAPACITY")
		for _, v := range venues {
			t.AddRow(v.ID, v.Name, orDash(v.Address.City), orDash(v.Address.Country), v.Capacity)
		}
	}
}

var organizersCmd = &cobra.Command{
	Use:     "organizers",
	Aliases: []string{"organizer"},
	Short:   "List and inspect organizers",
}

var organizersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the organizer profiles of a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &eventbrite.RequestOptions{UserID: firstNonEmpty(userID, cfg.Defaults.UserID)}
		w := cmd.OutOrStdout()
		return paginate(w, pageFlag, func(page int) (*eventbrite.Page[eventbrite.Organizer], error) {
			opts.Page = page
			return client.Organizers().List(cmd.Context(), opts)
		}, func(organizers []eventbrite.Organizer) error {
			return render(w, cfg.Output.Format, organizers, organizerRows(organizers))
		})
	},
}

var organizersGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show an organizer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		organizer, err := client.Organizers().Get(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, organizer, organizerRows([]eventbrite.Organizer{*organizer}))
	},
}

var organizersEventsCmd = &cobra.Command{
	Use:   "events [ID]",
	Short: "List the events of an organizer",
	Long: `List the events of an organizer, filtered server side by status, start
date and visibility. The organizer defaults to defaults.organizer_id.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganizerEvents,
}

func organizerRows(organizers []eventbrite.Organizer) func(t *uitable.Table) {
	return func(t *uitable.Table) {
		t.AddRow("ID", "NAME", "UPCOMING", "PAST", "WEBSITE")
		for _, o := range organizers {
			t.AddRow(o.ID, o.Name, o.NumFutureEvents, o.NumPastEvents, orDash(o.Website))
		}
	}
}

func runOrganizerEvents(cmd *cobra.Command, args []string) error {
	id := cfg.Defaults.OrganizerID
	if len(args) == 1 {
		id = args[0]
	}
	if id == "" {
		return fmt.Errorf("organizer id required: pass it as an argument or set defaults.organizer_id")
	}

	startAfter, err := parseTime(startAfterFlag)
	if err != nil {
		return err
	}
	startBefore, err := parseTime(startBeforeFlag)
	if err != nil {
		return err
	}

	params := eventbrite.OrganizerEventsParams{
		OrderBy:     eventbrite.OrganizerEventOrder(orgEventOrder),
		StartAfter:  startAfter,
		StartBefore: startBefore,
		Expand:      expandFlag,
	}
	for _, s := range orgEventStatus {
		params.Status = append(params.Status, eventbrite.OrganizerEventStatus(s))
	}
	if cmd.Flags().Changed("only-public") {
		params.OnlyPublic = &onlyPublic
	}

	return listEvents(cmd, func(page int) (*eventbrite.Page[eventbrite.Event], error) {
		params.Page = page
		return client.OrganizerEvents(cmd.Context(), id, params)
	})
}

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "Browse event categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List event categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		return paginate(w, pageFlag, func(page int) (*eventbrite.Page[eventbrite.Category], error) {
			return eventbrite.List[eventbrite.Category](cmd.Context(), client, &eventbrite.RequestOptions{Page: page})
		}, func(categories []eventbrite.Category) error {
			return render(w, cfg.Output.Format, categories, func(t *uitable.Table) {
				t.AddRow("ID", "NAME", "SHORT NAME")
				for _, c := range categories {
					t.AddRow(c.ID, c.Name, orDash(c.ShortName))
				}
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(meCmd, venuesCmd, organizersCmd, categoriesCmd)
	venuesCmd.AddCommand(venuesListCmd, venuesGetCmd)
	organizersCmd.AddCommand(organizersListCmd, organizersGetCmd, organizersEventsCmd)
	categoriesCmd.AddCommand(categoriesListCmd)

	for _, c := range []*cobra.Command{venuesListCmd, organizersListCmd} {
		c.Flags().StringVar(&userID, "user", "", "user id (default from config, or the current user)")
	}
	for _, c := range []*cobra.Command{venuesListCmd, organizersListCmd, categoriesListCmd} {
		c.Flags().IntVar(&pageFlag, "page", 1, "first page to fetch")
	}

	f := organizersEventsCmd.Flags()
	f.StringSliceVar(&orgEventStatus, "status", nil, "all, draft, live, canceled, started or ended")
	f.StringVar(&orgEventOrder, "order", "", "start_asc, start_desc, created_asc or created_desc")
	f.StringVar(&startAfterFlag, "start-after", "", "only events starting after this date")
	f.StringVar(&startBeforeFlag, "start-before", "", "only events starting before this date")
	f.BoolVar(&onlyPublic, "only-public", false, "hide private events")
	f.StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to each page")
	f.StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	f.IntVar(&pageFlag, "page", 1, "first page to fetch")
	f.StringSliceVar(&expandFlag, "expand", nil, "related objects to expand")
}
