package cmd

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/evbrite/eventbrite"
)

// maxConcurrentFetches bounds parallel requests for multi-id commands
const maxConcurrentFetches = 5

var (
	filterExpr  string
	preset      string
	pageFlag    int
	expandFlag  []string
	organizerID string
	userID      string

	searchQuery     string
	searchLocation  string
	searchWithin    string
	searchCategory  []string
	searchPrice     string
	searchSort      string
	startAfterFlag  string
	startBeforeFlag string
)

// eventsCmd groups the event commands
var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"event"},
	Short:   "List, inspect and publish events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events of an organizer, or the events you own",
	Long: `List the events of --organizer (or defaults.organizer_id from config).
Without an organizer the events owned by the current user are listed.

Use --filter with an expression, or --preset with a name from
filter.presets, to narrow each fetched page.`,
	Args: cobra.NoArgs,
	RunE: runEventsList,
}

var eventsOwnedCmd = &cobra.Command{
	Use:   "owned",
	Short: "List the events owned by a user",
	Args:  cobra.NoArgs,
	RunE:  runEventsOwned,
}

var eventsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search public events",
	Args:  cobra.NoArgs,
	RunE:  runEventsSearch,
}

var eventsGetCmd = &cobra.Command{
	Use:   "get ID [ID...]",
	Short: "Show one or more events",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEventsGet,
}

var eventsDescriptionCmd = &cobra.Command{
	Use:   "description ID",
	Short: "Print the full HTML description of an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsDescription,
}

var eventsPublishCmd = &cobra.Command{
	Use:   "publish ID",
	Short: "Publish a draft event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, args[0], true)
	},
}

var eventsUnpublishCmd = &cobra.Command{
	Use:   "unpublish ID",
	Short: "Take a live event back to draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsOwnedCmd, eventsSearchCmd, eventsGetCmd,
		eventsDescriptionCmd, eventsPublishCmd, eventsUnpublishCmd)

	for _, c := range []*cobra.Command{eventsListCmd, eventsOwnedCmd, eventsSearchCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to each page")
		c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
		c.Flags().IntVar(&pageFlag, "page", 1, "first page to fetch")
		c.Flags().StringSliceVar(&expandFlag, "expand", nil, "related objects to expand, e.g. venue,organizer")
	}
	eventsListCmd.Flags().StringVar(&organizerID, "organizer", "", "organizer id (default from config)")
	eventsOwnedCmd.Flags().StringVar(&userID, "user", "", "user id (default from config, or the current user)")
	eventsGetCmd.Flags().StringSliceVar(&expandFlag, "expand", nil, "related objects to expand")

	eventsSearchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "free text query")
	eventsSearchCmd.Flags().StringVar(&searchLocation, "location", "", "address to search around")
	eventsSearchCmd.Flags().StringVar(&searchWithin, "within", "", "distance from --location, e.g. 10km")
	eventsSearchCmd.Flags().StringSliceVar(&searchCategory, "category", nil, "category ids")
	eventsSearchCmd.Flags().StringVar(&searchPrice, "price", "", "free or paid")
	eventsSearchCmd.Flags().StringVar(&searchSort, "sort", "", "date, distance or best; prefix with - to reverse")
	eventsSearchCmd.Flags().StringVar(&startAfterFlag, "start-after", "", "only events starting after this date")
	eventsSearchCmd.Flags().StringVar(&startBeforeFlag, "start-before", "", "only events starting before this date")
}

func runEventsList(cmd *cobra.Command, args []string) error {
	opts := &eventbrite.RequestOptions{
		OrganizerID: firstNonEmpty(organizerID, cfg.Defaults.OrganizerID),
		UserID:      cfg.Defaults.UserID,
		Expand:      expandFlag,
	}
	return listEvents(cmd, func(page int) (*eventbrite.Page[eventbrite.Event], error) {
		opts.Page = page
		return client.Events().List(cmd.Context(), opts)
	})
}

func runEventsOwned(cmd *cobra.Command, args []string) error {
	opts := &eventbrite.RequestOptions{
		UserID: firstNonEmpty(userID, cfg.Defaults.UserID),
		Expand: expandFlag,
	}
	return listEvents(cmd, func(page int) (*eventbrite.Page[eventbrite.Event], error) {
		opts.Page = page
		return client.OwnedEvents(cmd.Context(), opts)
	})
}

func runEventsSearch(cmd *cobra.Command, args []string) error {
	startAfter, err := parseTime(startAfterFlag)
	if err != nil {
		return err
	}
	startBefore, err := parseTime(startBeforeFlag)
	if err != nil {
		return err
	}

	params := eventbrite.SearchParams{
		Query:           searchQuery,
		LocationAddress: searchLocation,
		LocationWithin:  searchWithin,
		StartAfter:      startAfter,
		StartBefore:     startBefore,
		Categories:      searchCategory,
		Price:           searchPrice,
		SortBy:          eventbrite.SortOrder(searchSort),
		Expand:          expandFlag,
	}

	logger.Info().Str("query", searchQuery).Str("location", searchLocation).Msg("Searching events")

	return listEvents(cmd, func(page int) (*eventbrite.Page[eventbrite.Event], error) {
		params.Page = page
		return client.SearchEvents(cmd.Context(), params)
	})
}

// listEvents pages through events, applying --filter or --preset to each page
func listEvents(cmd *cobra.Command, fetch pageFunc[eventbrite.Event]) error {
	if filterExpr != "" && preset != "" {
		return fmt.Errorf("--filter and --preset are mutually exclusive")
	}

	w := cmd.OutOrStdout()
	return paginate(w, pageFlag, fetch, func(events []eventbrite.Event) error {
		var err error
		switch {
		case filterExpr != "":
			events, err = filters.Apply(cmd.Context(), filterExpr, events)
		case preset != "":
			events, err = filters.ApplyPreset(cmd.Context(), preset, events)
		}
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}

		return render(w, cfg.Output.Format, events, func(t *uitable.Table) {
			t.AddRow("ID", "NAME", "STATUS", "START", "CAPACITY", "FREE")
			for _, e := range events {
				t.AddRow(e.ID, e.Title(), e.Status, formatDate(e.Start), e.Capacity, e.IsFree)
			}
		})
	})
}

func runEventsGet(cmd *cobra.Command, args []string) error {
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFetches)

	opts := &eventbrite.RequestOptions{Expand: expandFlag}
	events := make([]*eventbrite.Event, len(args))
	for i, id := range args {
		g.Go(func() error {
			event, err := client.Events().Get(ctx, id, opts)
			if err != nil {
				return fmt.Errorf("failed to get event %s: %w", id, err)
			}
			events[i] = event
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, events, func(t *uitable.Table) {
		for i, e := range events {
			if i > 0 {
				t.AddRow("")
			}
			t.AddRow("ID:", e.ID)
			t.AddRow("Name:", e.Title())
			t.AddRow("Status:", e.Status)
			t.AddRow("Start:", formatDate(e.Start))
			t.AddRow("End:", formatDate(e.End))
			t.AddRow("Capacity:", e.Capacity)
			t.AddRow("Free:", e.IsFree)
			t.AddRow("Online:", e.OnlineEvent)
			t.AddRow("Venue:", orDash(e.VenueID))
			t.AddRow("Organizer:", orDash(e.OrganizerID))
			t.AddRow("URL:", orDash(e.URL))
			if summary := strings.TrimSpace(e.Summary); summary != "" {
				t.AddRow("Summary:", summary)
			}
		}
	})
}

func runEventsDescription(cmd *cobra.Command, args []string) error {
	desc, err := client.FullDescription(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, desc, func(t *uitable.Table) {
		t.AddRow(desc.Description)
	})
}

func runTransition(cmd *cobra.Command, id string, publish bool) error {
	action := "unpublish"
	if publish {
		action = "publish"
	}

	ok, err := confirm(fmt.Sprintf("Really %s event %s?", action, id))
	if err != nil {
		return err
	}
	if !ok {
		logger.Info().Str("event_id", id).Msgf("Cancelled %s", action)
		return nil
	}

	if publish {
		err = client.Publish(cmd.Context(), id)
	} else {
		err = client.Unpublish(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	logger.Info().Str("event_id", id).Str("action", action).Msg("Event updated")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Event %s %sed\n", id, action)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
