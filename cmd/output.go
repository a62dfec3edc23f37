package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	json "github.com/goccy/go-json"
	"github.com/gosuri/uitable"

	"github.com/s0up4200/evbrite/config"
	"github.com/s0up4200/evbrite/eventbrite"
)

// render writes v in the configured format; table fills the rows for table output
func render(w io.Writer, format string, v any, table func(t *uitable.Table)) error {
	switch strings.ToLower(format) {
	case config.FormatYAML:
		yamlBytes, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("error formatting output as yaml: %w", err)
		}
		fmt.Fprintln(w, string(yamlBytes))

	case config.FormatJSON:
		prettyJSON, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting output as json: %w", err)
		}
		fmt.Fprintln(w, string(prettyJSON))

	default:
		t := uitable.New()
		t.MaxColWidth = 60
		t.Wrap = true
		table(t)
		fmt.Fprintln(w, t)
	}

	return nil
}

// confirm asks a yes/no question; --yes skips it and non-interactive
// sessions refuse
func confirm(message string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return false, errors.New("refusing to continue without confirmation in a non-interactive session; pass --yes")
	}

	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false, fmt.Errorf("error confirming: %w", err)
	}
	return ok, nil
}

// pageFunc fetches one page of a list endpoint
type pageFunc[T any] func(page int) (*eventbrite.Page[T], error)

// paginate prints pages starting at start. On a terminal it asks before
// fetching each following page; otherwise it stops after one.
func paginate[T any](w io.Writer, start int, fetch pageFunc[T], show func(items []T) error) error {
	page := max(start, 1)
	for {
		result, err := fetch(page)
		if err != nil {
			return err
		}

		if len(result.Items) == 0 && page == max(start, 1) {
			fmt.Fprintln(w, "No results found.")
			return nil
		}

		if err := show(result.Items); err != nil {
			return err
		}

		next, err := result.Pagination.NextPage()
		if errors.Is(err, eventbrite.ErrNoMorePages) {
			return nil
		}

		if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
			return nil
		}

		var more bool
		fmt.Fprintln(w)
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf("Page %d of %d (%d results). Fetch more?",
					result.Pagination.PageNumber, result.Pagination.PageCount, result.Pagination.ObjectCount),
			},
			&more,
		); err != nil {
			return fmt.Errorf("error confirming if user wishes to continue: %w", err)
		}
		fmt.Fprintln(w)
		if !more {
			return nil
		}

		page = next
	}
}

// timeLayouts are accepted by date flags
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseTime parses a date flag; an empty value yields the zero time
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339", value)
}

func formatDate(d *eventbrite.DateTimeTZ) string {
	if d.IsZero() {
		return "-"
	}
	if d.Local != "" {
		if t, err := time.Parse("2006-01-02T15:04:05", d.Local); err == nil {
			return t.Format("2006-01-02 15:04") + " " + d.Timezone
		}
	}
	return d.UTC.Format("2006-01-02 15:04") + " UTC"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
