package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/evbrite/config"
	"github.com/s0up4200/evbrite/eventbrite"
	"github.com/s0up4200/evbrite/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *eventbrite.Client
	filters *filter.Manager

	// Global flags
	outputFormat string
	assumeYes    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "evbrite",
	Short: "A command line client for the Eventbrite API",
	Long: `evbrite reads and manages Eventbrite events, venues, organizers,
attendees, ticket classes and access codes from the command line.

Results can be printed as tables, JSON or YAML, and event lists can be
narrowed with filter expressions or presets from the config file.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.evbrite/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmation prompts")
}

// initializeApp loads the configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if outputFormat != "" {
		if err := config.ValidateOutputFormat(outputFormat); err != nil {
			return err
		}
		cfg.Output.Format = outputFormat
	}

	opts := []eventbrite.Option{
		eventbrite.WithHost(cfg.Eventbrite.Host),
		eventbrite.WithTimeout(cfg.Eventbrite.Timeout),
		eventbrite.WithUserAgent("evbrite/" + buildVersion),
	}
	if cfg.Eventbrite.UseBearer() {
		opts = append(opts, eventbrite.WithBearerAuth())
	}

	client, err = eventbrite.NewClient(
		cfg.Eventbrite.Token,
		logger.With().Str("component", "eventbrite").Logger(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create Eventbrite client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("failed to load filter presets: %w", err)
	}

	logger.Debug().
		Str("host", client.BaseURL()).
		Bool("bearer", cfg.Eventbrite.UseBearer()).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("Client initialized")

	return nil
}

// initializeLogging sets up logging for commands that need no API access
func initializeLogging(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; no color codes when stderr is redirected
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
