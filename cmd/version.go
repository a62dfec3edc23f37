package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/evbrite/config"
)

const defaultRepository = "s0up4200/evbrite"

var (
	buildVersion = "dev"
	buildTime    = "unknown"

	updateRepository string
	forceUpdate      bool
)

// SetVersion records the version information injected at build time
func SetVersion(version, date string) {
	buildVersion = version
	buildTime = date
	rootCmd.Version = version
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "evbrite %s\n", buildVersion)
		fmt.Fprintf(w, "Built:   %s\n", buildTime)
		fmt.Fprintf(w, "Go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update evbrite to the latest release",
	Long: `Check GitHub for a newer release of evbrite and replace the running
binary with it. Development builds can only be updated with --force.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeLogging,
	RunE:              runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd, updateCmd)

	updateCmd.Flags().StringVar(&updateRepository, "repository", defaultRepository, "GitHub repository to fetch releases from (default from config)")
	updateCmd.Flags().BoolVar(&forceUpdate, "force", false, "install the latest release even if the current version is unknown")
}

// currentVersion parses the build version; "dev" and other non-semver
// builds report an error
func currentVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(buildVersion)
	if err != nil {
		return semver.Version{}, fmt.Errorf("current version %q is not a release version: %w", buildVersion, err)
	}
	return v, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := currentVersion()
	if err != nil && !forceUpdate {
		return fmt.Errorf("%w (use --force to update anyway)", err)
	}

	repository := updateRepository
	if !cmd.Flags().Changed("repository") {
		// the config is optional here; an unusable one falls back to the default
		if c, err := config.Load(cfgFile); err == nil && c.Update.Repository != "" {
			repository = c.Update.Repository
		}
	}

	logger.Info().Str("repository", repository).Msg("Checking for updates...")

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s in %s", runtime.GOOS, runtime.GOARCH, repository)
	}

	if !forceUpdate && latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ evbrite %s is the latest version\n", current)
		return nil
	}

	ok, err := confirm(fmt.Sprintf("Update evbrite %s to %s?", buildVersion, latest.Version()))
	if err != nil {
		return err
	}
	if !ok {
		logger.Info().Msg("Update cancelled")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	logger.Info().
		Str("from", buildVersion).
		Str("to", latest.Version()).
		Str("path", exe).
		Msg("Updated")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated to evbrite %s\n", latest.Version())
	return nil
}
