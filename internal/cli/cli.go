package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/startlist-watch/internal/config"
	"github.com/pfrederiksen/startlist-watch/internal/estimator"
	"github.com/pfrederiksen/startlist-watch/internal/history"
	"github.com/pfrederiksen/startlist-watch/internal/logging"
	"github.com/pfrederiksen/startlist-watch/internal/notifier"
	"github.com/pfrederiksen/startlist-watch/internal/render"
	"github.com/pfrederiksen/startlist-watch/internal/scraper"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitIncreased = 2
)

var (
	flagURL       string
	flagDataFile  string
	flagName      string
	flagStrategy  string
	flagPageSize  int
	flagFormat    string
	flagOutput    string
	flagMilestone int
	flagDryRun    bool
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startlist-watch",
		Short: "Track how many people are registered for the race",
		Long: `A CLI tool that estimates the number of registered race participants
from the timing provider's paginated startlist, appends each estimate to a
CSV history log, and renders the log as a static dashboard.`,
		RunE:          runTrack,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagURL, "url", "", "Startlist URL template with a {page} placeholder (default from env)")
	cmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "Path of the CSV history log (default from env)")
	cmd.PersistentFlags().StringVar(&flagName, "name", "", "Name to compute a filtered count for (default from env)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagStrategy, "strategy", "", "Counting strategy: pagination or incremental (default from env)")
	cmd.Flags().IntVar(&flagPageSize, "page-size", 0, "Assumed rows per full page for the incremental strategy")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flagMilestone, "milestone-step", 0, "Announce when the total crosses a multiple of this value (0 disables)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print milestone announcements instead of posting them")

	cmd.AddCommand(newCountCmd())
	cmd.AddCommand(newRenderCmd())

	return cmd
}

// loadConfig merges the environment configuration with flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagURL != "" {
		cfg.URL = flagURL
	}
	if flagDataFile != "" {
		cfg.DataFile = flagDataFile
	}
	if flagName != "" {
		cfg.WatchName = flagName
	}
	if flagStrategy != "" {
		strategy := strings.ToLower(flagStrategy)
		if strategy != config.StrategyPagination && strategy != config.StrategyIncremental {
			return nil, fmt.Errorf("invalid strategy: %s (must be %q or %q)",
				flagStrategy, config.StrategyPagination, config.StrategyIncremental)
		}
		cfg.Strategy = strategy
	}
	if flagPageSize > 0 {
		cfg.PageSize = flagPageSize
	}
	if flagMilestone > 0 {
		cfg.MilestoneStep = flagMilestone
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logging.Setup(logging.Config{Level: level, Pretty: flagVerbose, Output: os.Stderr})

	return cfg, nil
}

// newEstimator wires the scraper client into an estimator per configuration.
func newEstimator(cfg *config.Config) *estimator.Estimator {
	client := scraper.New()
	return estimator.New(
		estimator.Config{
			URL:      cfg.URL,
			PageSize: cfg.PageSize,
			Strategy: cfg.NewStrategy(),
		},
		func(urlTemplate string) estimator.PageSource {
			return client.Listing(urlTemplate)
		},
	)
}

// track performs one fetch-estimate-append cycle. Any failure aborts before
// the log is touched, leaving the previous state intact.
func track(cfg *config.Config, est *estimator.Estimator) (*OutputResult, error) {
	log := logging.NewLogger("track")

	records, err := history.Load(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	previous := records[len(records)-1].Total

	log.Debug().Int("previous_total", previous).Str("strategy", cfg.Strategy).Msg("starting run")

	total, err := est.TotalCount(previous)
	if err != nil {
		return nil, fmt.Errorf("estimating total: %w", err)
	}

	var named *int
	if cfg.WatchName != "" {
		n, err := est.NameCount(cfg.WatchName)
		if err != nil {
			return nil, fmt.Errorf("estimating count for %q: %w", cfg.WatchName, err)
		}
		named = &n
	}

	rec := history.Record{
		Timestamp: time.Now().Format(history.TimeLayout),
		Total:     total,
		Named:     named,
	}
	records = append(records, rec)

	if err := history.Save(cfg.DataFile, records); err != nil {
		return nil, fmt.Errorf("saving history: %w", err)
	}

	log.Info().Int("total", total).Int("previous_total", previous).Msg("recorded estimate")

	return &OutputResult{
		CheckedAt: time.Now().UTC(),
		Timestamp: rec.Timestamp,
		Total:     total,
		Previous:  previous,
		Delta:     total - previous,
		Named:     named,
		WatchName: cfg.WatchName,
	}, nil
}

// runTrack is the main command logic
func runTrack(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := track(cfg, newEstimator(cfg))
	if err != nil {
		return err
	}

	if err := announceMilestone(cfg, result.Previous, result.Total); err != nil {
		// The record is already saved; a failed announcement should not
		// fail the run.
		logger := logging.NewLogger("track")
		logger.Warn().Err(err).Msg("milestone announcement failed")
	}

	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.Delta > 0 {
		os.Exit(ExitIncreased)
	}
	os.Exit(ExitSuccess)
	return nil
}

// announceMilestone posts a notification when the total crossed a milestone.
func announceMilestone(cfg *config.Config, previous, total int) error {
	m, ok := notifier.Crossed(previous, total, cfg.MilestoneStep)
	if !ok {
		return nil
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRunNotifier()
	} else {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			return err
		}
		n = tw
	}
	return n.Notify(m)
}

// newCountCmd creates the one-off name count command
func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count participants matching the watched name without touching the log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.WatchName == "" {
				return fmt.Errorf("--name is required")
			}

			count, err := newEstimator(cfg).NameCount(cfg.WatchName)
			if err != nil {
				return fmt.Errorf("estimating count for %q: %w", cfg.WatchName, err)
			}

			fmt.Printf("%d participants match %q\n", count, cfg.WatchName)
			return nil
		},
	}
}

// newRenderCmd creates the dashboard render command
func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the history log as a static dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			records, err := history.Load(cfg.DataFile)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if err := render.WriteDashboard(cfg.Output, records, cfg.WatchName); err != nil {
				return err
			}

			fmt.Printf("Dashboard written to %s\n", cfg.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagOutput, "output", "", "Path of the dashboard HTML file (default from env)")
	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
