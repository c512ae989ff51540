package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/stadium-fixtures/internal/backend"
	"github.com/pfrederiksen/stadium-fixtures/internal/board"
	"github.com/pfrederiksen/stadium-fixtures/internal/config"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
	"github.com/pfrederiksen/stadium-fixtures/internal/metrics"
	"github.com/pfrederiksen/stadium-fixtures/internal/scraper"
)

const (
	ExitSuccess         = 0
	ExitError           = 1
	ExitNothingToExport = 2
)

// ErrNothingToExport is returned when no match could be turned into a calendar event
var ErrNothingToExport = errors.New("nothing to export")

var (
	flagConfig  string
	flagVerbose bool

	appConfig *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stadium-fixtures",
		Short: "Upcoming matches at Sammy Ofer Stadium, ready for your calendar",
		Long: `A CLI tool that lists upcoming matches at Sammy Ofer Stadium in Haifa and
exports them as iCalendar files or Google Calendar links.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file (default $"+config.EnvConfigFile+")")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newUpcomingCmd(),
		newExportCmd(),
		newInspectCmd(),
		newServeCmd(),
	)

	return cmd
}

// setup loads config and configures logging before any subcommand runs
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.Level()
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("Config loaded", logger.Fields{
		"source":   cfg.Fixtures.Source,
		"backend":  cfg.Backend.BaseURL,
		"timezone": cfg.Fixtures.Timezone,
	})
	return nil
}

// newLoader wires the configured fixture source into a board loader
func newLoader(cfg *config.Config, m *metrics.Manager) (*board.Loader, error) {
	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}

	loader := &board.Loader{
		HomeTeams: cfg.Fixtures.HomeTeams,
		Metrics:   m,
	}

	switch cfg.Fixtures.Source {
	case config.SourceStadiumPage:
		loc, err := cfg.Location()
		if err != nil {
			return nil, fmt.Errorf("loading timezone: %w", err)
		}
		loader.Stadium = backend.Static{Stadium: backend.SammyOfer}
		loader.Fixtures = scraper.New(cfg.Fixtures.StadiumPageURL,
			scraper.WithHTTPClient(httpClient),
			scraper.WithLocation(loc),
		)
	default:
		client := backend.New(cfg.Backend.BaseURL,
			backend.WithHTTPClient(httpClient),
			backend.WithPaths(cfg.Backend.StadiumPath, cfg.Backend.FixturesPath),
		)
		loader.Stadium = client
		loader.Fixtures = client
	}

	return loader, nil
}

// loadBoard runs a single fetch cycle for the one-shot commands
func loadBoard(ctx context.Context) (*board.Board, error) {
	loader, err := newLoader(appConfig, nil)
	if err != nil {
		return nil, err
	}
	b, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Board loaded", logger.Fields{
		"total":    b.Total,
		"upcoming": len(b.Upcoming),
	})
	return b, nil
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNothingToExport):
		return ExitNothingToExport
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
