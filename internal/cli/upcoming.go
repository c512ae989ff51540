package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagSort   string
)

func newUpcomingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List upcoming matches at the stadium",
		Args:  cobra.NoArgs,
		RunE:  runUpcoming,
	}

	cmd.Flags().StringVar(&flagFormat, "format", string(FormatText), "Output format: text, json or yaml")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortKickoff), "Sort order: none or kickoff")

	return cmd
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(flagSort)
	if err != nil {
		return err
	}
	loc, err := appConfig.Location()
	if err != nil {
		return err
	}

	b, err := loadBoard(cmd.Context())
	if err != nil {
		return err
	}

	matches := sortFixtures(b.Upcoming, order)
	result := &OutputResult{
		CheckedAt:  b.FetchedAt.In(loc).Truncate(time.Second),
		Stadium:    b.Stadium,
		Matches:    make([]MatchCard, 0, len(matches)),
		MatchCount: len(matches),
		Total:      b.Total,
	}
	for _, f := range matches {
		result.Matches = append(result.Matches, newCard(f, loc))
	}

	return WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose)
}
