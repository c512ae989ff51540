package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
	"github.com/pfrederiksen/stadium-fixtures/internal/export"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

var (
	flagMatch  string
	flagOutput string
	flagMobile bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export upcoming matches as a calendar file",
		Long: `Export one upcoming match, or all of them, as an iCalendar file.

With --mobile the single-match export prints a Google Calendar link instead of
writing a file.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&flagMatch, "match", "", "Export only the match with this ID")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file, or - for stdout (default: suggested filename)")
	cmd.Flags().BoolVar(&flagMobile, "mobile", false, "Print a hosted calendar link instead of a file (requires --match)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if flagMobile && flagMatch == "" {
		return fmt.Errorf("--mobile requires --match")
	}

	b, err := loadBoard(cmd.Context())
	if err != nil {
		return err
	}

	var action export.Action
	if flagMatch != "" {
		f, ok := b.Find(flagMatch)
		if !ok {
			return fmt.Errorf("match %q is not an upcoming match", flagMatch)
		}
		evt := calendar.BuildEvent(f)
		if evt == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Match %s has no kickoff time yet.\n", flagMatch)
			return ErrNothingToExport
		}
		action = export.ForEvent(evt, flagMobile)
	} else {
		doc := calendar.BuildCombined(b.Upcoming)
		if doc == nil || doc.Len() == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No upcoming matches to export.")
			return ErrNothingToExport
		}
		action = export.ForDocument(doc)
	}

	logger.Debug("Export chosen", logger.Fields{
		"kind":     action.Kind.String(),
		"filename": action.Filename,
	})

	return writeAction(cmd.OutOrStdout(), cmd.ErrOrStderr(), action, flagOutput)
}

// writeAction prints a link or writes the document to output, "-" meaning stdout
func writeAction(stdout, stderr io.Writer, action export.Action, output string) error {
	if action.Kind == export.OpenLink {
		fmt.Fprintln(stdout, action.URL)
		return nil
	}

	if output == "-" {
		_, err := stdout.Write(action.Body)
		return err
	}

	if output == "" {
		output = action.Filename
	}
	if err := os.WriteFile(output, action.Body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(stderr, "Wrote %s\n", output)
	return nil
}
