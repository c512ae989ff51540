package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the events in a calendar file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening calendar: %w", err)
	}
	defer f.Close()

	events, err := calendar.Parse(f)
	if err != nil {
		return err
	}

	loc, err := appConfig.Location()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tSUMMARY\tUID")
	for _, evt := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			evt.Start.In(loc).Format("2006-01-02 15:04"),
			evt.End.In(loc).Format("15:04"),
			evt.Summary,
			evt.UID,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d %s\n", len(events), pluralize(len(events), "event", "events"))
	return nil
}
