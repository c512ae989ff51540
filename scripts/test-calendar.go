package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
)

func main() {
	// A sample match a week from now, 20:00 Haifa time
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
		os.Exit(1)
	}
	day := time.Now().In(loc).AddDate(0, 0, 7)
	kickoff := time.Date(day.Year(), day.Month(), day.Day(), 20, 0, 0, 0, loc)

	f := fixture.Fixture{
		ID:          "test-match-123",
		Home:        fixture.Team{Name: "Maccabi Haifa"},
		Away:        fixture.Team{Name: "Hapoel Tel Aviv"},
		Kickoff:     fixture.Scheduled(kickoff),
		Competition: "Ligat ha'Al",
	}

	evt := calendar.BuildEvent(f)
	icsContent := evt.Document().String()

	// Write to file (owner read/write only)
	filename := evt.Filename()
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("3. Or open the hosted link:")
	fmt.Println("  ", evt.GoogleCalendarURL())
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
