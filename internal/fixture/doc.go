// Package fixture provides the match fixture model and the upcoming-match filter.
//
// Fixtures arrive as JSON from the backend API (or from the stadium page scraper) and are
// decoded into Fixture values whose kickoff is either Scheduled or Unscheduled. Decoding is
// lenient: a malformed kickoff makes a fixture unscheduled instead of failing the payload.
package fixture
