// Package scraper reads match fixtures from the stadium's own schedule page.
//
// The page lists one match per elementor inner section, laid out as four paragraphs:
// competition, home team, date and away team. Hebrew text on the page is stored in
// visual order, so each Hebrew word is reversed letter-wise and NFC-normalised before
// use. Dates are written in the stadium's local time and carry a leading weekday name
// that is stripped before parsing.
package scraper
