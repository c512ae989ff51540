// Package export decides how a calendar artifact reaches the user.
//
// Mobile clients get a link to the hosted calendar's "add event" form; everyone else
// downloads an .ics file. The combined all-matches document has no hosted link, so it
// is always a download.
package export
