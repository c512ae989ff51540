// Package calendar turns fixtures into iCalendar (RFC 5545) documents and hosted
// calendar links.
//
// BuildEvent derives a two-hour event from a scheduled fixture; BuildCombined folds a
// list of fixtures into one document with a shared header. Documents are rendered by
// hand, one content line at a time, and can be read back with Parse.
package calendar
