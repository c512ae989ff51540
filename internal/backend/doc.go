// Package backend is a client for the stadium fixtures JSON API.
//
// Two GET endpoints are consumed: stadium information and the list of fixtures. The
// fixtures payload must be a JSON array; elements that fail to decode are skipped and
// logged so one bad entry cannot hide the rest. Requests are never retried.
package backend
