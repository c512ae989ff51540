// Package server exposes the current board over HTTP.
//
// It serves an HTML page of match cards, a small JSON API, calendar downloads, and an
// export route that sends phones to the hosted calendar and desktops a file. Data
// routes answer 503 until the first successful refresh and whenever the latest
// refresh failed.
package server
