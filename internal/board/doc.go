// Package board runs fetch cycles and holds the result shown to users.
//
// A cycle fetches stadium information and fixtures concurrently, keeps the home
// matches that are still to come, and produces an immutable Board. The Holder swaps
// in each cycle's outcome wholesale: a failed cycle replaces the board with an error
// state rather than keeping stale data around.
package board
