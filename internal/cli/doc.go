// Package cli implements the command-line interface for stadium-fixtures.
//
// The cli package provides the Cobra-based CLI: listing upcoming matches (text, JSON
// or YAML), exporting them as calendar files or hosted-calendar links, inspecting an
// existing calendar file, and serving everything over HTTP. It wires config, the
// backend client or stadium page scraper, and the board loader together.
package cli
