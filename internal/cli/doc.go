// Package cli implements the command-line interface for startlist-watch.
//
// The cli package provides the Cobra-based CLI with support for tracking the
// registration count (fetch, append to the history log), one-off name
// counts, rendering the static dashboard, and formatting output (text/JSON).
// It coordinates the scraper, estimator, history, and notifier packages.
package cli
