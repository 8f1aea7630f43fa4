package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains the result of one tracking run
type OutputResult struct {
	CheckedAt time.Time `json:"checked_at"`
	Timestamp string    `json:"timestamp"`
	Total     int       `json:"total"`
	Previous  int       `json:"previous"`
	Delta     int       `json:"delta"`
	Named     *int      `json:"named,omitempty"`
	WatchName string    `json:"watch_name,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the result as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the result as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	fmt.Fprintf(w, "Total registered: %d", result.Total)
	switch {
	case result.Delta > 0:
		fmt.Fprintf(w, " (+%d since last run)\n", result.Delta)
	case result.Delta < 0:
		fmt.Fprintf(w, " (%d since last run)\n", result.Delta)
	default:
		fmt.Fprintln(w, " (unchanged)")
	}

	if result.Named != nil {
		fmt.Fprintf(w, "Matching %q: %d\n", result.WatchName, *result.Named)
	}

	fmt.Fprintf(w, "Recorded at %s\n", result.Timestamp)
	return nil
}
