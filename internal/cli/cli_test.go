package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/startlist-watch/internal/config"
	"github.com/pfrederiksen/startlist-watch/internal/estimator"
	"github.com/pfrederiksen/startlist-watch/internal/scraper"
)

// stubSource serves canned pages; pages not present are empty.
type stubSource struct {
	pages map[int]*scraper.Page
}

func (s *stubSource) Page(n int) (*scraper.Page, error) {
	if p, ok := s.pages[n]; ok {
		return p, nil
	}
	return &scraper.Page{Number: n, LastPage: n}, nil
}

func stubEstimator(url string, pages map[int]*scraper.Page) *estimator.Estimator {
	return estimator.New(
		estimator.Config{URL: url},
		func(string) estimator.PageSource { return &stubSource{pages: pages} },
	)
}

func TestTrackAppendsOneRecord(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.csv")
	cfg := &config.Config{DataFile: dataFile, Strategy: config.StrategyPagination}

	est := stubEstimator("https://example.com/?page={page}", map[int]*scraper.Page{
		1: {Number: 1, Rows: 25, LastPage: 80},
		80: {Number: 80, Rows: 7, LastPage: 80},
	})

	result, err := track(cfg, est)
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}

	if want := (80-1)*25 + 7; result.Total != want {
		t.Errorf("expected total %d, got %d", want, result.Total)
	}
	if result.Previous != 1784 {
		t.Errorf("expected previous total from the seed record, got %d", result.Previous)
	}

	data, err := os.ReadFile(dataFile)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := nonEmptyLines(string(data))
	if len(lines) != 2 {
		t.Fatalf("expected seed + one appended record, got %d lines:\n%s", len(lines), data)
	}
}

func TestTrackMonotonicityViolationLeavesLogUntouched(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.csv")
	content := "2026-01-03T09:00:00,2000,\n"
	if err := os.WriteFile(dataFile, []byte(content), 0644); err != nil {
		t.Fatalf("writing log: %v", err)
	}

	cfg := &config.Config{DataFile: dataFile, Strategy: config.StrategyPagination}

	// The source now reports far fewer participants than last recorded.
	est := stubEstimator("https://example.com/?page={page}", map[int]*scraper.Page{
		1: {Number: 1, Rows: 10, LastPage: 1},
	})

	if _, err := track(cfg, est); err == nil {
		t.Fatal("expected monotonicity violation, got nil")
	}

	data, err := os.ReadFile(dataFile)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if string(data) != content {
		t.Errorf("log must be unchanged after an aborted run:\nwant %q\ngot  %q", content, string(data))
	}
}

func TestTrackRecordsNamedCount(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(dataFile, []byte("2026-01-01T09:00:00,80,\n"), 0644); err != nil {
		t.Fatalf("writing log: %v", err)
	}
	url := "https://example.com/?page={page}"
	cfg := &config.Config{DataFile: dataFile, Strategy: config.StrategyPagination, WatchName: "sch"}

	// The stub factory serves the same listing for the unfiltered and the
	// name-filtered templates; both count to 84.
	est := stubEstimator(url, map[int]*scraper.Page{
		1: {Number: 1, Rows: 20, LastPage: 5},
		5: {Number: 5, Rows: 4, LastPage: 5},
	})

	result, err := track(cfg, est)
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if result.Named == nil || *result.Named != 84 {
		t.Fatalf("expected named count 84, got %+v", result.Named)
	}
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
