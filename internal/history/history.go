package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// TimeLayout is the record timestamp format: ISO-8601 with seconds
// precision, local time.
const TimeLayout = "2006-01-02T15:04:05"

// Record is one timestamped snapshot of the participant counts.
type Record struct {
	// Timestamp in TimeLayout format.
	Timestamp string
	// Total is the participant count of the unfiltered listing.
	Total int
	// Named is the count of the name-filtered listing, nil when it was not
	// computed or the stored value was not parseable.
	Named *int
}

// Seed is the record a fresh deployment bootstraps from when no log exists.
func Seed() Record {
	return Record{Timestamp: "2025-12-20T11:51:00", Total: 1784}
}

// Load reads all records from the log at path. A missing or empty file
// yields just the seed record. Lines with fewer than two fields, an empty
// timestamp, or a non-integer total are skipped; a malformed optional third
// field is tolerated as absent.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{Seed()}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(data) == 0 {
		return []Record{Seed()}, nil
	}

	lines := strings.Split(string(data), "\n")

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Decode each line on its own so one corrupt line (say, a stray
		// quote) cannot take down the whole load.
		fields, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil || len(fields) < 2 {
			continue
		}
		timestamp := strings.TrimSpace(fields[0])
		if timestamp == "" {
			continue
		}
		total, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			continue
		}

		rec := Record{Timestamp: timestamp, Total: total}
		if len(fields) >= 3 {
			if v := strings.TrimSpace(fields[2]); v != "" {
				if named, err := strconv.Atoi(v); err == nil {
					rec.Named = &named
				}
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return []Record{Seed()}, nil
	}
	return records, nil
}

// Save rewrites the log at path from the given records, one CSV line per
// record, the optional field serialized as empty when absent.
func Save(path string, records []Record) error {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	for _, rec := range records {
		named := ""
		if rec.Named != nil {
			named = strconv.Itoa(*rec.Named)
		}
		if err := writer.Write([]string{rec.Timestamp, strconv.Itoa(rec.Total), named}); err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Sorted returns a copy of records ordered by timestamp. The on-disk order
// is append order and not assumed chronological; readers sort before use.
func Sorted(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}
