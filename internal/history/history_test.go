package history

import (
	"os"
	"path/filepath"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestLoadMissingFileYieldsSeed(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected exactly the seed record, got %d records", len(records))
	}
	seed := records[0]
	if seed.Timestamp != "2025-12-20T11:51:00" {
		t.Errorf("expected seed timestamp 2025-12-20T11:51:00, got %q", seed.Timestamp)
	}
	if seed.Total != 1784 {
		t.Errorf("expected seed total 1784, got %d", seed.Total)
	}
	if seed.Named != nil {
		t.Errorf("expected seed named count to be absent, got %d", *seed.Named)
	}
}

func TestLoadEmptyFileYieldsSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 || records[0] != Seed() {
		t.Fatalf("expected exactly the seed record, got %+v", records)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "2026-01-02T09:00:00,1800,3\n" +
		"justonefield\n" +
		"2026-01-03T09:00:00,notanumber\n" +
		",1900,\n" +
		"2026-01-04T09:00:00,1950,oops\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 valid records, got %d (%+v)", len(records), records)
	}
	if records[0].Total != 1800 || records[0].Named == nil || *records[0].Named != 3 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	// A malformed optional field is tolerated as absent, never fatal.
	if records[1].Total != 1950 || records[1].Named != nil {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestLoadSkipsLinesWithStrayQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "2026-01-02T09:00:00,1800,\n" +
		"\"broken\n" +
		"2026-01-03T09:00:00,1900,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The corrupt line is dropped; the valid lines around it survive.
	if len(records) != 2 {
		t.Fatalf("expected 2 valid records, got %d (%+v)", len(records), records)
	}
	if records[0].Total != 1800 || records[1].Total != 1900 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestLoadTrimsWhitespaceAroundTotal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("2026-01-02T09:00:00, 1800 , 3 \n"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d (%+v)", len(records), records)
	}
	if records[0].Total != 1800 {
		t.Errorf("expected total 1800, got %d", records[0].Total)
	}
	if records[0].Named == nil || *records[0].Named != 3 {
		t.Errorf("expected named count 3, got %+v", records[0].Named)
	}
}

func TestLoadAllMalformedYieldsSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("garbage\nmore garbage\n"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 || records[0] != Seed() {
		t.Fatalf("expected exactly the seed record, got %+v", records)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "2025-12-20T11:51:00,1784,\n" +
		"2026-01-02T09:00:00,1800,3\n" +
		"2026-01-03T09:00:00,1831,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file back: %v", err)
	}
	if string(got) != content {
		t.Errorf("round trip is not byte-identical:\nwant %q\ngot  %q", content, string(got))
	}
}

func TestSaveSerializesAbsentNamedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	records := []Record{
		{Timestamp: "2026-01-02T09:00:00", Total: 1800, Named: intPtr(2)},
		{Timestamp: "2026-01-03T09:00:00", Total: 1831},
	}

	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file back: %v", err)
	}
	want := "2026-01-02T09:00:00,1800,2\n2026-01-03T09:00:00,1831,\n"
	if string(got) != want {
		t.Errorf("expected %q, got %q", want, string(got))
	}
}

func TestSorted(t *testing.T) {
	records := []Record{
		{Timestamp: "2026-01-03T09:00:00", Total: 1831},
		{Timestamp: "2025-12-20T11:51:00", Total: 1784},
		{Timestamp: "2026-01-02T09:00:00", Total: 1800},
	}

	sorted := Sorted(records)

	want := []string{"2025-12-20T11:51:00", "2026-01-02T09:00:00", "2026-01-03T09:00:00"}
	for i, ts := range want {
		if sorted[i].Timestamp != ts {
			t.Fatalf("expected order %v, got %+v", want, sorted)
		}
	}

	// The input order must stay untouched.
	if records[0].Timestamp != "2026-01-03T09:00:00" {
		t.Error("Sorted must not mutate its input")
	}
}
