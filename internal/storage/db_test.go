package storage

import (
	"path/filepath"
	"testing"

	"reqnorm/internal"
)

func TestRunsAndMetadata(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	runs := []internal.RunRow{
		{TraceID: "t1", InputPath: "/in/a.csv", SourceType: "csv", Extracted: 3, Exported: 3, OutputPath: "/out/a.csv", DurationMs: 12, Status: "processed"},
		{TraceID: "t2", InputPath: "/in/b.pdf", SourceType: "pdf", Extracted: 0, Exported: 0, DurationMs: 5, Status: "failed"},
	}
	for _, run := range runs {
		if err := db.InsertRun(run); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	// Newest first.
	if got[0].TraceID != "t2" || got[1].TraceID != "t1" {
		t.Fatalf("order: %s, %s", got[0].TraceID, got[1].TraceID)
	}
	if got[1].Extracted != 3 || got[1].OutputPath != "/out/a.csv" {
		t.Fatalf("run=%+v", got[1])
	}

	if err := db.SetMetadata("schema_version", "1"); err != nil {
		t.Fatal(err)
	}
	value, err := db.GetMetadata("schema_version")
	if err != nil {
		t.Fatal(err)
	}
	if value == nil || *value != "1" {
		t.Fatalf("value=%v", value)
	}
	missing, err := db.GetMetadata("absent")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("missing=%v", missing)
	}
}
