package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"bookreview/internal/reviews"
)

func TestExportCSV(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	list := []reviews.Review{
		{
			ID:              uuid.New(),
			BookID:          uuid.New(),
			UserID:          uuid.New(),
			Title:           "A quiet masterpiece",
			Body:            "Slow start, strong finish.",
			StoryRating:     5,
			StyleRating:     4,
			CharacterRating: 5,
			OverallRating:   14.0 / 3.0,
			Recommended:     true,
			CreatedAt:       created,
			UpdatedAt:       created,
		},
	}

	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&buf, list); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading exported CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}

	header := records[0]
	if header[0] != "schemaVersion" || header[len(header)-1] != "updatedAt" {
		t.Errorf("unexpected header: %v", header)
	}

	row := records[1]
	if row[0] != SchemaVersion {
		t.Errorf("schemaVersion = %q, want %q", row[0], SchemaVersion)
	}
	if row[3] != "A quiet masterpiece" {
		t.Errorf("title = %q", row[3])
	}
	if row[8] != "4.67" {
		t.Errorf("overallRating = %q, want 4.67", row[8])
	}
	if row[10] != "2026-03-14T09:26:53Z" {
		t.Errorf("createdAt = %q", row[10])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&buf, nil); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want header only", len(lines))
	}
}
