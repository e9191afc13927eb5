package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"bookreview/internal/reviews"
)

// SchemaVersion identifies the CSV export format version. Increment when
// adding columns or changing the format.
const SchemaVersion = "1"

var csvColumns = []string{
	"schemaVersion",
	"reviewId",
	"bookId",
	"title",
	"body",
	"storyRating",
	"styleRating",
	"characterRating",
	"overallRating",
	"recommended",
	"createdAt",
	"updatedAt",
}

// CSVExporter exports reviews to CSV format.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes reviews to the given writer in CSV format.
func (e *CSVExporter) Export(w io.Writer, reviewList []reviews.Review) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, review := range reviewList {
		if err := writer.Write(e.reviewToRow(review)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func (e *CSVExporter) reviewToRow(review reviews.Review) []string {
	return []string{
		SchemaVersion,
		review.ID.String(),
		review.BookID.String(),
		review.Title,
		review.Body,
		strconv.Itoa(review.StoryRating),
		strconv.Itoa(review.StyleRating),
		strconv.Itoa(review.CharacterRating),
		strconv.FormatFloat(review.OverallRating, 'f', 2, 64),
		strconv.FormatBool(review.Recommended),
		review.CreatedAt.Format(time.RFC3339),
		review.UpdatedAt.Format(time.RFC3339),
	}
}
