package books

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateBookInput
	}{
		{"missing title", CreateBookInput{Author: "Author"}},
		{"missing author", CreateBookInput{Title: "Title"}},
		{"blank title", CreateBookInput{Title: "   ", Author: "Author"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	year := 1979
	created, err := svc.Create(ctx, CreateBookInput{
		Title:         "  The Hitchhiker's Guide  ",
		Author:        "Douglas Adams",
		Genre:         "Science Fiction",
		PublishedYear: &year,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Title != "The Hitchhiker's Guide" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != created.ID || got.Author != "Douglas Adams" {
		t.Fatalf("unexpected book: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByGoogleVolumeID(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBookInput{Title: "T", Author: "A", GoogleVolumeID: "vol-1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.GetByGoogleVolumeID(ctx, "vol-1")
	if err != nil {
		t.Fatalf("GetByGoogleVolumeID returned error: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected book %s, got %s", created.ID, got.ID)
	}

	if _, err := svc.GetByGoogleVolumeID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByGoogleVolumeID(ctx, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank volume id, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBookInput{Title: "T", Author: "A", Description: "old"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newTitle := "New Title"
	updated, err := svc.Update(ctx, created.ID, UpdateBookInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "New Title" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.Description != "old" {
		t.Fatalf("expected untouched description, got %q", updated.Description)
	}

	blank := "  "
	if _, err := svc.Update(ctx, created.ID, UpdateBookInput{Title: &blank}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank title, got %v", err)
	}
}

func TestUpdatePublishedYearBounds(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBookInput{Title: "T", Author: "A"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	future := time.Now().Year() + 2
	futurePtr := &future
	if _, err := svc.Update(ctx, created.ID, UpdateBookInput{PublishedYear: &futurePtr}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for far-future year, got %v", err)
	}

	negative := -44
	negativePtr := &negative
	if _, err := svc.Update(ctx, created.ID, UpdateBookInput{PublishedYear: &negativePtr}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative year, got %v", err)
	}

	year := 1965
	yearPtr := &year
	updated, err := svc.Update(ctx, created.ID, UpdateBookInput{PublishedYear: &yearPtr})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PublishedYear == nil || *updated.PublishedYear != 1965 {
		t.Fatalf("expected published year 1965, got %v", updated.PublishedYear)
	}

	// Explicit null clears the year.
	var cleared *int
	updated, err = svc.Update(ctx, created.ID, UpdateBookInput{PublishedYear: &cleared})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PublishedYear != nil {
		t.Fatalf("expected cleared published year, got %v", *updated.PublishedYear)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBookInput{Title: "T", Author: "A"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
