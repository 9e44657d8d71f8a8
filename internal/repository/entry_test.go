package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/catDforD/Trackit/internal/models"
)

func openTestRepo(t *testing.T) EntryRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewEntryRepository(db)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func seed(t *testing.T, repo EntryRepository, date, category string, mood models.Mood, metrics models.Metrics) *models.Entry {
	t.Helper()
	created, err := repo.Create(context.Background(), &models.Entry{
		Date:     day(t, date),
		RawInput: "test input",
		Category: category,
		Mood:     mood,
		Metrics:  metrics,
	})
	if err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	return created
}

func TestCreateAndGetByID(t *testing.T) {
	repo := openTestRepo(t)
	created := seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive,
		models.Metrics{"distance_km": models.Num(5), "wake_time": models.Str("06:30")})

	if created.ID == 0 {
		t.Fatal("expected non-zero entry ID")
	}

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.Category != "Exercise" || got.Mood != models.MoodPositive {
		t.Errorf("unexpected entry %+v", got)
	}
	if got.DateKey() != "2026-01-05" {
		t.Errorf("expected date 2026-01-05, got %s", got.DateKey())
	}
	if v, ok := got.Metrics["distance_km"].Numeric(); !ok || v != 5 {
		t.Errorf("expected numeric distance_km=5, got %+v", got.Metrics["distance_km"])
	}
	if got.Metrics["wake_time"].Text != "06:30" {
		t.Errorf("expected wake_time 06:30, got %+v", got.Metrics["wake_time"])
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo := openTestRepo(t)
	got, err := repo.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}
}

func TestGetByDateRangeOrdering(t *testing.T) {
	repo := openTestRepo(t)
	seed(t, repo, "2026-01-07", "Study", models.MoodNeutral, nil)
	seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive, nil)
	seed(t, repo, "2026-01-05", "Diet", models.MoodNeutral, nil)
	seed(t, repo, "2026-01-20", "Exercise", models.MoodPositive, nil)

	entries, err := repo.GetByDateRange(context.Background(),
		day(t, "2026-01-01"), day(t, "2026-01-10"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Date ascending, insertion order within the same date.
	if entries[0].Category != "Exercise" || entries[1].Category != "Diet" || entries[2].Category != "Study" {
		t.Errorf("unexpected order: %s, %s, %s",
			entries[0].Category, entries[1].Category, entries[2].Category)
	}
}

func TestGetByDateRangeCategoryFilter(t *testing.T) {
	repo := openTestRepo(t)
	seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive, nil)
	seed(t, repo, "2026-01-06", "Study", models.MoodNeutral, nil)

	entries, err := repo.GetByDateRange(context.Background(),
		day(t, "2026-01-01"), day(t, "2026-01-10"), "Exercise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Category != "Exercise" {
		t.Errorf("expected one Exercise entry, got %+v", entries)
	}
}

func TestGetByWeek(t *testing.T) {
	repo := openTestRepo(t)
	seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive, nil) // Monday of W02
	seed(t, repo, "2026-01-11", "Study", models.MoodNeutral, nil)    // Sunday of W02
	seed(t, repo, "2026-01-12", "Study", models.MoodNeutral, nil)    // Monday of W03

	entries, err := repo.GetByWeek(context.Background(), "2026-W02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries in 2026-W02, got %d", len(entries))
	}
}

func TestGetByWeekInvalidID(t *testing.T) {
	repo := openTestRepo(t)
	if _, err := repo.GetByWeek(context.Background(), "not-a-week"); err == nil {
		t.Error("expected error for malformed week id")
	}
}

func TestGetByCategoryDescendingWithLimit(t *testing.T) {
	repo := openTestRepo(t)
	seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive, nil)
	seed(t, repo, "2026-01-08", "Exercise", models.MoodPositive, nil)
	seed(t, repo, "2026-01-06", "Exercise", models.MoodNeutral, nil)

	entries, err := repo.GetByCategory(context.Background(), "Exercise", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].DateKey() != "2026-01-08" || entries[1].DateKey() != "2026-01-06" {
		t.Errorf("expected date-descending order, got %s then %s",
			entries[0].DateKey(), entries[1].DateKey())
	}
}

func TestGetCategories(t *testing.T) {
	repo := openTestRepo(t)
	seed(t, repo, "2026-01-05", "Study", models.MoodNeutral, nil)
	seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive, nil)
	seed(t, repo, "2026-01-06", "Exercise", models.MoodPositive, nil)

	categories, err := repo.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Exercise" || categories[1] != "Study" {
		t.Errorf("unexpected categories: %v", categories)
	}
}

func TestDelete(t *testing.T) {
	repo := openTestRepo(t)
	created := seed(t, repo, "2026-01-05", "Exercise", models.MoodPositive, nil)

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected entry to be deleted")
	}
	if err := repo.Delete(context.Background(), created.ID); err == nil {
		t.Error("expected error deleting missing entry")
	}
}
