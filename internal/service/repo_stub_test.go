package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/catDforD/Trackit/internal/models"
	"github.com/catDforD/Trackit/internal/week"
)

// stubEntryRepository is an in-memory EntryRepository for testing.
type stubEntryRepository struct {
	entries []models.Entry
	err     error
	nextID  int64
}

func newStubRepo() *stubEntryRepository {
	return &stubEntryRepository{}
}

func (m *stubEntryRepository) add(date, category string, mood models.Mood, metrics models.Metrics) {
	d, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		panic(err)
	}
	m.nextID++
	m.entries = append(m.entries, models.Entry{
		ID:       m.nextID,
		Date:     d,
		Category: category,
		Mood:     mood,
		Metrics:  metrics,
	})
}

func (m *stubEntryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *stubEntryRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *stubEntryRepository) GetByDateRange(ctx context.Context, start, end time.Time, category string) ([]models.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.Entry, 0)
	for _, e := range m.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *stubEntryRepository) GetByWeek(ctx context.Context, weekID string) ([]models.Entry, error) {
	start, end, err := week.Span(weekID)
	if err != nil {
		return nil, err
	}
	return m.GetByDateRange(ctx, start, end, "")
}

func (m *stubEntryRepository) GetByCategory(ctx context.Context, category string, limit int) ([]models.Entry, error) {
	result := make([]models.Entry, 0)
	for _, e := range m.entries {
		if e.Category == category {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *stubEntryRepository) GetCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, e := range m.entries {
		seen[e.Category] = true
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (m *stubEntryRepository) Delete(ctx context.Context, id int64) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// fixedTime parses a date and returns it as a clock function.
func fixedTime(t *testing.T, date string) func() time.Time {
	t.Helper()
	d, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	return func() time.Time { return d }
}
