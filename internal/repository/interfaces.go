package repository

import (
	"context"
	"time"

	"github.com/catDforD/Trackit/internal/models"
)

// EntryRepository defines the interface for habit entry data access.
// Analysis services depend only on this interface; range queries return
// entries sorted by date ascending with ties broken by insertion order.
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	GetByID(ctx context.Context, id int64) (*models.Entry, error)
	// GetByDateRange returns entries with start <= date <= end,
	// optionally filtered by category (empty string means all).
	GetByDateRange(ctx context.Context, start, end time.Time, category string) ([]models.Entry, error)
	// GetByWeek returns entries for the Monday–Sunday span of an ISO week.
	GetByWeek(ctx context.Context, weekID string) ([]models.Entry, error)
	// GetByCategory returns entries for a category sorted by date
	// descending; limit <= 0 means no limit.
	GetByCategory(ctx context.Context, category string, limit int) ([]models.Entry, error)
	GetCategories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id int64) error
}
