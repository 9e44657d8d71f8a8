package service

import (
	"context"
	"fmt"
	"time"

	"github.com/catDforD/Trackit/internal/models"
	"github.com/catDforD/Trackit/internal/repository"
	"github.com/catDforD/Trackit/internal/week"
)

type entryService struct {
	entryRepo repository.EntryRepository
	now       func() time.Time
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo repository.EntryRepository) EntryService {
	return &entryService{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

func (s *entryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.Entry, error) {
	date := week.Truncate(s.now())
	if req.Date != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", req.Date)
		}
		date = parsed
	}
	if !req.Mood.Valid() {
		return nil, fmt.Errorf("invalid mood %q", req.Mood)
	}

	entry := &models.Entry{
		Date:     date,
		RawInput: req.RawInput,
		Category: req.Category,
		Mood:     req.Mood,
		Metrics:  req.Metrics,
		Note:     req.Note,
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return created, nil
}

func (s *entryService) GetEntry(ctx context.Context, id int64) (*models.Entry, error) {
	return s.entryRepo.GetByID(ctx, id)
}

func (s *entryService) GetEntriesByWeek(ctx context.Context, weekID string) ([]models.Entry, error) {
	if weekID == "" {
		weekID = week.ID(s.now())
	}
	return s.entryRepo.GetByWeek(ctx, weekID)
}

func (s *entryService) GetEntriesByCategory(ctx context.Context, category string, limit int) ([]models.Entry, error) {
	return s.entryRepo.GetByCategory(ctx, category, limit)
}

func (s *entryService) GetCategories(ctx context.Context) ([]string, error) {
	return s.entryRepo.GetCategories(ctx)
}

func (s *entryService) DeleteEntry(ctx context.Context, id int64) error {
	return s.entryRepo.Delete(ctx, id)
}
