package service

import (
	"context"

	"github.com/catDforD/Trackit/internal/models"
)

// TrendOptions configures a trend analysis run.
type TrendOptions struct {
	// Category filters entries; empty means all categories.
	Category string
	// Metric selects the numeric metric to sum per day; empty (or a
	// metric absent from every entry in the window) falls back to the
	// daily entry count.
	Metric string
	// WindowDays is the moving-average window measured in series
	// entries; defaults to 7.
	WindowDays int
	// WeeksBack is how many weeks of history to analyze; defaults to 4.
	WeeksBack int
}

// AnalyticsService defines time-windowed aggregation over habit entries.
type AnalyticsService interface {
	// WeeklyStatistics aggregates one ISO week. A malformed week ID is
	// an error; a valid week with no entries is a zero-valued result.
	WeeklyStatistics(ctx context.Context, weekID, category string) (*models.WeeklyStatistics, error)
	// TrendAnalysis builds a daily value series over the window and
	// fits a linear trend with a moving average.
	TrendAnalysis(ctx context.Context, opts TrendOptions) (*models.TrendResult, error)
	// ComparePeriods diffs the weekly statistics of two ISO weeks.
	ComparePeriods(ctx context.Context, period1, period2, category string) (*models.PeriodComparison, error)
	// DailySummary returns a dense per-day summary for the last N days.
	DailySummary(ctx context.Context, days int, category string) ([]models.DailySummary, error)
}

// PatternService defines pattern mining over habit entries.
type PatternService interface {
	// DayOfWeekPatterns aggregates by weekday to find best/worst mood
	// days and most/least active days.
	DayOfWeekPatterns(ctx context.Context, weeks int, category string) (*models.DayPatterns, error)
	// DetectStreaks finds maximal runs of consecutive active days and
	// the streak ending now.
	DetectStreaks(ctx context.Context, category string, days int) (*models.StreakResult, error)
	// DetectCorrelations finds mood-correlated categories and same-day
	// category pairs across all categories.
	DetectCorrelations(ctx context.Context, weeks int) (*models.CorrelationReport, error)
	// Insights combines all pattern detections into a summary and
	// ranked recommendations.
	Insights(ctx context.Context, weeks int) (*models.Insights, error)
}

// EntryService defines the recording/query surface over entries.
type EntryService interface {
	CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.Entry, error)
	GetEntry(ctx context.Context, id int64) (*models.Entry, error)
	GetEntriesByWeek(ctx context.Context, weekID string) ([]models.Entry, error)
	GetEntriesByCategory(ctx context.Context, category string, limit int) ([]models.Entry, error)
	GetCategories(ctx context.Context) ([]string, error)
	DeleteEntry(ctx context.Context, id int64) error
}
