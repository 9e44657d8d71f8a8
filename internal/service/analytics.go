package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/catDforD/Trackit/internal/models"
	"github.com/catDforD/Trackit/internal/repository"
	"github.com/catDforD/Trackit/internal/week"
)

const (
	// DefaultTrendWindowDays is the moving-average window when none is given.
	DefaultTrendWindowDays = 7

	// DefaultTrendWeeksBack is the trend analysis lookback when none is given.
	DefaultTrendWeeksBack = 4

	// DefaultSummaryDays is the daily summary lookback when none is given.
	DefaultSummaryDays = 30

	// StableSlopeThreshold is the absolute slope below which a trend is
	// reported as stable.
	StableSlopeThreshold = 0.01
)

type analyticsService struct {
	entryRepo repository.EntryRepository
	now       func() time.Time
}

// NewAnalyticsService creates a new analytics service. The service is
// stateless: every method is a pure function of its arguments and the
// injected repository.
func NewAnalyticsService(entryRepo repository.EntryRepository) AnalyticsService {
	return &analyticsService{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

func (s *analyticsService) WeeklyStatistics(ctx context.Context, weekID, category string) (*models.WeeklyStatistics, error) {
	if weekID == "" {
		weekID = week.ID(s.now())
	}

	start, end, err := week.Span(weekID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.GetByDateRange(ctx, start, end, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for week %s: %w", weekID, err)
	}

	stats := &models.WeeklyStatistics{
		Week:             weekID,
		TotalEntries:     len(entries),
		ByCategory:       make(map[string]int),
		ByDay:            make([]models.DayCount, 0, 7),
		MoodDistribution: make(map[models.Mood]int),
		MetricsSummary:   make(map[string]models.MetricSummary),
		Entries:          entries,
	}
	if len(entries) == 0 {
		return stats, nil
	}

	// The category filter narrows by_category only; totals, weekday
	// counts, moods and metrics cover the whole week.
	if category != "" {
		count := 0
		for _, e := range entries {
			if e.Category == category {
				count++
			}
		}
		stats.ByCategory[category] = count
	} else {
		for _, e := range entries {
			stats.ByCategory[e.Category]++
		}
	}

	var dayCounts [7]int
	for _, e := range entries {
		dayCounts[week.WeekdayIndex(e.Date)]++
		stats.MoodDistribution[e.Mood]++
	}
	for i, name := range week.DayNames {
		if dayCounts[i] > 0 {
			stats.ByDay = append(stats.ByDay, models.DayCount{Day: name, Count: dayCounts[i]})
		}
	}

	stats.MetricsSummary = summarizeMetrics(entries)

	return stats, nil
}

func (s *analyticsService) TrendAnalysis(ctx context.Context, opts TrendOptions) (*models.TrendResult, error) {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultTrendWindowDays
	}
	if opts.WeeksBack <= 0 {
		opts.WeeksBack = DefaultTrendWeeksBack
	}

	end := week.Truncate(s.now())
	start := end.AddDate(0, 0, -7*opts.WeeksBack)

	entries, err := s.entryRepo.GetByDateRange(ctx, start, end, opts.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for trend: %w", err)
	}

	result := &models.TrendResult{
		DailyData:      make([]models.TrendPoint, 0),
		TrendDirection: models.TrendInsufficientData,
		TrendStrength:  0,
	}
	if len(entries) == 0 {
		return result, nil
	}

	dates, values, metricLabel := buildDailySeries(entries, opts.Metric)
	avgs := movingAverage(values, opts.WindowDays)

	for i := range dates {
		result.DailyData = append(result.DailyData, models.TrendPoint{
			Date:      dates[i],
			Value:     values[i],
			MovingAvg: avgs[i],
		})
	}

	if len(values) >= 2 {
		slope, r2 := linearFit(values)
		result.TrendStrength = r2
		switch {
		case math.Abs(slope) < StableSlopeThreshold:
			result.TrendDirection = models.TrendStable
		case slope > 0:
			result.TrendDirection = models.TrendIncreasing
		default:
			result.TrendDirection = models.TrendDecreasing
		}
	}

	result.Summary = models.TrendSummary{
		Metric:     metricLabel,
		WindowDays: opts.WindowDays,
		PeriodDays: len(values),
		MeanValue:  mean(values),
		MaxValue:   maxOf(values),
		MinValue:   minOf(values),
	}

	return result, nil
}

func (s *analyticsService) ComparePeriods(ctx context.Context, period1, period2, category string) (*models.PeriodComparison, error) {
	stats1, err := s.WeeklyStatistics(ctx, period1, category)
	if err != nil {
		return nil, err
	}
	stats2, err := s.WeeklyStatistics(ctx, period2, category)
	if err != nil {
		return nil, err
	}

	change := models.PeriodChange{
		TotalEntries:        stats2.TotalEntries - stats1.TotalEntries,
		TotalEntriesPercent: percentChange(float64(stats1.TotalEntries), float64(stats2.TotalEntries)),
		ByCategory:          make(map[string]models.CategoryChange),
		MoodDistribution:    make(map[models.Mood]models.MoodChange),
		Metrics:             make(map[string]models.MetricChange),
	}

	for _, cat := range unionKeys(stats1.ByCategory, stats2.ByCategory) {
		c1 := stats1.ByCategory[cat]
		c2 := stats2.ByCategory[cat]
		change.ByCategory[cat] = models.CategoryChange{
			Absolute: c2 - c1,
			Percent:  percentChange(float64(c1), float64(c2)),
		}
	}

	for _, mood := range []models.Mood{models.MoodPositive, models.MoodNeutral, models.MoodNegative} {
		m1 := stats1.MoodDistribution[mood]
		m2 := stats2.MoodDistribution[mood]
		change.MoodDistribution[mood] = models.MoodChange{
			Period1:  m1,
			Period2:  m2,
			Absolute: m2 - m1,
		}
	}

	for _, key := range unionKeys(stats1.MetricsSummary, stats2.MetricsSummary) {
		sum1 := stats1.MetricsSummary[key].Sum
		sum2 := stats2.MetricsSummary[key].Sum
		change.Metrics[key] = models.MetricChange{
			Period1Sum: sum1,
			Period2Sum: sum2,
			Absolute:   sum2 - sum1,
			Percent:    percentChange(sum1, sum2),
		}
	}

	return &models.PeriodComparison{
		Period1:      stats1.Week,
		Period2:      stats2.Week,
		Period1Stats: *stats1,
		Period2Stats: *stats2,
		Change:       change,
		Improvement: models.Improvement{
			TotalEntries: change.TotalEntries >= 0,
			PositiveMood: change.MoodDistribution[models.MoodPositive].Absolute >= 0,
		},
	}, nil
}

func (s *analyticsService) DailySummary(ctx context.Context, days int, category string) ([]models.DailySummary, error) {
	if days <= 0 {
		days = DefaultSummaryDays
	}

	end := week.Truncate(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	entries, err := s.entryRepo.GetByDateRange(ctx, start, end, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for daily summary: %w", err)
	}
	if len(entries) == 0 {
		return []models.DailySummary{}, nil
	}

	byDate := make(map[string][]models.Entry)
	for _, e := range entries {
		key := e.DateKey()
		byDate[key] = append(byDate[key], e)
	}

	summaries := make([]models.DailySummary, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		summary := models.DailySummary{
			Date:       key,
			Categories: make(map[string]int),
			Moods:      make(map[models.Mood]int),
		}
		for _, e := range byDate[key] {
			summary.Count++
			summary.Categories[e.Category]++
			summary.Moods[e.Mood]++
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// buildDailySeries groups entries into a date-ordered sparse series:
// one point per distinct date with data, valued by the summed metric
// when it is present on at least one entry, otherwise by entry count.
func buildDailySeries(entries []models.Entry, metric string) (dates []string, values []float64, label string) {
	metricPresent := false
	if metric != "" {
		for _, e := range entries {
			if mv, ok := e.Metrics[metric]; ok {
				if _, numeric := mv.Numeric(); numeric {
					metricPresent = true
					break
				}
			}
		}
	}

	perDate := make(map[string]float64)
	for _, e := range entries {
		key := e.DateKey()
		if metricPresent {
			if mv, ok := e.Metrics[metric]; ok {
				if v, numeric := mv.Numeric(); numeric {
					perDate[key] += v
					continue
				}
			}
			perDate[key] += 0
		} else {
			perDate[key]++
		}
	}

	dates = make([]string, 0, len(perDate))
	for d := range perDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	values = make([]float64, len(dates))
	for i, d := range dates {
		values[i] = perDate[d]
	}

	label = "count"
	if metricPresent {
		label = metric
	}
	return dates, values, label
}

// summarizeMetrics aggregates every numeric metric key seen across the
// entries, skipping bookkeeping keys.
func summarizeMetrics(entries []models.Entry) map[string]models.MetricSummary {
	summaries := make(map[string]models.MetricSummary)
	for _, e := range entries {
		for key, value := range e.Metrics {
			if models.IsBookkeepingKey(key) {
				continue
			}
			v, ok := value.Numeric()
			if !ok {
				continue
			}
			agg, seen := summaries[key]
			if !seen {
				agg = models.MetricSummary{Min: v, Max: v}
			}
			agg.Count++
			agg.Sum += v
			agg.Min = math.Min(agg.Min, v)
			agg.Max = math.Max(agg.Max, v)
			summaries[key] = agg
		}
	}
	for key, agg := range summaries {
		agg.Mean = agg.Sum / float64(agg.Count)
		summaries[key] = agg
	}
	return summaries
}

// movingAverage computes a trailing mean over the last window entries
// of the series, shrinking at the start (minimum one point).
func movingAverage(values []float64, window int) []float64 {
	avgs := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		avgs[i] = mean(values[start : i+1])
	}
	return avgs
}

// linearFit fits a least-squares line over (index, value) pairs and
// returns the slope and R². R² is 0 when the series has no variance.
func linearFit(values []float64) (slope, r2 float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range values {
		pred := slope*float64(i) + intercept
		ssRes += (y - pred) * (y - pred)
		ssTot += (y - meanY) * (y - meanY)
	}
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return slope, r2
}

// percentChange guards against a zero baseline, returning 0 instead of
// a division fault.
func percentChange(baseline, current float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

// unionKeys returns the sorted union of both maps' keys.
func unionKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
