package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/catDforD/Trackit/internal/models"
)

func analyticsWithClock(t *testing.T, repo *stubEntryRepository, today string) *analyticsService {
	t.Helper()
	return &analyticsService{entryRepo: repo, now: fixedTime(t, today)}
}

func TestWeeklyStatisticsBasic(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, nil) // Monday
	repo.add("2026-01-06", "Study", models.MoodNeutral, nil)     // Tuesday

	svc := analyticsWithClock(t, repo, "2026-01-08")
	stats, err := svc.WeeklyStatistics(context.Background(), "2026-W02", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalEntries != 2 {
		t.Errorf("expected 2 total entries, got %d", stats.TotalEntries)
	}
	wantDays := []models.DayCount{{Day: "Monday", Count: 1}, {Day: "Tuesday", Count: 1}}
	if len(stats.ByDay) != len(wantDays) {
		t.Fatalf("expected %d day counts, got %d", len(wantDays), len(stats.ByDay))
	}
	for i, want := range wantDays {
		if stats.ByDay[i] != want {
			t.Errorf("by_day[%d]: expected %+v, got %+v", i, want, stats.ByDay[i])
		}
	}
	if stats.MoodDistribution[models.MoodPositive] != 1 || stats.MoodDistribution[models.MoodNeutral] != 1 {
		t.Errorf("unexpected mood distribution: %v", stats.MoodDistribution)
	}
	if stats.ByCategory["Exercise"] != 1 || stats.ByCategory["Study"] != 1 {
		t.Errorf("unexpected category counts: %v", stats.ByCategory)
	}
}

func TestWeeklyStatisticsEmptyWeekIsZeroValued(t *testing.T) {
	svc := analyticsWithClock(t, newStubRepo(), "2026-01-08")
	stats, err := svc.WeeklyStatistics(context.Background(), "2026-W02", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("expected 0 entries, got %d", stats.TotalEntries)
	}
	if len(stats.ByCategory) != 0 || len(stats.ByDay) != 0 || len(stats.MoodDistribution) != 0 || len(stats.MetricsSummary) != 0 {
		t.Errorf("expected empty aggregates, got %+v", stats)
	}
}

func TestWeeklyStatisticsMalformedWeekFailsFast(t *testing.T) {
	svc := analyticsWithClock(t, newStubRepo(), "2026-01-08")
	if _, err := svc.WeeklyStatistics(context.Background(), "2026-02", ""); err == nil {
		t.Error("expected error for malformed week id")
	}
	if _, err := svc.WeeklyStatistics(context.Background(), "2021-W53", ""); err == nil {
		t.Error("expected error for out-of-range week")
	}
}

func TestWeeklyStatisticsCategoryFilter(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, nil)
	repo.add("2026-01-06", "Exercise", models.MoodPositive, nil)
	repo.add("2026-01-06", "Study", models.MoodNeutral, nil)

	svc := analyticsWithClock(t, repo, "2026-01-08")
	stats, err := svc.WeeklyStatistics(context.Background(), "2026-W02", "Exercise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The filter narrows by_category only; the rest covers the week.
	if stats.TotalEntries != 3 {
		t.Errorf("expected 3 total entries, got %d", stats.TotalEntries)
	}
	if len(stats.ByCategory) != 1 || stats.ByCategory["Exercise"] != 2 {
		t.Errorf("unexpected category counts: %v", stats.ByCategory)
	}
}

func TestWeeklyStatisticsWeekdayPartition(t *testing.T) {
	repo := newStubRepo()
	days := []string{"2026-01-05", "2026-01-05", "2026-01-07", "2026-01-09", "2026-01-10", "2026-01-11", "2026-01-11"}
	for _, d := range days {
		repo.add(d, "Exercise", models.MoodPositive, nil)
	}

	svc := analyticsWithClock(t, repo, "2026-01-12")
	stats, err := svc.WeeklyStatistics(context.Background(), "2026-W02", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0
	for _, dc := range stats.ByDay {
		sum += dc.Count
	}
	if sum != stats.TotalEntries {
		t.Errorf("by_day sums to %d, want total_entries %d", sum, stats.TotalEntries)
	}
}

func TestWeeklyStatisticsMetricsSummary(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, models.Metrics{
		"distance_km": models.Num(5),
		"wake_time":   models.Str("06:30"), // non-numeric, skipped
		"id":          models.Num(99),      // bookkeeping, skipped
	})
	repo.add("2026-01-06", "Exercise", models.MoodPositive, models.Metrics{
		"distance_km": models.Num(3),
	})

	svc := analyticsWithClock(t, repo, "2026-01-08")
	stats, err := svc.WeeklyStatistics(context.Background(), "2026-W02", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stats.MetricsSummary) != 1 {
		t.Fatalf("expected only distance_km summarized, got %v", stats.MetricsSummary)
	}
	agg := stats.MetricsSummary["distance_km"]
	want := models.MetricSummary{Count: 2, Mean: 4, Sum: 8, Min: 3, Max: 5}
	if agg != want {
		t.Errorf("expected %+v, got %+v", want, agg)
	}
}

func TestTrendAnalysisIncreasingStep(t *testing.T) {
	repo := newStubRepo()
	// 14 consecutive days: one entry/day for a week, then two/day.
	for i := 0; i < 7; i++ {
		repo.add(fmt.Sprintf("2026-01-%02d", 5+i), "Exercise", models.MoodPositive, nil)
	}
	for i := 0; i < 7; i++ {
		d := fmt.Sprintf("2026-01-%02d", 12+i)
		repo.add(d, "Exercise", models.MoodPositive, nil)
		repo.add(d, "Exercise", models.MoodPositive, nil)
	}

	svc := analyticsWithClock(t, repo, "2026-01-18")
	result, err := svc.TrendAnalysis(context.Background(), TrendOptions{WindowDays: 7, WeeksBack: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TrendDirection != models.TrendIncreasing {
		t.Errorf("expected increasing, got %s", result.TrendDirection)
	}
	if result.TrendStrength <= 0.7 || result.TrendStrength > 1 {
		t.Errorf("expected strength near the high end of [0,1], got %f", result.TrendStrength)
	}
	if len(result.DailyData) != 14 {
		t.Errorf("expected 14 points, got %d", len(result.DailyData))
	}
	if result.Summary.MinValue != 1 || result.Summary.MaxValue != 2 || result.Summary.MeanValue != 1.5 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
}

func TestTrendAnalysisStrengthBounds(t *testing.T) {
	repo := newStubRepo()
	counts := []int{3, 1, 4, 1, 5, 2, 6}
	for i, c := range counts {
		for j := 0; j < c; j++ {
			repo.add(fmt.Sprintf("2026-01-%02d", 5+i), "Exercise", models.MoodNeutral, nil)
		}
	}

	svc := analyticsWithClock(t, repo, "2026-01-12")
	result, err := svc.TrendAnalysis(context.Background(), TrendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TrendDirection == models.TrendInsufficientData {
		t.Fatal("expected a fitted trend")
	}
	if result.TrendStrength < 0 || result.TrendStrength > 1 {
		t.Errorf("trend strength %f outside [0,1]", result.TrendStrength)
	}
}

func TestTrendAnalysisSparseSeriesSkipsEmptyDays(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, nil)
	repo.add("2026-01-09", "Exercise", models.MoodPositive, nil)

	svc := analyticsWithClock(t, repo, "2026-01-12")
	result, err := svc.TrendAnalysis(context.Background(), TrendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Zero-activity days do not appear in the series.
	if len(result.DailyData) != 2 {
		t.Fatalf("expected 2 points, got %d", len(result.DailyData))
	}
	if result.DailyData[0].Date != "2026-01-05" || result.DailyData[1].Date != "2026-01-09" {
		t.Errorf("unexpected series dates: %+v", result.DailyData)
	}
}

func TestTrendAnalysisMetricSeries(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, models.Metrics{"distance_km": models.Num(3)})
	repo.add("2026-01-05", "Exercise", models.MoodPositive, models.Metrics{"distance_km": models.Num(2)})
	repo.add("2026-01-06", "Exercise", models.MoodPositive, nil) // counts as 0 distance

	svc := analyticsWithClock(t, repo, "2026-01-12")
	result, err := svc.TrendAnalysis(context.Background(), TrendOptions{Metric: "distance_km"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary.Metric != "distance_km" {
		t.Errorf("expected metric distance_km, got %s", result.Summary.Metric)
	}
	if result.DailyData[0].Value != 5 || result.DailyData[1].Value != 0 {
		t.Errorf("unexpected metric values: %+v", result.DailyData)
	}
}

func TestTrendAnalysisUnknownMetricFallsBackToCount(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, nil)
	repo.add("2026-01-05", "Exercise", models.MoodPositive, nil)

	svc := analyticsWithClock(t, repo, "2026-01-12")
	result, err := svc.TrendAnalysis(context.Background(), TrendOptions{Metric: "distance_km"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Metric != "count" {
		t.Errorf("expected fallback to count, got %s", result.Summary.Metric)
	}
	if result.DailyData[0].Value != 2 {
		t.Errorf("expected count 2, got %f", result.DailyData[0].Value)
	}
}

func TestTrendAnalysisInsufficientData(t *testing.T) {
	svc := analyticsWithClock(t, newStubRepo(), "2026-01-12")
	result, err := svc.TrendAnalysis(context.Background(), TrendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TrendDirection != models.TrendInsufficientData || result.TrendStrength != 0 {
		t.Errorf("expected insufficient_data with zero strength, got %+v", result)
	}

	repo := newStubRepo()
	repo.add("2026-01-05", "Exercise", models.MoodPositive, nil)
	svc = analyticsWithClock(t, repo, "2026-01-12")
	result, err = svc.TrendAnalysis(context.Background(), TrendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TrendDirection != models.TrendInsufficientData {
		t.Errorf("expected insufficient_data for single point, got %s", result.TrendDirection)
	}
}

func TestMovingAverageShrinksAtStart(t *testing.T) {
	got := movingAverage([]float64{1, 2, 3, 4}, 3)
	want := []float64{1, 1.5, 2, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("avg[%d]: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestLinearFitFlatSeriesHasZeroStrength(t *testing.T) {
	slope, r2 := linearFit([]float64{2, 2, 2, 2})
	if slope != 0 || r2 != 0 {
		t.Errorf("expected zero slope and strength, got slope=%f r2=%f", slope, r2)
	}
}

func TestComparePeriodsZeroBaseline(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-12", "Exercise", models.MoodPositive, nil) // W03 only

	svc := analyticsWithClock(t, repo, "2026-01-15")
	cmp, err := svc.ComparePeriods(context.Background(), "2026-W02", "2026-W03", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cmp.Change.TotalEntries != 1 {
		t.Errorf("expected delta 1, got %d", cmp.Change.TotalEntries)
	}
	// Zero baseline yields 0 percent, never a division fault.
	if cmp.Change.TotalEntriesPercent != 0 {
		t.Errorf("expected 0 percent on zero baseline, got %f", cmp.Change.TotalEntriesPercent)
	}
	if got := cmp.Change.ByCategory["Exercise"]; got.Percent != 0 || got.Absolute != 1 {
		t.Errorf("unexpected category change: %+v", got)
	}
	if !cmp.Improvement.TotalEntries || !cmp.Improvement.PositiveMood {
		t.Errorf("expected improvement flags set, got %+v", cmp.Improvement)
	}
}

func TestComparePeriodsDeltas(t *testing.T) {
	repo := newStubRepo()
	// W02: 2 Exercise (one with distance), 1 Study.
	repo.add("2026-01-05", "Exercise", models.MoodPositive, models.Metrics{"distance_km": models.Num(4)})
	repo.add("2026-01-06", "Exercise", models.MoodPositive, nil)
	repo.add("2026-01-07", "Study", models.MoodNegative, nil)
	// W03: 1 Exercise with more distance.
	repo.add("2026-01-12", "Exercise", models.MoodNeutral, models.Metrics{"distance_km": models.Num(6)})

	svc := analyticsWithClock(t, repo, "2026-01-15")
	cmp, err := svc.ComparePeriods(context.Background(), "2026-W02", "2026-W03", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cmp.Change.TotalEntries != -2 {
		t.Errorf("expected delta -2, got %d", cmp.Change.TotalEntries)
	}
	if math.Abs(cmp.Change.TotalEntriesPercent-(-66.666666)) > 0.001 {
		t.Errorf("unexpected percent: %f", cmp.Change.TotalEntriesPercent)
	}
	// Union of categories from both periods.
	if _, ok := cmp.Change.ByCategory["Study"]; !ok {
		t.Error("expected Study in category changes")
	}
	if got := cmp.Change.ByCategory["Study"]; got.Absolute != -1 || got.Percent != -100 {
		t.Errorf("unexpected Study change: %+v", got)
	}
	if got := cmp.Change.MoodDistribution[models.MoodPositive]; got.Period1 != 2 || got.Period2 != 0 || got.Absolute != -2 {
		t.Errorf("unexpected positive mood change: %+v", got)
	}
	if got := cmp.Change.Metrics["distance_km"]; got.Absolute != 2 || got.Percent != 50 {
		t.Errorf("unexpected metric change: %+v", got)
	}
	if cmp.Improvement.TotalEntries || cmp.Improvement.PositiveMood {
		t.Errorf("expected no improvement, got %+v", cmp.Improvement)
	}
}

func TestComparePeriodsMalformedPeriod(t *testing.T) {
	svc := analyticsWithClock(t, newStubRepo(), "2026-01-15")
	if _, err := svc.ComparePeriods(context.Background(), "garbage", "2026-W03", ""); err == nil {
		t.Error("expected error for malformed period id")
	}
}

func TestDailySummaryIsDense(t *testing.T) {
	repo := newStubRepo()
	repo.add("2026-01-10", "Exercise", models.MoodPositive, nil)
	repo.add("2026-01-12", "Study", models.MoodNeutral, nil)

	svc := analyticsWithClock(t, repo, "2026-01-12")
	summaries, err := svc.DailySummary(context.Background(), 5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 5 {
		t.Fatalf("expected 5 days, got %d", len(summaries))
	}
	if summaries[0].Date != "2026-01-08" || summaries[4].Date != "2026-01-12" {
		t.Errorf("unexpected span: %s .. %s", summaries[0].Date, summaries[4].Date)
	}
	if summaries[1].Count != 0 {
		t.Errorf("expected zero-count day, got %d", summaries[1].Count)
	}
	if summaries[2].Count != 1 || summaries[2].Categories["Exercise"] != 1 {
		t.Errorf("unexpected day summary: %+v", summaries[2])
	}
}
