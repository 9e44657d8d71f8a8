package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/catDforD/Trackit/internal/models"
	"github.com/catDforD/Trackit/internal/repository"
	"github.com/catDforD/Trackit/internal/week"
)

const (
	// DefaultPatternWeeks is the pattern mining lookback when none is given.
	DefaultPatternWeeks = 4

	// DefaultStreakDays is the streak detection lookback when none is given.
	DefaultStreakDays = 30

	// DefaultInsightWeeks is the insight synthesis lookback when none is given.
	DefaultInsightWeeks = 2

	// MinMoodGap is the minimum positive-rate gap between the best and
	// worst day before a mood pattern is reported.
	MinMoodGap = 0.10

	// MinCorrelationTotal is the minimum occurrences before a category
	// can be flagged as mood-correlated.
	MinCorrelationTotal = 3

	// MinPositiveRate is the positive rate at or above which a category
	// is flagged as mood-correlated.
	MinPositiveRate = 0.70

	// MinPairCount is the minimum same-day co-occurrences before a
	// category pair is reported.
	MinPairCount = 3

	// MaxPairInsights caps the number of pair sentences reported.
	MaxPairInsights = 5

	// MaxMoodRecommendations caps the mood-boosting recommendations.
	MaxMoodRecommendations = 3
)

type patternService struct {
	entryRepo repository.EntryRepository
	now       func() time.Time
}

// NewPatternService creates a new pattern detection service.
func NewPatternService(entryRepo repository.EntryRepository) PatternService {
	return &patternService{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

func (s *patternService) DayOfWeekPatterns(ctx context.Context, weeks int, category string) (*models.DayPatterns, error) {
	if weeks <= 0 {
		weeks = DefaultPatternWeeks
	}

	end := week.Truncate(s.now())
	start := end.AddDate(0, 0, -7*weeks)

	entries, err := s.entryRepo.GetByDateRange(ctx, start, end, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for day patterns: %w", err)
	}

	result := &models.DayPatterns{
		DayAnalysis: make(map[string]models.DayStats),
		Patterns:    []string{},
	}
	if len(entries) == 0 {
		return result, nil
	}

	var stats [7]models.DayStats
	for _, e := range entries {
		idx := week.WeekdayIndex(e.Date)
		stats[idx].Count++
		switch e.Mood {
		case models.MoodPositive:
			stats[idx].PositiveCount++
		case models.MoodNeutral:
			stats[idx].NeutralCount++
		case models.MoodNegative:
			stats[idx].NegativeCount++
		}
	}
	for i := range stats {
		if stats[i].Count > 0 {
			stats[i].PositiveRate = float64(stats[i].PositiveCount) / float64(stats[i].Count)
		}
		stats[i].AvgEntriesPerWeek = float64(stats[i].Count) / float64(weeks)
		result.DayAnalysis[week.DayNames[i]] = stats[i]
	}

	// Ties resolve to the earliest weekday in Monday→Sunday order.
	best, worst, most, least := 0, 0, 0, 0
	for i := 1; i < 7; i++ {
		if stats[i].PositiveRate > stats[best].PositiveRate {
			best = i
		}
		if stats[i].PositiveRate < stats[worst].PositiveRate {
			worst = i
		}
		if stats[i].Count > stats[most].Count {
			most = i
		}
		if stats[i].Count < stats[least].Count {
			least = i
		}
	}
	result.BestDay = week.DayNames[best]
	result.WorstDay = week.DayNames[worst]
	result.MostActiveDay = week.DayNames[most]
	result.LeastActiveDay = week.DayNames[least]

	if stats[most].Count > 0 {
		result.Patterns = append(result.Patterns, fmt.Sprintf(
			"You're most active on %ss (avg %.1f entries/week)",
			result.MostActiveDay, stats[most].AvgEntriesPerWeek))
	}
	if stats[least].Count < stats[most].Count {
		result.Patterns = append(result.Patterns, fmt.Sprintf(
			"You're least active on %ss (avg %.1f entries/week)",
			result.LeastActiveDay, stats[least].AvgEntriesPerWeek))
	}
	if best != worst && stats[best].PositiveRate > stats[worst].PositiveRate+MinMoodGap {
		result.Patterns = append(result.Patterns, fmt.Sprintf(
			"Mood tends to be best on %ss (%.0f%% positive)",
			result.BestDay, stats[best].PositiveRate*100))
		result.Patterns = append(result.Patterns, fmt.Sprintf(
			"Mood tends to be lowest on %ss (%.0f%% positive)",
			result.WorstDay, stats[worst].PositiveRate*100))
	}

	return result, nil
}

func (s *patternService) DetectStreaks(ctx context.Context, category string, days int) (*models.StreakResult, error) {
	if days <= 0 {
		days = DefaultStreakDays
	}

	today := week.Truncate(s.now())
	start := today.AddDate(0, 0, -days)

	entries, err := s.entryRepo.GetByDateRange(ctx, start, today, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for streaks: %w", err)
	}

	result := &models.StreakResult{
		StreakHistory: []models.StreakInterval{},
		StreakDates:   []string{},
	}
	if len(entries) == 0 {
		return result, nil
	}

	dates := distinctDates(entries)

	// Partition into maximal runs of calendar-consecutive dates.
	runStart := dates[0]
	prev := dates[0]
	flush := func(end time.Time) {
		length := int(end.Sub(runStart).Hours()/24) + 1
		result.StreakHistory = append(result.StreakHistory, models.StreakInterval{
			Start:  runStart.Format(time.DateOnly),
			End:    end.Format(time.DateOnly),
			Length: length,
		})
		if length > result.LongestStreak {
			result.LongestStreak = length
		}
	}
	for _, d := range dates[1:] {
		if int(d.Sub(prev).Hours()/24) != 1 {
			flush(prev)
			runStart = d
		}
		prev = d
	}
	flush(prev)

	for _, interval := range result.StreakHistory {
		result.StreakDates = append(result.StreakDates, fmt.Sprintf(
			"%s to %s (%d days)", interval.Start, interval.End, interval.Length))
	}

	// A streak is current when its last day is today or yesterday. The
	// backward walk starts at that last day, so a streak that ended
	// yesterday still counts in full.
	last := dates[len(dates)-1]
	yesterday := today.AddDate(0, 0, -1)
	if last.Equal(today) || last.Equal(yesterday) {
		dateSet := make(map[string]bool, len(dates))
		for _, d := range dates {
			dateSet[d.Format(time.DateOnly)] = true
		}
		for d := last; dateSet[d.Format(time.DateOnly)]; d = d.AddDate(0, 0, -1) {
			result.CurrentStreak++
		}
	}

	return result, nil
}

func (s *patternService) DetectCorrelations(ctx context.Context, weeks int) (*models.CorrelationReport, error) {
	if weeks <= 0 {
		weeks = DefaultPatternWeeks
	}

	end := week.Truncate(s.now())
	start := end.AddDate(0, 0, -7*weeks)

	entries, err := s.entryRepo.GetByDateRange(ctx, start, end, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for correlations: %w", err)
	}

	report := &models.CorrelationReport{
		Correlations:      []string{},
		MoodAfterActivity: make(map[string]models.CategoryMood),
		ActivityPairs:     []models.ActivityPair{},
	}
	if len(entries) == 0 {
		return report, nil
	}

	for _, e := range entries {
		cm := report.MoodAfterActivity[e.Category]
		cm.Category = e.Category
		cm.Total++
		if e.Mood == models.MoodPositive {
			cm.Positive++
		}
		report.MoodAfterActivity[e.Category] = cm
	}
	for cat, cm := range report.MoodAfterActivity {
		cm.PositiveRate = float64(cm.Positive) / float64(cm.Total)
		cm.Significant = cm.Total >= MinCorrelationTotal && cm.PositiveRate >= MinPositiveRate
		report.MoodAfterActivity[cat] = cm
	}
	for _, cat := range sortedKeys(report.MoodAfterActivity) {
		cm := report.MoodAfterActivity[cat]
		if cm.Significant {
			report.Correlations = append(report.Correlations, fmt.Sprintf(
				"%s correlates with good mood (%.0f%% positive, %d occurrences)",
				cm.Category, cm.PositiveRate*100, cm.Total))
		}
	}

	// Same-day co-occurrence over the set of distinct categories per
	// day: duplicates collapse, pairs are canonicalized lexicographically
	// so (A,B) and (B,A) share a counter and self-pairs are excluded.
	categoriesByDate := make(map[string]map[string]bool)
	for _, e := range entries {
		key := e.DateKey()
		if categoriesByDate[key] == nil {
			categoriesByDate[key] = make(map[string]bool)
		}
		categoriesByDate[key][e.Category] = true
	}

	pairCounts := make(map[[2]string]int)
	for _, set := range categoriesByDate {
		cats := make([]string, 0, len(set))
		for c := range set {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for i := 0; i < len(cats); i++ {
			for j := i + 1; j < len(cats); j++ {
				pairCounts[[2]string{cats[i], cats[j]}]++
			}
		}
	}

	for pair, count := range pairCounts {
		if count >= MinPairCount {
			report.ActivityPairs = append(report.ActivityPairs, models.ActivityPair{
				Activities:        pair[0] + " + " + pair[1],
				CategoryA:         pair[0],
				CategoryB:         pair[1],
				CoOccurrenceCount: count,
			})
		}
	}
	sort.Slice(report.ActivityPairs, func(i, j int) bool {
		if report.ActivityPairs[i].CoOccurrenceCount != report.ActivityPairs[j].CoOccurrenceCount {
			return report.ActivityPairs[i].CoOccurrenceCount > report.ActivityPairs[j].CoOccurrenceCount
		}
		return report.ActivityPairs[i].Activities < report.ActivityPairs[j].Activities
	})

	for i, pair := range report.ActivityPairs {
		if i >= MaxPairInsights {
			break
		}
		report.Correlations = append(report.Correlations, fmt.Sprintf(
			"%s often occur together (%d times)", pair.Activities, pair.CoOccurrenceCount))
	}

	return report, nil
}

func (s *patternService) Insights(ctx context.Context, weeks int) (*models.Insights, error) {
	if weeks <= 0 {
		weeks = DefaultInsightWeeks
	}

	dayPatterns, err := s.DayOfWeekPatterns(ctx, weeks, "")
	if err != nil {
		return nil, err
	}
	streaks, err := s.DetectStreaks(ctx, "", weeks*7)
	if err != nil {
		return nil, err
	}
	correlations, err := s.DetectCorrelations(ctx, weeks)
	if err != nil {
		return nil, err
	}

	var summaryParts []string
	if streaks.CurrentStreak >= 3 {
		summaryParts = append(summaryParts, fmt.Sprintf(
			"You're on a %d-day streak!", streaks.CurrentStreak))
	}
	if streaks.LongestStreak >= 7 {
		summaryParts = append(summaryParts, fmt.Sprintf(
			"Your longest streak was %d days", streaks.LongestStreak))
	}
	if dayPatterns.BestDay != "" {
		summaryParts = append(summaryParts, fmt.Sprintf(
			"You tend to be in the best mood on %ss", dayPatterns.BestDay))
	}
	summary := "Keep tracking to see patterns!"
	if len(summaryParts) > 0 {
		summary = strings.Join(summaryParts, " | ")
	}

	recommendations := []string{}
	if streaks.CurrentStreak == 0 {
		recommendations = append(recommendations, "Start small - record just one habit today")
	} else if streaks.CurrentStreak < streaks.LongestStreak {
		recommendations = append(recommendations, fmt.Sprintf(
			"You're close to your record! Your longest streak was %d days",
			streaks.LongestStreak))
	}
	if dayPatterns.WorstDay != "" {
		recommendations = append(recommendations, fmt.Sprintf(
			"Be extra mindful on %ss - that's typically your lowest mood day",
			dayPatterns.WorstDay))
	}
	for _, cm := range topMoodBoosters(correlations, MaxMoodRecommendations) {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider doing more %s - it seems to boost your mood!", cm.Category))
	}

	return &models.Insights{
		Summary:         summary,
		DayPatterns:     *dayPatterns,
		Streaks:         *streaks,
		Correlations:    *correlations,
		Recommendations: recommendations,
	}, nil
}

// topMoodBoosters ranks significant mood correlations by positive rate,
// then total, then name, and returns the top limit entries. It works on
// the structured records rather than re-parsing generated sentences.
func topMoodBoosters(report *models.CorrelationReport, limit int) []models.CategoryMood {
	boosters := make([]models.CategoryMood, 0)
	for _, cm := range report.MoodAfterActivity {
		if cm.Significant {
			boosters = append(boosters, cm)
		}
	}
	sort.Slice(boosters, func(i, j int) bool {
		if boosters[i].PositiveRate != boosters[j].PositiveRate {
			return boosters[i].PositiveRate > boosters[j].PositiveRate
		}
		if boosters[i].Total != boosters[j].Total {
			return boosters[i].Total > boosters[j].Total
		}
		return boosters[i].Category < boosters[j].Category
	})
	if len(boosters) > limit {
		boosters = boosters[:limit]
	}
	return boosters
}

// distinctDates returns the sorted set of distinct calendar days with
// at least one entry.
func distinctDates(entries []models.Entry) []time.Time {
	seen := make(map[string]time.Time)
	for _, e := range entries {
		d := week.Truncate(e.Date)
		seen[d.Format(time.DateOnly)] = d
	}
	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
