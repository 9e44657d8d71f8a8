package models

// TrendDirection classifies the slope of a fitted trend line.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// DayCount is one weekday's entry count. by_day is a slice rather than
// a map so the canonical Monday→Sunday order survives serialization.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// MetricSummary aggregates one numeric metric key across a week.
type MetricSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Sum   float64 `json:"sum"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// WeeklyStatistics summarizes one ISO week of entries.
type WeeklyStatistics struct {
	Week             string                   `json:"week"`
	TotalEntries     int                      `json:"total_entries"`
	ByCategory       map[string]int           `json:"by_category"`
	ByDay            []DayCount               `json:"by_day"`
	MoodDistribution map[Mood]int             `json:"mood_distribution"`
	MetricsSummary   map[string]MetricSummary `json:"metrics_summary"`
	Entries          []Entry                  `json:"entries"`
}

// TrendPoint is one day of the trend series. Only days with observed
// data appear; the series is not zero-filled.
type TrendPoint struct {
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	MovingAvg float64 `json:"moving_avg"`
}

// TrendSummary carries the descriptive statistics of a trend series.
type TrendSummary struct {
	Metric     string  `json:"metric"`
	WindowDays int     `json:"window_days"`
	PeriodDays int     `json:"period_days"`
	MeanValue  float64 `json:"mean_value"`
	MaxValue   float64 `json:"max_value"`
	MinValue   float64 `json:"min_value"`
}

// TrendResult is the outcome of a trend analysis over a window.
type TrendResult struct {
	DailyData      []TrendPoint   `json:"daily_data"`
	TrendDirection TrendDirection `json:"trend_direction"`
	TrendStrength  float64        `json:"trend_strength"` // R² in [0, 1]
	Summary        TrendSummary   `json:"summary"`
}

// CategoryChange is the per-category delta between two periods.
type CategoryChange struct {
	Absolute int     `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// MoodChange carries both periods' counts for one mood and their delta.
type MoodChange struct {
	Period1  int `json:"period1"`
	Period2  int `json:"period2"`
	Absolute int `json:"absolute"`
}

// MetricChange is the per-metric sum delta between two periods.
type MetricChange struct {
	Period1Sum float64 `json:"period1_sum"`
	Period2Sum float64 `json:"period2_sum"`
	Absolute   float64 `json:"absolute"`
	Percent    float64 `json:"percent"`
}

// PeriodChange aggregates all deltas between two compared periods.
type PeriodChange struct {
	TotalEntries        int                       `json:"total_entries"`
	TotalEntriesPercent float64                   `json:"total_entries_percent"`
	ByCategory          map[string]CategoryChange `json:"by_category"`
	MoodDistribution    map[Mood]MoodChange       `json:"mood_distribution"`
	Metrics             map[string]MetricChange   `json:"metrics"`
}

// Improvement flags simple non-negative-delta checks, not significance.
type Improvement struct {
	TotalEntries bool `json:"total_entries"`
	PositiveMood bool `json:"positive_mood"`
}

// PeriodComparison diffs the weekly statistics of two ISO weeks.
type PeriodComparison struct {
	Period1      string           `json:"period1"`
	Period2      string           `json:"period2"`
	Period1Stats WeeklyStatistics `json:"period1_stats"`
	Period2Stats WeeklyStatistics `json:"period2_stats"`
	Change       PeriodChange     `json:"change"`
	Improvement  Improvement      `json:"improvement"`
}

// DayStats is the per-weekday breakdown used by pattern mining.
type DayStats struct {
	Count             int     `json:"count"`
	PositiveRate      float64 `json:"positive_rate"`
	PositiveCount     int     `json:"positive_count"`
	NeutralCount      int     `json:"neutral_count"`
	NegativeCount     int     `json:"negative_count"`
	AvgEntriesPerWeek float64 `json:"avg_entries_per_week"`
}

// DayPatterns is the result of day-of-week pattern detection. The
// day selections are empty strings when no entries exist.
type DayPatterns struct {
	BestDay        string              `json:"best_day,omitempty"`
	WorstDay       string              `json:"worst_day,omitempty"`
	MostActiveDay  string              `json:"most_active_day,omitempty"`
	LeastActiveDay string              `json:"least_active_day,omitempty"`
	DayAnalysis    map[string]DayStats `json:"day_analysis"`
	Patterns       []string            `json:"patterns"`
}

// StreakInterval is one maximal run of calendar-consecutive days.
type StreakInterval struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Length int    `json:"length"`
}

// StreakResult carries current/longest streaks plus the full history.
type StreakResult struct {
	CurrentStreak int              `json:"current_streak"`
	LongestStreak int              `json:"longest_streak"`
	StreakHistory []StreakInterval `json:"streak_history"`
	StreakDates   []string         `json:"streak_dates"`
}

// CategoryMood is the structured mood correlation for one category.
type CategoryMood struct {
	Category     string  `json:"category"`
	Total        int     `json:"total"`
	Positive     int     `json:"positive"`
	PositiveRate float64 `json:"positive_rate"`
	Significant  bool    `json:"significant"` // total >= 3 and rate >= 0.70
}

// ActivityPair is a category pair that co-occurs on the same day.
type ActivityPair struct {
	Activities        string `json:"activities"`
	CategoryA         string `json:"category_a"`
	CategoryB         string `json:"category_b"`
	CoOccurrenceCount int    `json:"co_occurrence_count"`
}

// CorrelationReport is the result of correlation mining.
type CorrelationReport struct {
	Correlations      []string                `json:"correlations"`
	MoodAfterActivity map[string]CategoryMood `json:"mood_after_activity"`
	ActivityPairs     []ActivityPair          `json:"activity_pairs"`
}

// Insights combines all pattern detections into a summary plus a
// ranked recommendation list.
type Insights struct {
	Summary         string            `json:"summary"`
	DayPatterns     DayPatterns       `json:"day_patterns"`
	Streaks         StreakResult      `json:"streaks"`
	Correlations    CorrelationReport `json:"correlations"`
	Recommendations []string          `json:"recommendations"`
}

// DailySummary is one day of the dense last-N-days summary.
type DailySummary struct {
	Date       string         `json:"date"`
	Count      int            `json:"count"`
	Categories map[string]int `json:"categories"`
	Moods      map[Mood]int   `json:"moods"`
}
