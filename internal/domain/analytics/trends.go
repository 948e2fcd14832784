package analytics

import "sort"

// Lexical order on this layout is also chronological order.
const trendPeriodLayout = "2006-01"

// BuildTrends buckets feedback by the calendar month of createdAt and emits
// one point per distinct period, sorted ascending. Empty input yields an
// empty series.
func BuildTrends(feedback []Feedback) []TrendPoint {
	type bucket struct {
		count int
		sum   float64
	}

	buckets := map[string]*bucket{}
	for _, item := range feedback {
		period := item.CreatedAt.UTC().Format(trendPeriodLayout)
		b, ok := buckets[period]
		if !ok {
			b = &bucket{}
			buckets[period] = b
		}
		b.count++
		b.sum += item.Rating
	}

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	points := make([]TrendPoint, 0, len(periods))
	for _, period := range periods {
		b := buckets[period]
		points = append(points, TrendPoint{
			Period:    period,
			Count:     b.count,
			AvgRating: b.sum / float64(b.count),
		})
	}
	return points
}
