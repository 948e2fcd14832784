package analytics

// ObjectiveScore is the mean of an objective's key-result scores. An
// objective without key results contributes exactly 0.
func ObjectiveScore(objective Objective) float64 {
	if len(objective.KeyResults) == 0 {
		return 0
	}
	sum := 0.0
	for _, kr := range objective.KeyResults {
		sum += kr.Score
	}
	return sum / float64(len(objective.KeyResults))
}

// Aggregate computes the metric fields of TeamMetrics from one team's raw
// records. The team OKR average is a mean of per-objective means, so each
// objective counts once regardless of how many key results it holds. Empty
// inputs yield zeroed metrics, never an error, and nothing is rounded here.
func Aggregate(objectives []Objective, feedback []Feedback) TeamMetrics {
	metrics := TeamMetrics{
		OkrCount:      len(objectives),
		FeedbackCount: len(feedback),
	}

	if len(objectives) > 0 {
		sum := 0.0
		for _, objective := range objectives {
			sum += ObjectiveScore(objective)
		}
		metrics.AvgOkrScore = sum / float64(len(objectives))
	}

	if len(feedback) > 0 {
		sum := 0.0
		for _, item := range feedback {
			sum += item.Rating
		}
		metrics.AvgFeedbackRating = sum / float64(len(feedback))
	}

	for _, item := range feedback {
		switch item.Sentiment {
		case SentimentPositive:
			metrics.SentimentCounts.Positive++
		case SentimentNegative:
			metrics.SentimentCounts.Negative++
		default:
			metrics.SentimentCounts.Neutral++
		}
	}

	return metrics
}
