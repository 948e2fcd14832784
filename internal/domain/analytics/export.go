package analytics

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeJSON = "application/json"
)

// ExportColumnsV1 is the frozen CSV layout. Downstream consumers parse rows
// by position, so the order must never change within the version.
var ExportColumnsV1 = []string{
	"Team Name",
	"Department",
	"Member Count",
	"Avg OKR Score",
	"Avg Feedback Rating",
	"Feedback Count",
	"OKR Count",
	"Positive Sentiment",
	"Neutral Sentiment",
	"Negative Sentiment",
}

// Export serializes team metrics in the requested format and reports the
// content type to serve it with.
func Export(metrics []TeamMetrics, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		payload, err := exportCSV(metrics)
		return payload, ContentTypeCSV, err
	case FormatJSON:
		payload, err := json.Marshal(RoundMetrics(metrics))
		return payload, ContentTypeJSON, err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func exportCSV(metrics []TeamMetrics) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(ExportColumnsV1); err != nil {
		return nil, err
	}
	for _, m := range metrics {
		record := []string{
			m.TeamName,
			m.DepartmentName,
			strconv.Itoa(m.MemberCount),
			formatAverage(m.AvgOkrScore),
			formatAverage(m.AvgFeedbackRating),
			strconv.Itoa(m.FeedbackCount),
			strconv.Itoa(m.OkrCount),
			strconv.Itoa(m.SentimentCounts.Positive),
			strconv.Itoa(m.SentimentCounts.Neutral),
			strconv.Itoa(m.SentimentCounts.Negative),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Round2 rounds to two decimal places. Applied only at the serialization
// boundary; intermediate aggregation always works on unrounded values.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// RoundMetrics returns copies with the average fields rounded for display.
func RoundMetrics(metrics []TeamMetrics) []TeamMetrics {
	rounded := make([]TeamMetrics, len(metrics))
	for i, m := range metrics {
		m.AvgOkrScore = Round2(m.AvgOkrScore)
		m.AvgFeedbackRating = Round2(m.AvgFeedbackRating)
		rounded[i] = m
	}
	return rounded
}

// RoundTrends returns copies with the average rating rounded for display.
func RoundTrends(points []TrendPoint) []TrendPoint {
	rounded := make([]TrendPoint, len(points))
	for i, p := range points {
		p.AvgRating = Round2(p.AvgRating)
		rounded[i] = p
	}
	return rounded
}

func formatAverage(value float64) string {
	return strconv.FormatFloat(Round2(value), 'f', -1, 64)
}
