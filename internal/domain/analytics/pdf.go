package analytics

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SummaryPDF renders the dashboard rollup as a printable report.
func SummaryPDF(title string, metrics []TeamMetrics, trends []TrendPoint) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Team Performance")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(metrics) == 0 {
		pdf.Cell(0, 7, "No teams in scope.")
		pdf.Ln(7)
	}
	for _, m := range metrics {
		pdf.Cell(0, 7, fmt.Sprintf("%s (%s) - %d members", m.TeamName, m.DepartmentName, m.MemberCount))
		pdf.Ln(6)
		pdf.Cell(0, 7, fmt.Sprintf("  OKR avg %.2f over %d objectives, feedback avg %.2f over %d items",
			Round2(m.AvgOkrScore), m.OkrCount, Round2(m.AvgFeedbackRating), m.FeedbackCount))
		pdf.Ln(6)
		pdf.Cell(0, 7, fmt.Sprintf("  Sentiment: %d positive / %d neutral / %d negative",
			m.SentimentCounts.Positive, m.SentimentCounts.Neutral, m.SentimentCounts.Negative))
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Monthly Feedback Trend")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(trends) == 0 {
		pdf.Cell(0, 7, "No feedback in scope.")
		pdf.Ln(7)
	}
	for _, point := range trends {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d items, avg rating %.2f", point.Period, point.Count, Round2(point.AvgRating)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
