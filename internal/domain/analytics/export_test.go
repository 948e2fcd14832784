package analytics

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const wantHeader = "Team Name,Department,Member Count,Avg OKR Score,Avg Feedback Rating,Feedback Count,OKR Count,Positive Sentiment,Neutral Sentiment,Negative Sentiment"

func sampleMetrics() TeamMetrics {
	return TeamMetrics{
		TeamID:            "t1",
		TeamName:          "Platform",
		DepartmentName:    "Engineering",
		MemberCount:       5,
		AvgOkrScore:       7.5,
		AvgFeedbackRating: 8,
		FeedbackCount:     3,
		OkrCount:          2,
		SentimentCounts:   SentimentCounts{Positive: 2, Neutral: 1},
	}
}

func TestExportCSVHeaderIsFrozen(t *testing.T) {
	if got := strings.Join(ExportColumnsV1, ","); got != wantHeader {
		t.Fatalf("column constant drifted:\nwant %s\ngot  %s", wantHeader, got)
	}

	payload, contentType, err := Export(nil, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if contentType != ContentTypeCSV {
		t.Fatalf("unexpected content type %s", contentType)
	}
	if got := strings.TrimRight(string(payload), "\n"); got != wantHeader {
		t.Fatalf("header mismatch:\nwant %s\ngot  %s", wantHeader, got)
	}
}

func TestExportCSVRow(t *testing.T) {
	payload, _, err := Export([]TeamMetrics{sampleMetrics()}, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != wantHeader {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "Platform,Engineering,5,7.5,8,3,2,2,1,0" {
		t.Fatalf("unexpected data row: %s", lines[1])
	}
}

func TestExportCSVQuotesDelimiterInNames(t *testing.T) {
	metrics := sampleMetrics()
	metrics.TeamName = "Sales, EMEA"

	payload, _, err := Export([]TeamMetrics{metrics}, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(payload), `"Sales, EMEA",Engineering`) {
		t.Fatalf("comma in team name not quoted: %s", payload)
	}
}

func TestExportJSONRoundsAverages(t *testing.T) {
	metrics := sampleMetrics()
	metrics.AvgOkrScore = 7.666666666
	metrics.AvgFeedbackRating = 8.005

	payload, contentType, err := Export([]TeamMetrics{metrics}, FormatJSON)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if contentType != ContentTypeJSON {
		t.Fatalf("unexpected content type %s", contentType)
	}

	var decoded []TeamMetrics
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("invalid json payload: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one team, got %d", len(decoded))
	}
	if decoded[0].AvgOkrScore != 7.67 {
		t.Fatalf("expected rounded OKR score 7.67, got %v", decoded[0].AvgOkrScore)
	}
	if decoded[0].TeamName != "Platform" || decoded[0].FeedbackCount != 3 {
		t.Fatalf("non-average fields must pass through unmodified: %+v", decoded[0])
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, _, err := Export([]TeamMetrics{sampleMetrics()}, "xml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(7.666666); got != 7.67 {
		t.Fatalf("expected 7.67, got %v", got)
	}
	if got := Round2(8); got != 8 {
		t.Fatalf("expected 8, got %v", got)
	}
}
