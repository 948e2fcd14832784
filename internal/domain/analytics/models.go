package analytics

import "time"

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Defaults for optional feedback fields, applied where raw records are read.
// A record carrying them is valid data, not an error case.
const (
	DefaultRating    = 0.0
	DefaultSentiment = SentimentNeutral
)

type KeyResult struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

type Objective struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"ownerId"`
	Title      string      `json:"title"`
	KeyResults []KeyResult `json:"keyResults"`
}

type Feedback struct {
	ID         string    `json:"id"`
	GiverID    string    `json:"giverId"`
	ReceiverID string    `json:"receiverId"`
	Rating     float64   `json:"rating"`
	Sentiment  string    `json:"sentiment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// TeamMetrics is recomputed on every request and never persisted. Average
// fields stay unrounded until serialization.
type TeamMetrics struct {
	TeamID            string          `json:"teamId"`
	TeamName          string          `json:"teamName"`
	DepartmentName    string          `json:"departmentName"`
	MemberCount       int             `json:"memberCount"`
	AvgOkrScore       float64         `json:"avgOkrScore"`
	AvgFeedbackRating float64         `json:"avgFeedbackRating"`
	FeedbackCount     int             `json:"feedbackCount"`
	OkrCount          int             `json:"okrCount"`
	SentimentCounts   SentimentCounts `json:"sentimentCounts"`
}

type TrendPoint struct {
	Period    string  `json:"period"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

// TeamRecords is one team's slice of the raw data set returned by the fetcher.
type TeamRecords struct {
	TeamID         string
	TeamName       string
	DepartmentName string
	MemberCount    int
	Objectives     []Objective
	Feedback       []Feedback
}

type DashboardResponse struct {
	Teams  []TeamMetrics `json:"teams"`
	Trends []TrendPoint  `json:"trends"`
	Scope  ResolvedScope `json:"scope"`
}
