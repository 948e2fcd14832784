package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"perfhub/internal/domain/auth"
)

type fakeFetcher struct {
	records []TeamRecords
	err     error
	scopes  []ResolvedScope
}

func (f *fakeFetcher) FetchScopedRecords(_ context.Context, scope ResolvedScope) ([]TeamRecords, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func fetcherWithTwoTeams() *fakeFetcher {
	january := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	february := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	return &fakeFetcher{records: []TeamRecords{
		{
			TeamID:         "t2",
			TeamName:       "Platform",
			DepartmentName: "Engineering",
			MemberCount:    4,
			Objectives: []Objective{
				{ID: "o1", KeyResults: []KeyResult{{Score: 8}, {Score: 6}}},
			},
			Feedback: []Feedback{
				{Rating: 8, Sentiment: SentimentPositive, CreatedAt: january},
			},
		},
		{
			TeamID:         "t1",
			TeamName:       "Field Sales",
			DepartmentName: "Sales",
			MemberCount:    3,
			Feedback: []Feedback{
				{Rating: 6, Sentiment: SentimentNeutral, CreatedAt: january},
				{Rating: 9, Sentiment: SentimentPositive, CreatedAt: february},
			},
		},
	}}
}

func TestDashboardAssemblesScopedTeams(t *testing.T) {
	fetcher := fetcherWithTwoTeams()
	service := NewService(fetcher)
	caller := Caller{UserID: "a1", Role: auth.RoleAdmin}

	dashboard, err := service.Dashboard(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg})
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if len(dashboard.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(dashboard.Teams))
	}
	if dashboard.Teams[0].TeamName != "Field Sales" || dashboard.Teams[1].TeamName != "Platform" {
		t.Fatalf("teams not sorted by name: %s, %s", dashboard.Teams[0].TeamName, dashboard.Teams[1].TeamName)
	}
	if dashboard.Teams[1].AvgOkrScore != 7 {
		t.Fatalf("expected Platform OKR average 7, got %v", dashboard.Teams[1].AvgOkrScore)
	}
	if dashboard.Scope.Kind != auth.ScopeOrg {
		t.Fatalf("unexpected scope in response: %+v", dashboard.Scope)
	}

	// Trends span the feedback of every team in scope.
	if len(dashboard.Trends) != 2 {
		t.Fatalf("expected 2 trend points, got %d", len(dashboard.Trends))
	}
	if dashboard.Trends[0].Period != "2024-01" || dashboard.Trends[0].Count != 2 || dashboard.Trends[0].AvgRating != 7 {
		t.Fatalf("unexpected first trend point: %+v", dashboard.Trends[0])
	}
}

func TestDashboardRejectsBeforeFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	service := NewService(fetcher)
	caller := Caller{UserID: "e1", Role: auth.RoleEmployee}

	_, err := service.Dashboard(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg})
	if !errors.Is(err, ErrScopeForbidden) {
		t.Fatalf("expected scope forbidden, got %v", err)
	}
	if len(fetcher.scopes) != 0 {
		t.Fatal("fetch must not run for a forbidden scope")
	}
}

func TestDashboardWrapsFetchFailure(t *testing.T) {
	cause := errors.New("connection refused")
	service := NewService(&fakeFetcher{err: cause})
	caller := Caller{UserID: "a1", Role: auth.RoleAdmin}

	_, err := service.Dashboard(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg})

	var dataErr *DataSourceError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected DataSourceError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("fetch failure must be wrapped unchanged")
	}
}

func TestDashboardEmptyScopeIsNotAnError(t *testing.T) {
	service := NewService(&fakeFetcher{})
	caller := Caller{UserID: "a1", Role: auth.RoleAdmin}

	dashboard, err := service.Dashboard(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg})
	if err != nil {
		t.Fatalf("empty scope must succeed, got %v", err)
	}
	if len(dashboard.Teams) != 0 || len(dashboard.Trends) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", dashboard)
	}
}

func TestExportMetricsValidatesFormatBeforeFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	service := NewService(fetcher)
	caller := Caller{UserID: "a1", Role: auth.RoleAdmin}

	_, _, err := service.ExportMetrics(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg}, "xml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
	if len(fetcher.scopes) != 0 {
		t.Fatal("fetch must not run for an invalid format")
	}
}

func TestExportMetricsRejectsEmployee(t *testing.T) {
	service := NewService(&fakeFetcher{})
	caller := Caller{UserID: "e1", Role: auth.RoleEmployee}

	_, _, err := service.ExportMetrics(context.Background(), caller, ScopeRequest{}, FormatCSV)
	if !errors.Is(err, ErrExportForbidden) {
		t.Fatalf("expected export forbidden, got %v", err)
	}
}

func TestExportMetricsCSVRoundTrip(t *testing.T) {
	service := NewService(fetcherWithTwoTeams())
	caller := Caller{UserID: "h1", Role: auth.RoleHR}

	payload, contentType, err := service.ExportMetrics(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg}, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if contentType != ContentTypeCSV {
		t.Fatalf("unexpected content type %s", contentType)
	}
	if len(payload) == 0 {
		t.Fatal("expected CSV payload")
	}
}

func TestSummaryReportProducesPDF(t *testing.T) {
	service := NewService(fetcherWithTwoTeams())
	caller := Caller{UserID: "a1", Role: auth.RoleAdmin}

	payload, err := service.SummaryReport(context.Background(), caller, ScopeRequest{Kind: auth.ScopeOrg}, "Acme Performance Summary")
	if err != nil {
		t.Fatalf("summary report failed: %v", err)
	}
	if len(payload) < 4 || string(payload[:4]) != "%PDF" {
		t.Fatal("expected a PDF payload")
	}
}
