package analytics

import (
	"context"
	"fmt"
	"sort"
)

// Fetcher is the data-source collaborator. It may block on I/O; everything
// after it is an in-memory pass.
type Fetcher interface {
	FetchScopedRecords(ctx context.Context, scope ResolvedScope) ([]TeamRecords, error)
}

type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Dashboard resolves the caller's scope, fetches the raw records once, and
// assembles per-team metrics plus the monthly trend series over the full
// in-scope feedback set. Fetch failures surface as DataSourceError unchanged.
func (s *Service) Dashboard(ctx context.Context, caller Caller, req ScopeRequest) (DashboardResponse, error) {
	scope, err := ResolveScope(caller, req)
	if err != nil {
		return DashboardResponse{}, err
	}
	return s.assemble(ctx, scope)
}

// ExportMetrics serializes the scoped team metrics. The format is validated
// before any fetch happens.
func (s *Service) ExportMetrics(ctx context.Context, caller Caller, req ScopeRequest, format string) ([]byte, string, error) {
	scope, err := ResolveExportScope(caller, req)
	if err != nil {
		return nil, "", err
	}
	switch format {
	case FormatCSV, FormatJSON:
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	dashboard, err := s.assemble(ctx, scope)
	if err != nil {
		return nil, "", err
	}
	return Export(dashboard.Teams, format)
}

// SummaryReport renders the scoped dashboard as a PDF. It shares the export
// capability check because it leaves the screen.
func (s *Service) SummaryReport(ctx context.Context, caller Caller, req ScopeRequest, title string) ([]byte, error) {
	scope, err := ResolveExportScope(caller, req)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.assemble(ctx, scope)
	if err != nil {
		return nil, err
	}
	return SummaryPDF(title, dashboard.Teams, dashboard.Trends)
}

func (s *Service) assemble(ctx context.Context, scope ResolvedScope) (DashboardResponse, error) {
	records, err := s.fetcher.FetchScopedRecords(ctx, scope)
	if err != nil {
		return DashboardResponse{}, &DataSourceError{Err: err}
	}

	teams := make([]TeamMetrics, 0, len(records))
	var allFeedback []Feedback
	for _, record := range records {
		metrics := Aggregate(record.Objectives, record.Feedback)
		metrics.TeamID = record.TeamID
		metrics.TeamName = record.TeamName
		metrics.DepartmentName = record.DepartmentName
		metrics.MemberCount = record.MemberCount
		teams = append(teams, metrics)
		allFeedback = append(allFeedback, record.Feedback...)
	}

	// Stable presentation order; aggregation itself is order-insensitive.
	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamName < teams[j].TeamName })

	return DashboardResponse{
		Teams:  teams,
		Trends: BuildTrends(allFeedback),
		Scope:  scope,
	}, nil
}
