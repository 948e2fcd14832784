package analytics

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/auth"
)

// Store is the pgx-backed Fetcher. It only reads; all rollups happen in
// memory after the fetch.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FetchScopedRecords(ctx context.Context, scope ResolvedScope) ([]TeamRecords, error) {
	records, teamIndex, err := s.fetchTeams(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	teamIDs := make([]string, 0, len(records))
	for _, record := range records {
		teamIDs = append(teamIDs, record.TeamID)
	}

	if err := s.fetchObjectives(ctx, scope, teamIDs, records, teamIndex); err != nil {
		return nil, err
	}
	if err := s.fetchFeedback(ctx, scope, teamIDs, records, teamIndex); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) fetchTeams(ctx context.Context, scope ResolvedScope) ([]TeamRecords, map[string]int, error) {
	query := `
    SELECT t.id, t.name, d.name,
           (SELECT COUNT(1) FROM users u WHERE u.team_id = t.id)
    FROM teams t
    JOIN departments d ON t.department_id = d.id
  `
	var args []any

	switch scope.Kind {
	case auth.ScopeDepartment:
		query += " WHERE t.department_id = $1"
		args = append(args, scope.DepartmentID)
	case auth.ScopeTeam:
		query += " WHERE t.id = ANY($1)"
		args = append(args, scope.TeamIDs)
	case auth.ScopeSelf:
		query += " WHERE t.id = (SELECT team_id FROM users WHERE id = $1)"
		args = append(args, scope.UserID)
	}
	query += " ORDER BY t.name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var records []TeamRecords
	teamIndex := map[string]int{}
	for rows.Next() {
		var record TeamRecords
		if err := rows.Scan(&record.TeamID, &record.TeamName, &record.DepartmentName, &record.MemberCount); err != nil {
			return nil, nil, err
		}
		teamIndex[record.TeamID] = len(records)
		records = append(records, record)
	}
	return records, teamIndex, rows.Err()
}

func (s *Store) fetchObjectives(ctx context.Context, scope ResolvedScope, teamIDs []string, records []TeamRecords, teamIndex map[string]int) error {
	query := `
    SELECT o.id, o.owner_id, o.title, u.team_id
    FROM objectives o
    JOIN users u ON o.owner_id = u.id
    WHERE u.team_id = ANY($1)
  `
	args := []any{teamIDs}
	if scope.Kind == auth.ScopeSelf {
		query += " AND o.owner_id = $2"
		args = append(args, scope.UserID)
	}
	query += " ORDER BY o.created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	objectiveTeam := map[string]string{}
	var objectiveIDs []string
	objectives := map[string]*Objective{}
	for rows.Next() {
		var objective Objective
		var teamID string
		if err := rows.Scan(&objective.ID, &objective.OwnerID, &objective.Title, &teamID); err != nil {
			return err
		}
		objectiveTeam[objective.ID] = teamID
		objectiveIDs = append(objectiveIDs, objective.ID)
		objectives[objective.ID] = &objective
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(objectiveIDs) > 0 {
		krRows, err := s.DB.Query(ctx, `
      SELECT objective_id, id, title, score
      FROM key_results
      WHERE objective_id = ANY($1)
      ORDER BY objective_id, position
    `, objectiveIDs)
		if err != nil {
			return err
		}
		defer krRows.Close()

		for krRows.Next() {
			var objectiveID string
			var kr KeyResult
			if err := krRows.Scan(&objectiveID, &kr.ID, &kr.Title, &kr.Score); err != nil {
				return err
			}
			if objective, ok := objectives[objectiveID]; ok {
				objective.KeyResults = append(objective.KeyResults, kr)
			}
		}
		if err := krRows.Err(); err != nil {
			return err
		}
	}

	for _, id := range objectiveIDs {
		if idx, ok := teamIndex[objectiveTeam[id]]; ok {
			records[idx].Objectives = append(records[idx].Objectives, *objectives[id])
		}
	}
	return nil
}

// feedbackDefaults fills absent optional fields at the read boundary so
// aggregation never sees missing values: a NULL rating counts as 0 and a NULL
// or empty sentiment as neutral.
func feedbackDefaults(rating *float64, sentiment *string) (float64, string) {
	r := DefaultRating
	if rating != nil {
		r = *rating
	}
	s := DefaultSentiment
	if sentiment != nil && *sentiment != "" {
		s = *sentiment
	}
	return r, s
}

func (s *Store) fetchFeedback(ctx context.Context, scope ResolvedScope, teamIDs []string, records []TeamRecords, teamIndex map[string]int) error {
	query := `
    SELECT f.id, f.giver_id, f.receiver_id, f.rating, f.sentiment, f.created_at, u.team_id
    FROM feedback f
    JOIN users u ON f.receiver_id = u.id
    WHERE u.team_id = ANY($1)
  `
	args := []any{teamIDs}
	if scope.Kind == auth.ScopeSelf {
		query += " AND f.receiver_id = $" + strconv.Itoa(len(args)+1)
		args = append(args, scope.UserID)
	}
	if !scope.From.IsZero() {
		query += " AND f.created_at >= $" + strconv.Itoa(len(args)+1)
		args = append(args, scope.From)
	}
	if !scope.To.IsZero() {
		query += " AND f.created_at <= $" + strconv.Itoa(len(args)+1)
		args = append(args, scope.To)
	}
	query += " ORDER BY f.created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Feedback
		var rating *float64
		var sentiment *string
		var teamID string
		if err := rows.Scan(&item.ID, &item.GiverID, &item.ReceiverID, &rating, &sentiment, &item.CreatedAt, &teamID); err != nil {
			return err
		}

		item.Rating, item.Sentiment = feedbackDefaults(rating, sentiment)

		if idx, ok := teamIndex[teamID]; ok {
			records[idx].Feedback = append(records[idx].Feedback, item)
		}
	}
	return rows.Err()
}
