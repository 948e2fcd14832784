package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/auth"
	"perfhub/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" {
		if err := ensureUser(ctx, pool, cfg.SeedAdminEmail, "Admin", auth.RoleAdmin, cfg.SeedAdminPassword, "", ""); err != nil {
			return err
		}
	}
	if cfg.SeedDemoData {
		return seedDemoData(ctx, pool)
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, name, role, password, teamID, departmentID string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	var existing string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existing)
	missing, err := userMissing(err)
	if err != nil {
		return err
	}
	if !missing {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, name, password_hash, role, team_id, department_id)
    VALUES ($1,$2,$3,$4,NULLIF($5,'')::uuid,NULLIF($6,'')::uuid)
  `, email, name, hash, role, teamID, departmentID)
	return err
}

// userMissing classifies the existence-lookup result: no rows means the user
// should be created, anything else is a real query failure.
func userMissing(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	return false, err
}

// seedDemoData creates a small org with enough objectives and feedback to
// light up the dashboard in development environments.
func seedDemoData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var engineeringID, salesID string
	if err := pool.QueryRow(ctx, "INSERT INTO departments (name) VALUES ('Engineering') RETURNING id").Scan(&engineeringID); err != nil {
		return err
	}
	if err := pool.QueryRow(ctx, "INSERT INTO departments (name) VALUES ('Sales') RETURNING id").Scan(&salesID); err != nil {
		return err
	}

	var platformTeamID, fieldTeamID string
	if err := pool.QueryRow(ctx, "INSERT INTO teams (name, department_id) VALUES ('Platform', $1) RETURNING id", engineeringID).Scan(&platformTeamID); err != nil {
		return err
	}
	if err := pool.QueryRow(ctx, "INSERT INTO teams (name, department_id) VALUES ('Field Sales', $1) RETURNING id", salesID).Scan(&fieldTeamID); err != nil {
		return err
	}

	hash, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	insertUser := func(email, name, role, teamID, departmentID string) (string, error) {
		var id string
		err := pool.QueryRow(ctx, `
      INSERT INTO users (email, name, password_hash, role, team_id, department_id)
      VALUES ($1,$2,$3,$4,$5,$6)
      RETURNING id
    `, email, name, hash, role, teamID, departmentID).Scan(&id)
		return id, err
	}

	managerID, err := insertUser("mira@example.com", "Mira Chen", auth.RoleManager, platformTeamID, engineeringID)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "UPDATE teams SET manager_id = $1 WHERE id = $2", managerID, platformTeamID); err != nil {
		return err
	}

	devID, err := insertUser("jonas@example.com", "Jonas Berg", auth.RoleEmployee, platformTeamID, engineeringID)
	if err != nil {
		return err
	}
	repID, err := insertUser("ana@example.com", "Ana Lopes", auth.RoleEmployee, fieldTeamID, salesID)
	if err != nil {
		return err
	}

	insertObjective := func(ownerID, title string, scores []float64) error {
		var objectiveID string
		if err := pool.QueryRow(ctx, "INSERT INTO objectives (owner_id, title) VALUES ($1,$2) RETURNING id", ownerID, title).Scan(&objectiveID); err != nil {
			return err
		}
		for i, score := range scores {
			if _, err := pool.Exec(ctx, "INSERT INTO key_results (objective_id, title, score, position) VALUES ($1,$2,$3,$4)",
				objectiveID, "", score, i); err != nil {
				return err
			}
		}
		return nil
	}

	if err := insertObjective(devID, "Ship workflow engine", []float64{8, 6}); err != nil {
		return err
	}
	if err := insertObjective(devID, "Cut build times", []float64{9, 7}); err != nil {
		return err
	}
	if err := insertObjective(repID, "Grow pipeline", []float64{7}); err != nil {
		return err
	}

	insertFeedback := func(giverID, receiverID string, rating float64, sentiment string, createdAt time.Time) error {
		_, err := pool.Exec(ctx, `
      INSERT INTO feedback (giver_id, receiver_id, rating, sentiment, created_at)
      VALUES ($1,$2,$3,NULLIF($4,''),$5)
    `, giverID, receiverID, rating, sentiment, createdAt)
		return err
	}

	now := time.Now().UTC()
	if err := insertFeedback(managerID, devID, 9, "positive", now.AddDate(0, -1, 0)); err != nil {
		return err
	}
	if err := insertFeedback(repID, devID, 7, "", now.AddDate(0, -1, 2)); err != nil {
		return err
	}
	if err := insertFeedback(devID, repID, 8, "positive", now); err != nil {
		return err
	}
	// One unrated item; it counts as rating 0 in the averages.
	if _, err := pool.Exec(ctx, `
    INSERT INTO feedback (giver_id, receiver_id, rating, sentiment, created_at)
    VALUES ($1,$2,NULL,'neutral',$3)
  `, managerID, repID, now.AddDate(0, 0, -3)); err != nil {
		return err
	}
	return nil
}
