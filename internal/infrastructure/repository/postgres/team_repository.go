package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dsfl/fantasy-league/internal/domain/league"
	"github.com/dsfl/fantasy-league/internal/domain/team"
	qb "github.com/dsfl/fantasy-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"user_id",
	"name",
	"formation",
	"total_points",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetByUserID(ctx context.Context, userID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by user query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by user: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	formation := sql.NullString{String: t.Formation, Valid: t.Formation != ""}
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		UserID:    t.UserID,
		Name:      t.Name,
		Formation: formation,
	}, "RETURNING id")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	if err := r.db.GetContext(ctx, &t.ID, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.Team{}, fmt.Errorf("%w: user %d already has a team", league.ErrConflict, t.UserID)
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return t, nil
}

// ReplaceTotalPoints writes every team's total within one transaction so a
// failed recompute never leaves a partial mix of old and new totals.
func (r *TeamRepository) ReplaceTotalPoints(ctx context.Context, totals map[int64]int) error {
	if len(totals) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin total points tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for teamID, points := range totals {
		query, args, err := qb.Update("teams").
			Set("total_points", points).
			Where(qb.Eq("id", teamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update total points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update total points team=%d: %w", teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit total points tx: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Formation:   row.Formation.String,
		TotalPoints: row.TotalPoints,
	}
}
