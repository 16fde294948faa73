package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dsfl/fantasy-league/internal/domain/performance"
	qb "github.com/dsfl/fantasy-league/internal/platform/querybuilder"
)

type PerformanceRepository struct {
	db *sqlx.DB
}

var performanceSelectColumns = []string{
	"id",
	"player_id",
	"match_id",
	"goals",
	"assists",
	"clean_sheet",
	"goals_conceded",
	"yellow_cards",
	"red_cards",
	"minutes_played",
	"bonus_points",
	"points",
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) GetByPlayerMatch(ctx context.Context, playerID, matchID int64) (performance.Performance, bool, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("match_id", matchID),
		).
		ToSQL()
	if err != nil {
		return performance.Performance{}, false, fmt.Errorf("build select performance query: %w", err)
	}

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return performance.Performance{}, false, nil
		}
		return performance.Performance{}, false, fmt.Errorf("select performance: %w", err)
	}
	return performanceFromRow(row), true, nil
}

func (r *PerformanceRepository) ListByMatch(ctx context.Context, matchID int64) ([]performance.Performance, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select performances by match query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select performances by match: %w", err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performanceFromRow(row))
	}
	return out, nil
}

func (r *PerformanceRepository) ListByPlayer(ctx context.Context, playerID int64) ([]performance.Performance, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select performances by player query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select performances by player: %w", err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performanceFromRow(row))
	}
	return out, nil
}

// Upsert keeps the (player_id, match_id) pair unique: resubmitting a stat
// line replaces the stored stats and points in place.
func (r *PerformanceRepository) Upsert(ctx context.Context, p performance.Performance) (performance.Performance, error) {
	query, args, err := qb.InsertModel("player_performances", performanceInsertModel{
		PlayerID:      p.PlayerID,
		MatchID:       p.MatchID,
		Goals:         p.Goals,
		Assists:       p.Assists,
		CleanSheet:    p.CleanSheet,
		GoalsConceded: p.GoalsConceded,
		YellowCards:   p.YellowCards,
		RedCards:      p.RedCards,
		MinutesPlayed: p.MinutesPlayed,
		BonusPoints:   p.BonusPoints,
		Points:        p.Points,
	}, `ON CONFLICT (player_id, match_id)
DO UPDATE SET
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    clean_sheet = EXCLUDED.clean_sheet,
    goals_conceded = EXCLUDED.goals_conceded,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    minutes_played = EXCLUDED.minutes_played,
    bonus_points = EXCLUDED.bonus_points,
    points = EXCLUDED.points
RETURNING id`)
	if err != nil {
		return performance.Performance{}, fmt.Errorf("build upsert performance query: %w", err)
	}

	if err := r.db.GetContext(ctx, &p.ID, query, args...); err != nil {
		return performance.Performance{}, fmt.Errorf("upsert performance: %w", err)
	}
	return p, nil
}

func (r *PerformanceRepository) DeleteByMatch(ctx context.Context, matchID int64) error {
	query, args, err := qb.DeleteFrom("player_performances").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete performances by match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete performances by match: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) DeleteByPlayer(ctx context.Context, playerID int64) error {
	query, args, err := qb.DeleteFrom("player_performances").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete performances by player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete performances by player: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM player_performances"); err != nil {
		return fmt.Errorf("delete all performances: %w", err)
	}
	return nil
}

func performanceFromRow(row performanceTableModel) performance.Performance {
	return performance.Performance{
		ID:            row.ID,
		PlayerID:      row.PlayerID,
		MatchID:       row.MatchID,
		Goals:         row.Goals,
		Assists:       row.Assists,
		CleanSheet:    row.CleanSheet,
		GoalsConceded: row.GoalsConceded,
		YellowCards:   row.YellowCards,
		RedCards:      row.RedCards,
		MinutesPlayed: row.MinutesPlayed,
		BonusPoints:   row.BonusPoints,
		Points:        row.Points,
	}
}
