package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dsfl/fantasy-league/internal/domain/league"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	qb "github.com/dsfl/fantasy-league/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var membershipSelectColumns = []string{
	"team_id",
	"player_id",
	"is_captain",
	"added_date",
	"removed_date",
}

var historySelectColumns = []string{
	"id",
	"team_id",
	"player_id",
	"action",
	"change_date",
	"match_id",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID int64) ([]roster.Membership, error) {
	query, args, err := qb.Select(membershipSelectColumns...).From("team_players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("added_date", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}

	out := make([]roster.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) ListActiveByTeam(ctx context.Context, teamID int64) ([]roster.Membership, error) {
	query, args, err := qb.Select(membershipSelectColumns...).From("team_players").
		Where(
			qb.Eq("team_id", teamID),
			qb.IsNull("removed_date"),
		).
		OrderBy("added_date", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active memberships: %w", err)
	}

	out := make([]roster.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) Get(ctx context.Context, teamID, playerID int64) (roster.Membership, bool, error) {
	query, args, err := qb.Select(membershipSelectColumns...).From("team_players").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return roster.Membership{}, false, fmt.Errorf("build select membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Membership{}, false, nil
		}
		return roster.Membership{}, false, fmt.Errorf("select membership: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func (r *RosterRepository) Insert(ctx context.Context, m roster.Membership) error {
	query, args, err := qb.InsertModel("team_players", membershipInsertModel{
		TeamID:    m.TeamID,
		PlayerID:  m.PlayerID,
		IsCaptain: m.IsCaptain,
		AddedAt:   m.AddedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: membership team=%d player=%d already exists", league.ErrConflict, m.TeamID, m.PlayerID)
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Reopen restores a closed membership to active by clearing removed_date.
// The original added_date and is_captain flag are kept.
func (r *RosterRepository) Reopen(ctx context.Context, teamID, playerID int64) error {
	query, args, err := qb.Update("team_players").
		Set("removed_date", nil).
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reopen membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reopen membership: %w", err)
	}
	return nil
}

func (r *RosterRepository) Close(ctx context.Context, teamID, playerID int64, removedAt time.Time) error {
	query, args, err := qb.Update("team_players").
		Set("removed_date", removedAt.UTC()).
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_id", playerID),
			qb.IsNull("removed_date"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("close membership: %w", err)
	}
	return nil
}

func (r *RosterRepository) DeleteByPlayer(ctx context.Context, playerID int64) error {
	query, args, err := qb.DeleteFrom("team_players").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete memberships by player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete memberships by player: %w", err)
	}
	return nil
}

func (r *RosterRepository) AppendHistory(ctx context.Context, e roster.HistoryEntry) error {
	matchID := sql.NullInt64{}
	if e.MatchID != nil {
		matchID = sql.NullInt64{Int64: *e.MatchID, Valid: true}
	}

	query, args, err := qb.InsertModel("team_player_history", historyInsertModel{
		TeamID:    e.TeamID,
		PlayerID:  e.PlayerID,
		Action:    string(e.Action),
		ChangedAt: e.ChangedAt.UTC(),
		MatchID:   matchID,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert history query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (r *RosterRepository) ListHistoryByTeam(ctx context.Context, teamID int64) ([]roster.HistoryEntry, error) {
	query, args, err := qb.Select(historySelectColumns...).From("team_player_history").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("change_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select history query: %w", err)
	}

	var rows []historyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	out := make([]roster.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := roster.HistoryEntry{
			ID:        row.ID,
			TeamID:    row.TeamID,
			PlayerID:  row.PlayerID,
			Action:    roster.Action(row.Action),
			ChangedAt: row.ChangedAt,
		}
		if row.MatchID.Valid {
			matchID := row.MatchID.Int64
			entry.MatchID = &matchID
		}
		out = append(out, entry)
	}
	return out, nil
}

func membershipFromRow(row membershipTableModel) roster.Membership {
	return roster.Membership{
		TeamID:    row.TeamID,
		PlayerID:  row.PlayerID,
		IsCaptain: row.IsCaptain,
		AddedAt:   row.AddedAt,
		RemovedAt: row.RemovedAt,
	}
}
