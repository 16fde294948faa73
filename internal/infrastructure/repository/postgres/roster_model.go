package postgres

import (
	"database/sql"
	"time"
)

type membershipTableModel struct {
	TeamID    int64      `db:"team_id"`
	PlayerID  int64      `db:"player_id"`
	IsCaptain bool       `db:"is_captain"`
	AddedAt   time.Time  `db:"added_date"`
	RemovedAt *time.Time `db:"removed_date"`
}

type membershipInsertModel struct {
	TeamID    int64     `db:"team_id"`
	PlayerID  int64     `db:"player_id"`
	IsCaptain bool      `db:"is_captain"`
	AddedAt   time.Time `db:"added_date"`
}

type historyTableModel struct {
	ID        int64         `db:"id"`
	TeamID    int64         `db:"team_id"`
	PlayerID  int64         `db:"player_id"`
	Action    string        `db:"action"`
	ChangedAt time.Time     `db:"change_date"`
	MatchID   sql.NullInt64 `db:"match_id"`
}

type historyInsertModel struct {
	TeamID    int64         `db:"team_id"`
	PlayerID  int64         `db:"player_id"`
	Action    string        `db:"action"`
	ChangedAt time.Time     `db:"change_date"`
	MatchID   sql.NullInt64 `db:"match_id"`
}
