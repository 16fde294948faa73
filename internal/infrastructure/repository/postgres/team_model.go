package postgres

import "database/sql"

type teamTableModel struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	Name        string         `db:"name"`
	Formation   sql.NullString `db:"formation"`
	TotalPoints int            `db:"total_points"`
}

type teamInsertModel struct {
	UserID    int64          `db:"user_id"`
	Name      string         `db:"name"`
	Formation sql.NullString `db:"formation"`
}
