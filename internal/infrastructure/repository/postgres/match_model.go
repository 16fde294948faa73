package postgres

import "time"

type matchTableModel struct {
	ID   int64     `db:"id"`
	Name string    `db:"name"`
	Date time.Time `db:"date"`
}

type matchInsertModel struct {
	Name string    `db:"name"`
	Date time.Time `db:"date"`
}
