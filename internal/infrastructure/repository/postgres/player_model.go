package postgres

type playerTableModel struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Position string  `db:"position"`
	Price    float64 `db:"price"`
	House    string  `db:"house"`
}

type playerInsertModel struct {
	Name     string  `db:"name"`
	Position string  `db:"position"`
	Price    float64 `db:"price"`
	House    string  `db:"house"`
}
