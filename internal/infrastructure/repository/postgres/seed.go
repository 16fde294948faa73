package postgres

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/dsfl/fantasy-league/internal/domain/player"
)

// BootstrapPlayersFromCSV loads the player catalog from a CSV export with a
// name,position,price,house header. It is a no-op when the catalog already
// has rows, so rerunning migrations never duplicates players.
func BootstrapPlayersFromCSV(ctx context.Context, db *sqlx.DB, path string) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	players, err := readPlayersCSV(path)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range players {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (name, position, price, house)
VALUES (:name, :position, :price, :house)`, map[string]any{
			"name":     p.Name,
			"position": string(p.Position),
			"price":    p.Price,
			"house":    p.House,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func readPlayersCSV(path string) ([]player.Player, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open players csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read players csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[name] = idx
	}
	for _, required := range []string{"name", "position", "price", "house"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("players csv is missing column %q", required)
		}
	}

	var out []player.Player
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read players csv row: %w", err)
		}

		price, err := strconv.ParseFloat(record[columns["price"]], 64)
		if err != nil {
			return nil, fmt.Errorf("parse price for player %s: %w", record[columns["name"]], err)
		}

		p := player.Player{
			Name:     record[columns["name"]],
			Position: player.Position(record[columns["position"]]),
			Price:    price,
			House:    record[columns["house"]],
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("validate seed player %s: %w", p.Name, err)
		}
		out = append(out, p)
	}

	return out, nil
}
