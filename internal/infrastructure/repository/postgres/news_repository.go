package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dsfl/fantasy-league/internal/domain/news"
	qb "github.com/dsfl/fantasy-league/internal/platform/querybuilder"
)

type NewsRepository struct {
	db *sqlx.DB
}

type newsTableModel struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) GetLatest(ctx context.Context) (news.Content, bool, error) {
	query, args, err := qb.Select("id", "content", "updated_at").
		From("news_content").
		OrderBy("updated_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return news.Content{}, false, fmt.Errorf("build select news query: %w", err)
	}

	var row newsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return news.Content{}, false, nil
		}
		return news.Content{}, false, fmt.Errorf("select news: %w", err)
	}

	return news.Content{ID: row.ID, Body: row.Content, UpdatedAt: row.UpdatedAt}, true, nil
}

// SetLatest replaces the single news row, creating it on first write.
func (r *NewsRepository) SetLatest(ctx context.Context, body string) (news.Content, error) {
	now := time.Now().UTC()

	existing, exists, err := r.GetLatest(ctx)
	if err != nil {
		return news.Content{}, err
	}

	if exists {
		query, args, err := qb.Update("news_content").
			Set("content", body).
			Set("updated_at", now).
			Where(qb.Eq("id", existing.ID)).
			ToSQL()
		if err != nil {
			return news.Content{}, fmt.Errorf("build update news query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return news.Content{}, fmt.Errorf("update news: %w", err)
		}
		return news.Content{ID: existing.ID, Body: body, UpdatedAt: now}, nil
	}

	query, args, err := qb.InsertInto("news_content").
		Columns("content", "updated_at").
		Values(body, now).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return news.Content{}, fmt.Errorf("build insert news query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return news.Content{}, fmt.Errorf("insert news: %w", err)
	}
	return news.Content{ID: id, Body: body, UpdatedAt: now}, nil
}
