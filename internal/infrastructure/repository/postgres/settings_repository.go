package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dsfl/fantasy-league/internal/domain/settings"
	qb "github.com/dsfl/fantasy-league/internal/platform/querybuilder"
)

type SettingsRepository struct {
	db *sqlx.DB
}

type settingTableModel struct {
	Key         string    `db:"setting_key"`
	Value       string    `db:"setting_value"`
	Description string    `db:"description"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (settings.Setting, bool, error) {
	query, args, err := qb.Select("setting_key", "setting_value", "COALESCE(description, '') AS description", "updated_at").
		From("app_settings").
		Where(qb.Eq("setting_key", key)).
		ToSQL()
	if err != nil {
		return settings.Setting{}, false, fmt.Errorf("build select setting query: %w", err)
	}

	var row settingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settings.Setting{}, false, nil
		}
		return settings.Setting{}, false, fmt.Errorf("select setting: %w", err)
	}

	return settings.Setting{
		Key:         row.Key,
		Value:       row.Value,
		Description: row.Description,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func (r *SettingsRepository) Set(ctx context.Context, s settings.Setting) error {
	query, args, err := qb.InsertInto("app_settings").
		Columns("setting_key", "setting_value", "description", "updated_at").
		Values(s.Key, s.Value, s.Description, s.UpdatedAt.UTC()).
		Suffix(`ON CONFLICT (setting_key)
DO UPDATE SET
    setting_value = EXCLUDED.setting_value,
    description = EXCLUDED.description,
    updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert setting query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
