package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/internal/utils"
)

const storeHoursKey = "storeHours"

var ErrSettingNotFound = errors.New("setting not found")

type SettingsRepository interface {
	GetStoreHours(ctx context.Context) (*models.StoreHours, error)
	SaveStoreHours(ctx context.Context, hours *models.StoreHours) error
}

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepository{DB: db}
}

func (r *settingsRepository) GetStoreHours(ctx context.Context) (*models.StoreHours, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var raw []byte

	err := r.DB.QueryRowContext(dbCtx, `SELECT value FROM settings WHERE key = $1`, storeHoursKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingNotFound
		}

		return nil, fmt.Errorf("querying store hours: %w", err)
	}

	var hours models.StoreHours
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, fmt.Errorf("decoding store hours: %w", err)
	}

	return &hours, nil
}

func (r *settingsRepository) SaveStoreHours(ctx context.Context, hours *models.StoreHours) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	raw, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("encoding store hours: %w", err)
	}

	query := `INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.DB.ExecContext(dbCtx, query, storeHoursKey, raw); err != nil {
		return fmt.Errorf("saving store hours: %w", err)
	}

	return nil
}
