package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Observation struct {
	ID          int64     `db:"id"`
	City        string    `db:"city"`
	Temperature float64   `db:"temperature"`
	Description string    `db:"description"`
	Timestamp   time.Time `db:"timestamp"`
}

// WeatherRepository is the persistence surface for weather observations.
// Rows for a city are ordered by id ascending, so the first row is the
// earliest-inserted one.
type WeatherRepository interface {
	Insert(ctx context.Context, city string, temperature float64, description string) error
	ListByCity(ctx context.Context, city string) ([]Observation, error)
	ExistsByCity(ctx context.Context, city string) (bool, error)
	UpdateByCity(ctx context.Context, city string, temperature float64, description string) error
	DeleteByCity(ctx context.Context, city string) error
}

type pgRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewWeatherRepository(db *sqlx.DB, logger *zap.Logger) WeatherRepository {
	return &pgRepo{db: db, logger: logger}
}

// Insert stores one new observation. Existing rows for the same city are
// left alone; duplicates are permitted.
func (r *pgRepo) Insert(ctx context.Context, city string, temperature float64, description string) error {
	const q = `
        INSERT INTO weather (city, temperature, description)
        VALUES ($1, $2, $3);
    `
	if _, err := r.db.ExecContext(ctx, q, city, temperature, description); err != nil {
		r.logger.Error("failed to insert observation",
			zap.String("city", city),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("observation inserted",
		zap.String("city", city),
		zap.Float64("temperature", temperature),
		zap.String("description", description),
	)
	return nil
}

func (r *pgRepo) ListByCity(ctx context.Context, city string) ([]Observation, error) {
	const q = `
        SELECT id, city, temperature, description, timestamp
        FROM weather
        WHERE city = $1
        ORDER BY id;
    `
	obs := []Observation{}
	if err := r.db.SelectContext(ctx, &obs, q, city); err != nil {
		r.logger.Error("failed to list observations", zap.String("city", city), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("listed observations", zap.String("city", city), zap.Int("count", len(obs)))
	return obs, nil
}

func (r *pgRepo) ExistsByCity(ctx context.Context, city string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM weather WHERE city = $1);`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, city); err != nil {
		r.logger.Error("failed to check observation existence", zap.String("city", city), zap.Error(err))
		return false, err
	}
	return exists, nil
}

// UpdateByCity rewrites temperature, description and timestamp on every row
// of the city in one conditional statement. Returns sql.ErrNoRows when the
// city has no rows.
func (r *pgRepo) UpdateByCity(ctx context.Context, city string, temperature float64, description string) error {
	const q = `
        UPDATE weather
        SET temperature = $1,
            description = $2,
            timestamp   = now()
        WHERE city = $3;
    `
	res, err := r.db.ExecContext(ctx, q, temperature, description, city)
	if err != nil {
		r.logger.Error("failed to update observations", zap.String("city", city), zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected on update", zap.Error(err))
		return err
	}
	if n == 0 {
		r.logger.Warn("no observations to update", zap.String("city", city))
		return sql.ErrNoRows
	}
	r.logger.Info("observations updated", zap.String("city", city), zap.Int64("rows", n))
	return nil
}

// DeleteByCity removes every row of the city in one conditional statement.
// Returns sql.ErrNoRows when the city has no rows.
func (r *pgRepo) DeleteByCity(ctx context.Context, city string) error {
	const q = `DELETE FROM weather WHERE city = $1;`
	res, err := r.db.ExecContext(ctx, q, city)
	if err != nil {
		r.logger.Error("failed to delete observations", zap.String("city", city), zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected on delete", zap.Error(err))
		return err
	}
	if n == 0 {
		r.logger.Warn("no observations to delete", zap.String("city", city))
		return sql.ErrNoRows
	}
	r.logger.Info("observations deleted", zap.String("city", city), zap.Int64("rows", n))
	return nil
}
