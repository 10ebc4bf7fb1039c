package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(time.Minute * 5)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(10)
	return db, db.PingContext(context.Background())
}

// EnsureSchema creates the weather table when it does not exist yet.
// Rows are keyed by a server-assigned sequential id; duplicates per city
// are permitted.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	const q = `
        CREATE TABLE IF NOT EXISTS weather (
            id          SERIAL PRIMARY KEY,
            city        TEXT NOT NULL,
            temperature DOUBLE PRECISION NOT NULL,
            description TEXT NOT NULL,
            timestamp   TIMESTAMPTZ NOT NULL DEFAULT now()
        );
    `
	_, err := db.ExecContext(ctx, q)
	return err
}
