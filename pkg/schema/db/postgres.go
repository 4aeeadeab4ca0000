package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/movie-search-api/pkg/schema/config"
)

// ErrNotConfigured is returned by Ping before InitPostgres has succeeded
var ErrNotConfigured = errors.New("PostgreSQL is not configured")

var (
	pgDB *sqlx.DB
	pgMu sync.RWMutex
)

// InitPostgres opens the shared connection pool for the movies table. Calling
// it again after success is a no-op.
func InitPostgres(ctx context.Context) error {
	pgMu.Lock()
	defer pgMu.Unlock()
	if pgDB != nil {
		return nil
	}

	cfg := config.GetConfig()
	if cfg.PostgresURI == "" {
		return fmt.Errorf("POSTGRES_URI is required")
	}

	conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.PostgresURI)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	conn.SetMaxOpenConns(cfg.PostgresMaxConns)
	conn.SetMaxIdleConns(cfg.PostgresMaxConns)
	conn.SetConnMaxLifetime(5 * time.Minute)
	conn.SetConnMaxIdleTime(1 * time.Minute)

	pgDB = conn
	return nil
}

// GetPostgres returns the shared pool, or nil before InitPostgres
func GetPostgres() *sqlx.DB {
	pgMu.RLock()
	defer pgMu.RUnlock()
	return pgDB
}

// Ping checks connectivity of the shared pool
func Ping(ctx context.Context) error {
	conn := GetPostgres()
	if conn == nil {
		return ErrNotConfigured
	}
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping PostgreSQL: %w", err)
	}
	return nil
}

// ClosePostgres closes the shared pool so a later InitPostgres reconnects
func ClosePostgres() error {
	pgMu.Lock()
	defer pgMu.Unlock()
	if pgDB == nil {
		return nil
	}
	err := pgDB.Close()
	pgDB = nil
	return err
}
