package database

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreateScratchDatabase creates a throwaway database and returns a pool
// connected to it. The database name is available via DatabaseName.
func CreateScratchDatabase(ctx context.Context, adminPool *Pool) (*Pool, error) {
	timestamp := time.Now().Format("20060102_150405")
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random suffix: %w", err)
	}
	dbName := fmt.Sprintf("scankit_%s_%s", timestamp, hex.EncodeToString(randomBytes))

	_, err := adminPool.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize())
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch database: %w", err)
	}

	// Keep all original options (sslmode, etc.)
	config := adminPool.Pool.Config()
	config.ConnConfig.Database = dbName

	scratch, err := newPool(ctx, adminPool.config, config)
	if err != nil {
		_, _ = adminPool.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize())
		return nil, fmt.Errorf("failed to connect to scratch database: %w", err)
	}
	return scratch, nil
}

// DropScratchDatabase closes the scratch pool and drops its database.
func DropScratchDatabase(ctx context.Context, adminPool, scratch *Pool) error {
	if scratch == nil {
		return nil
	}
	name := scratch.DatabaseName()
	scratch.Close()
	_, err := adminPool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", pgx.Identifier{name}.Sanitize()))
	return err
}

// DatabaseName returns the database the pool is connected to.
func (p *Pool) DatabaseName() string {
	return p.Pool.Config().ConnConfig.Database
}
