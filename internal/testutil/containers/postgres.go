//go:build integration

package containers

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

// Postgres is a migrated PostgreSQL 16 container shared by the tests of one
// package.
type Postgres struct {
	Container *tcpostgres.PostgresContainer
	ConnStr   string
	Pool      *pgxpool.Pool
}

// StartPostgres starts the container and applies every migration in the
// repository's migrations directory. Call it from TestMain and Terminate the
// result once m.Run returns.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clinica_test"),
		tcpostgres.WithUsername("clinica"),
		tcpostgres.WithPassword("clinica"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	pool, err := db.NewPool(ctx, connStr, 10, 1)
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}

	if _, err := db.NewMigrator(pool, MigrationsDir()).Up(ctx); err != nil {
		pool.Close()
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Postgres{Container: ctr, ConnStr: connStr, Pool: pool}, nil
}

// Terminate closes the pool and removes the container.
func (p *Postgres) Terminate() error {
	p.Pool.Close()
	return testcontainers.TerminateContainer(p.Container)
}

// Reset empties every clinic table and restarts the id sequences.
func (p *Postgres) Reset(t *testing.T) {
	t.Helper()
	_, err := p.Pool.Exec(context.Background(),
		`TRUNCATE appointments, patients, doctors, secretaries RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("reset tables: %v", err)
	}
}

// MigrationsDir locates the migrations directory relative to this file.
func MigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	// internal/testutil/containers -> module root
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations")
}
