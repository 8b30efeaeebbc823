//go:build integration

package integration

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"shophub/internal/infra/db"
	"shophub/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type containerInfo struct {
	Host string
	Port nat.Port
}

// setupTestPool starts the shared PostgreSQL container, creates a database
// unique to this test and applies the schema. The pool is closed and the
// database dropped on cleanup.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	info := startPostgres(t)

	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			wait := time.Duration(500+attempts*500) * time.Millisecond
			wait = min(wait, 3*time.Second)
			time.Sleep(wait)
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
		slog.Warn("retrying test database creation", "attempt", attempts+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "test database creation failed")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("test database drop failed", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}

	pool, cleanup, err := db.Connect(dbConfig)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(cleanup)

	require.NoError(t, applyMigrations(t, pool), "schema migration failed")

	return pool
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	file := "migrations/001_initial_schema.sql"
	candidates := []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
		filepath.Join("..", "..", "..", file),
	}

	var (
		sqlContent []byte
		readErr    error
	)
	for _, cand := range candidates {
		sqlContent, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, readErr)
	}

	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", file, err)
	}

	return nil
}

func startPostgres(t *testing.T) containerInfo {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "integration-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		postgresTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "postgres container start failed")

		t.Cleanup(func() {
			if postgresTestContainer != nil {
				termCtx, termCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer termCancel()
				if err := postgresTestContainer.Terminate(termCtx); err != nil {
					slog.Warn("postgres container terminate failed", "error", err.Error())
				}
			}
		})
	})

	ctx := context.Background()
	mappedPort, err := postgresTestContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "mapped port lookup failed")
	host, err := postgresTestContainer.Host(ctx)
	require.NoError(t, err, "container host lookup failed")

	return containerInfo{Host: host, Port: mappedPort}
}

// ------------------------------------------------------------
// Seed helpers
// ------------------------------------------------------------

func seedAccount(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO accounts (email, password_hash) VALUES ($1, $2) RETURNING id`,
		uuid.New().String()+"@example.com", "x",
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedStore(t *testing.T, pool *pgxpool.Pool, accountID uuid.UUID) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO stores (account_id, name, cep, delivery_fee_cents)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		accountID, "Test Store", "01304001", 990,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, storeID uuid.UUID, priceCents int64, stock int32) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (store_id, name, price_cents, stock)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		storeID, "Test Product", priceCents, stock,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func productStock(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID) int32 {
	t.Helper()
	var stock int32
	err := pool.QueryRow(context.Background(),
		`SELECT stock FROM products WHERE id = $1`, productID,
	).Scan(&stock)
	require.NoError(t, err)
	return stock
}
