// Package pgtest поднимает Postgres для тестов хранилищ.
package pgtest

import (
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"testing"

	_ "github.com/lib/pq" // register database driver
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/dialects/postgresql"

	"github.com/gebv/bcpay/schema"
)

// PG_TEST_CONN указывает на уже запущенную базу, контейнер тогда не нужен.
const envConn = "PG_TEST_CONN"

var (
	once     sync.Once
	db       *reform.DB
	startErr error
)

// DB returns a shared connection with the bcpay schema applied.
// The test is skipped when neither PG_TEST_CONN nor docker is available.
func DB(t *testing.T) *reform.DB {
	t.Helper()
	if os.Getenv(envConn) == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}
	once.Do(func() {
		db, startErr = start(context.Background())
	})
	if startErr != nil {
		t.Fatalf("pgtest: %+v", startErr)
	}
	return db
}

// Reset очищает таблицы схемы, справочники не трогает.
func Reset(t *testing.T, db *reform.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE bcpay.invoice_references, bcpay.payment_accounts, bcpay.http_requests RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("pgtest: reset: %v", err)
	}
}

func start(ctx context.Context) (*reform.DB, error) {
	dsn := os.Getenv(envConn)
	if dsn == "" {
		// контейнер удалит reaper testcontainers после завершения процесса
		c, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("bcpay"),
			postgres.WithUsername("bcpay"),
			postgres.WithPassword("bcpay"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			return nil, errors.Wrap(err, "Failed start postgres container")
		}
		dsn, err = c.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = c.Terminate(ctx)
			return nil, errors.Wrap(err, "Failed get connection string")
		}
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "Failed open postgres")
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(5)
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "Failed ping postgres")
	}
	if err = schema.Apply(ctx, sqlDB); err != nil {
		return nil, err
	}
	return reform.NewDB(sqlDB, postgresql.Dialect, reform.NewPrintfLogger(log.Printf)), nil
}
