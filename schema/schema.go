// Package schema содержит схему базы данных bcpay.
package schema

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed schema.sql
var SQL string

// Apply создает недостающие таблицы, повторный вызов безопасен.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, SQL); err != nil {
		return errors.Wrap(err, "Failed apply schema")
	}
	return nil
}
