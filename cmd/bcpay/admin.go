package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/dialects/postgresql"

	"github.com/gebv/bcpay/interceptors/auth"
	"github.com/gebv/bcpay/schema"
	"github.com/gebv/bcpay/services/codes"
)

func openDB(ctx context.Context, g *globalFlags) (*sql.DB, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	if cfg.PGConn == "" {
		return nil, errors.New("PG_CONN is required")
	}
	sqlDB, err := sql.Open("postgres", cfg.PGConn)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to PostgreSQL")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "Failed to connect ping PostgreSQL")
	}
	return sqlDB, nil
}

func migrateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the bcpay schema and seed the code tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := openDB(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			if err := schema.Apply(cmd.Context(), sqlDB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema applied.")
			return nil
		},
	}
}

func tokenCmd(g *globalFlags) *cobra.Command {
	var (
		roles []string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token [subject]",
		Short: "Issue an access token for the admin API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			token, err := auth.NewToken([]byte(cfg.JWTSecret), args[0], roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleStaff}, "roles of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiration")
	return cmd
}

func codesCmd(g *globalFlags) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:       "codes [table]",
		Short:     "List code tables or rows of one of them",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: codes.TableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), codes.TableNames())
			}
			sqlDB, err := openDB(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			db := reform.NewDB(sqlDB, postgresql.Dialect, reform.NewPrintfLogger(zap.L().Sugar().Debugf))
			list, err := (&codes.PGStore{DB: db}).List(args[0], search)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search in code and description")
	return cmd
}
