package repository

import (
	"errors"

	"shophub/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify maps low-level pgx errors to repository error kinds.
func classify(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}

	return infra.WrapRepoErr(msg, err)
}
