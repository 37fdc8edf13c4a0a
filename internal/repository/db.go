package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool used by repositories. pgxmock's pool
// satisfies it too, which is what the repository tests run against.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	// ErrDuplicateEmail is returned when an insert trips the unique
	// constraint on users.email
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInsufficientStock is returned when a conditional stock decrement
	// matches no row, meaning the product had fewer units than requested
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNotFound is returned when a write targets a row that does not exist
	ErrNotFound = errors.New("record not found")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
