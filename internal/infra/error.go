package infra

import (
	"errors"
	"log/slog"

	"freight-core/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	// not-found and conflicts are expected outcomes, not failures
	switch kind {
	case KindNotFound, KindConflict, KindDuplicateKey:
		slogger.Debug("Repository error: "+msg, logArgs...)
	default:
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// ClassifyPgErr maps a driver error onto a repository error kind.
func ClassifyPgErr(slogger *slog.Logger, msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return WrapRepoErr(slogger, KindNotFound, msg, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return WrapRepoErr(slogger, KindDuplicateKey, msg, err)
		case pgErrForeignKeyViolation:
			return WrapRepoErr(slogger, KindForeignKeyViolated, msg, err)
		case pgErrSerializationFailure, pgErrDeadlockDetected:
			// retried by the unit of work
			return err
		}
	}
	return WrapRepoErr(slogger, KindDBFailure, msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
)

const (
	pgErrUniqueViolation      = "23505"
	pgErrForeignKeyViolation  = "23503"
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)
