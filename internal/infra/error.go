package infra

import (
	"errors"
	"log/slog"
	"strings"

	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/pkg/pgconv"

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

// WrapRepoErr classifies a driver error, logs it once and marks it with the
// caller-visible kind so use cases never need to import this package. An
// explicit kind overrides the classification.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	logArgs := []any{
		slog.String("kind", string(k)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("cause", err.Error()))
	}
	switch k {
	case KindNotFound, KindConflict, KindDuplicateKey:
		slog.Debug("Repository error: "+msg, logArgs...)
	default:
		slog.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	var out error = RepositoryError{Kind: k, msg: msg, err: err}
	if sentinel := k.sentinel(); sentinel != nil {
		out = errs.Mark(out, sentinel)
	}
	return out
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
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeExclusionViolation  = "23P01"
	pgErrCodeTooManyConnections  = "53300"
	pgErrCodeAdminShutdown       = "57P01"
	pgErrCodeCannotConnectNow    = "57P03"
	pgErrClassConnection         = "08"
)

func (k RepositoryErrorKind) sentinel() error {
	switch k {
	case KindNotFound, KindForeignKeyViolated:
		return errs.ErrNotFound
	case KindDuplicateKey, KindConflict:
		return errs.ErrConflict
	case KindUnavailable:
		return errs.ErrTransient
	default:
		return nil
	}
}

func classify(err error) RepositoryErrorKind {
	if err == nil {
		return KindDBFailure
	}
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgErrCodeUniqueViolation:
			return KindDuplicateKey
		case pgErr.Code == pgErrCodeExclusionViolation:
			return KindConflict
		case pgErr.Code == pgErrCodeForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErr.Code == pgErrCodeTooManyConnections,
			pgErr.Code == pgErrCodeAdminShutdown,
			pgErr.Code == pgErrCodeCannotConnectNow,
			strings.HasPrefix(pgErr.Code, pgErrClassConnection):
			return KindUnavailable
		}
		return KindDBFailure
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return KindUnavailable
	}
	return KindDBFailure
}
