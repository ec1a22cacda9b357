package postgres

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/elikia-api/internal/domain"
)

// classify envuelve err con el sentinel de dominio que corresponde al SQLSTATE o al fallo de red.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel := sqlStateSentinel(pgErr.Code); sentinel != nil {
			return fmt.Errorf("%s: %w: %w", op, sentinel, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnreachable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sqlStateSentinel(code string) error {
	switch code {
	case "42P01", "3F000", "42703": // undefined_table, invalid_schema_name, undefined_column
		return domain.ErrSchemaMissing
	case "42501": // insufficient_privilege (RLS)
		return domain.ErrPermissionDenied
	case "23505": // unique_violation
		return domain.ErrDuplicate
	case "23502", "23503", "23514", "22P02", "22003": // not_null, fk, check, texto inválido, fuera de rango
		return domain.ErrInvalidInput
	case "57P01", "57P03": // admin_shutdown, cannot_connect_now
		return domain.ErrUnreachable
	}
	switch {
	case strings.HasPrefix(code, "28"): // invalid_authorization_specification
		return domain.ErrPermissionDenied
	case strings.HasPrefix(code, "08"): // connection_exception
		return domain.ErrUnreachable
	}
	return nil
}
