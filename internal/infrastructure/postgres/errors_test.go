package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/elikia-api/internal/domain"
)

func TestClassify_SQLState(t *testing.T) {
	cases := map[string]error{
		"42P01": domain.ErrSchemaMissing,
		"42703": domain.ErrSchemaMissing,
		"42501": domain.ErrPermissionDenied,
		"28P01": domain.ErrPermissionDenied,
		"23505": domain.ErrDuplicate,
		"23503": domain.ErrInvalidInput,
		"22P02": domain.ErrInvalidInput,
		"08006": domain.ErrUnreachable,
	}
	for code, want := range cases {
		err := classify("select products", &pgconn.PgError{Code: code, Message: "x"})
		assert.ErrorIs(t, err, want, code)
		var pgErr *pgconn.PgError
		assert.True(t, errors.As(err, &pgErr), "conserva la causa original")
	}
}

func TestClassify_SinSentinel(t *testing.T) {
	err := classify("select", &pgconn.PgError{Code: "XX000"})
	assert.Equal(t, domain.FailureUnknown, domain.Classify(err))

	assert.NoError(t, classify("x", nil))
	assert.Equal(t, domain.FailureUnknown, domain.Classify(classify("x", errors.New("boom"))))
}

func TestClassify_Timeout(t *testing.T) {
	err := classify("ping DB", context.DeadlineExceeded)
	assert.Equal(t, domain.FailureUnreachable, domain.Classify(err))
}

func TestTable_SoloColeccionesConocidas(t *testing.T) {
	tbl, err := table("products")
	assert.NoError(t, err)
	assert.Equal(t, `"products"`, tbl)

	_, err = table(`products"; DROP TABLE x; --`)
	assert.ErrorIs(t, err, domain.ErrSchemaMissing)
}
