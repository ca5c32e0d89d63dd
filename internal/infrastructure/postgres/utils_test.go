package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		onUnique error
		want     error
	}{
		{"unique en catálogo", &pgconn.PgError{Code: codeUniqueViolation}, domain.ErrAlreadyExists, domain.ErrAlreadyExists},
		{"unique en stock", &pgconn.PgError{Code: codeUniqueViolation}, domain.ErrConflict, domain.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: codeForeignKeyViolation}, domain.ErrAlreadyExists, domain.ErrConflict},
		{"check", &pgconn.PgError{Code: codeCheckViolation}, domain.ErrAlreadyExists, domain.ErrConflict},
		{"serialización", &pgconn.PgError{Code: codeSerializationFailure}, domain.ErrAlreadyExists, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: codeDeadlockDetected}, domain.ErrAlreadyExists, domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError("op", tt.err, tt.onUnique), tt.want)
		})
	}
}

func TestTranslateError_OtrosSePropagan(t *testing.T) {
	base := errors.New("conexión perdida")
	err := translateError("list stock", base, domain.ErrConflict)

	assert.ErrorIs(t, err, base)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "list stock: conexión perdida", err.Error())
}

func TestWhere(t *testing.T) {
	var w where
	assert.Empty(t, w.String())

	w.add("s.product_id = $%d", int64(1))
	w.add("s.warehouse_id = $%d", int64(2))
	assert.Equal(t, " WHERE s.product_id = $1 AND s.warehouse_id = $2", w.String())
	assert.Equal(t, []any{int64(1), int64(2)}, w.args)
}
