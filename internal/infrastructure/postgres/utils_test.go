package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/labstock/internal/domain"
)

func TestMapWriteErr(t *testing.T) {
	assert.ErrorIs(t, mapWriteErr("op", &pgconn.PgError{Code: "23505"}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapWriteErr("op", &pgconn.PgError{Code: "23503"}), domain.ErrNotFound)
	assert.ErrorIs(t, mapWriteErr("op", &pgconn.PgError{Code: "23514"}), domain.ErrInvalidInput)

	raw := errors.New("conn reset")
	err := mapWriteErr("insert stock", raw)
	assert.ErrorIs(t, err, raw)
	assert.Equal(t, "insert stock: conn reset", err.Error())
}

func TestAffectedOne(t *testing.T) {
	assert.ErrorIs(t, affectedOne(pgconn.NewCommandTag("UPDATE 0")), domain.ErrNotFound)
	assert.NoError(t, affectedOne(pgconn.NewCommandTag("DELETE 1")))
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Equal(t, 20, limitArg(20))
}
