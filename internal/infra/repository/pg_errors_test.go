package repository

import (
	"errors"
	"fmt"
	"testing"

	repo "marketplace/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value"}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation, Message: "violates foreign key constraint"}
	other := &pgconn.PgError{Code: "57014", Message: "canceling statement"}

	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), repo.ErrNotFound)

	err := translateError(fmt.Errorf("insert: %w", unique))
	assert.ErrorIs(t, err, repo.ErrDuplicate)
	assert.Contains(t, err.Error(), "duplicate key value")

	assert.ErrorIs(t, translateError(fk), repo.ErrInvalidReference)

	err = translateError(other)
	assert.False(t, errors.Is(err, repo.ErrDuplicate))
	assert.False(t, errors.Is(err, repo.ErrInvalidReference))
	assert.Equal(t, other, err)
}
