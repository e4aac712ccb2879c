package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromStore(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, KindConflict},
		{"pg unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, KindNotFound},
		{"pg check", &pgconn.PgError{Code: "23514"}, KindValidation},
		{"other pg", &pgconn.PgError{Code: "57014"}, KindInternal},
		{"plain", errors.New("connection reset"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromStore(tt.err, "Post not found")))
		})
	}
}

func TestFromStoreKeepsClassifiedErrors(t *testing.T) {
	orig := Forbidden("Only leaders can create posts")
	assert.Same(t, orig, FromStore(orig, "ignored"))
	assert.Nil(t, FromStore(nil, "ignored"))
}

func TestNotFoundMessage(t *testing.T) {
	err := FromStore(gorm.ErrRecordNotFound, "Chat not found")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "Chat not found", e.Message)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, KindForbidden.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}
