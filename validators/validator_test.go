package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=worshiper leader"`
	Bio   string `json:"bio" validate:"omitempty,max=5"`
}

func TestValidatePasses(t *testing.T) {
	err := NewValidator().Validate(sample{Email: "a@b.org", Role: "leader"})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(sample{Email: "nope", Role: "admin", Bio: "far too long"})
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	msg := httpErr.Message.(string)
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "role must be one of: worshiper, leader")
	assert.Contains(t, msg, "bio must be at most 5 characters")
}
