package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindProbe struct {
	AccessToken string `json:"access_token" binding:"required"`
	StoreRef    string `json:"store_ref"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(bindProbe{})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 1)
	// JSON tag name, not the Go field name
	assert.Equal(t, "access_token", validationErrors[0].Field())
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	v, _ := binding.Validator.Engine().(*validator.Validate)
	err := v.Struct(bindProbe{})
	require.Error(t, err)

	resp := FormatValidationErrors(err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "access_token", resp.Error.Details[0].Field)
	assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("unexpected EOF"))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
}
