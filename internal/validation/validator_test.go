package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

func TestValidate_Success(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Email: "jane@example.com", Quantity: 2})
	assert.NoError(t, err)
}

func TestValidate_ReturnsDomainErrorWithFieldDetails(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Email: "not-an-email", Quantity: 0})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be greater than or equal to 1", details["quantity"])
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Quantity: 1})

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Contains(t, details, "email")
	assert.NotContains(t, details, "Email")
}
