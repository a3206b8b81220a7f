package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("domain error passes through", func(t *testing.T) {
		err := NewDuplicateAssignment("v-1", "r-1")
		de := ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, CodeDuplicateAssignment, de.Code)
		assert.Equal(t, http.StatusConflict, de.HTTPStatus)
		assert.Equal(t, "r-1", de.Details["request_id"])
	})

	t.Run("fiber error keeps status", func(t *testing.T) {
		de := ToDomainError(fiber.NewError(http.StatusForbidden, "insufficient role"))
		assert.Equal(t, CodeForbidden, de.Code)
		assert.Equal(t, "insufficient role", de.Message)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		de := ToDomainError(errors.New("boom"))
		assert.Equal(t, CodeInternal, de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	})

	assert.Nil(t, ToDomainError(nil))
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewNotFound("request", nil), CodeNotFound))
	assert.False(t, IsCode(errors.New("x"), CodeNotFound))
}

type samplePayload struct {
	Name     string `json:"name" validate:"required,notblank"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(samplePayload{Name: "   ", Quantity: 0, Email: "nope"})
	require.Error(t, err)

	de := ToDomainError(err)
	assert.Equal(t, CodeValidationFailed, de.Code)
	assert.Equal(t, "must not be blank", de.Details["name"])
	assert.Equal(t, "must be greater than 0", de.Details["quantity"])
	assert.Equal(t, "must be a valid email address", de.Details["email"])

	assert.NoError(t, ValidateStruct(samplePayload{Name: "Blankets", Quantity: 50}))
}
