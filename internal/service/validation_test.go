package service

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/domain"
)

func TestAsValidationError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, AsValidationError(nil))
	})

	t.Run("field errors become fields", func(t *testing.T) {
		req := struct {
			Name string `json:"name"`
		}{}
		err := validation.ValidateStruct(&req, validation.Field(&req.Name, validation.Required))

		converted := AsValidationError(err)

		require.True(t, errors.Is(converted, domain.ErrValidation))
		var ve *domain.ValidationError
		require.True(t, errors.As(converted, &ve))
		assert.Equal(t, "cannot be blank", ve.Fields["name"])
	})

	t.Run("plain errors keep their message", func(t *testing.T) {
		converted := AsValidationError(errors.New("name is odd"))

		assert.True(t, errors.Is(converted, domain.ErrValidation))
		assert.Equal(t, "name is odd", converted.Error())
	})
}
