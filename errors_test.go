package medichat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/medichat/medichat"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("message includes detail", func(t *testing.T) {
		t.Parallel()
		err := &medichat.Error{Status: 400, Detail: "Username sudah dipakai"}
		assert.Equal(t, "server returned status 400: Username sudah dipakai", err.Error())
	})

	t.Run("message without detail", func(t *testing.T) {
		t.Parallel()
		err := &medichat.Error{Status: 500}
		assert.Equal(t, "server returned status 500", err.Error())
	})
}

func TestErrorDetail(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("login: %w", &medichat.Error{Status: 401, Detail: "Username atau Password salah"})
	assert.Equal(t, "Username atau Password salah", medichat.ErrorDetail(wrapped, "fallback"))
	assert.Equal(t, "fallback", medichat.ErrorDetail(&medichat.Error{Status: 500}, "fallback"))
	assert.Equal(t, "fallback", medichat.ErrorDetail(errors.New("dial tcp"), "fallback"))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	var err error = &medichat.ValidationError{Message: "Password tidak sama!"}
	assert.ErrorIs(t, err, medichat.ErrValidation)
	assert.Equal(t, "Password tidak sama!", err.Error())
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("chat: %w", &medichat.Error{Status: 401, Detail: "Token invalid"})
	assert.ErrorIs(t, wrapped, medichat.ErrUnauthorized)
	assert.NotErrorIs(t, wrapped, medichat.ErrForbidden)
	assert.ErrorIs(t, &medichat.Error{Status: 403}, medichat.ErrForbidden)
	assert.NotErrorIs(t, &medichat.Error{Status: 500}, medichat.ErrUnauthorized)
}
