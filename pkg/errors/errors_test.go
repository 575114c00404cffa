package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromError(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusNotFound, HTTPStatusFromError(ErrUserNotFound))
	req.Equal(http.StatusNotFound, HTTPStatusFromError(ErrPostNotFound))
	req.Equal(http.StatusUnauthorized, HTTPStatusFromError(ErrInvalidToken))
	req.Equal(http.StatusUnauthorized, HTTPStatusFromError(ErrTokenExpired))
	req.Equal(http.StatusForbidden, HTTPStatusFromError(ErrForbidden))
	req.Equal(http.StatusConflict, HTTPStatusFromError(ErrUsernameTaken))
	req.Equal(http.StatusBadRequest, HTTPStatusFromError(ErrInvalidID))
	req.Equal(http.StatusInternalServerError, HTTPStatusFromError(fmt.Errorf("boom")))
}

func TestHTTPStatusFromError_Wrapped(t *testing.T) {
	req := require.New(t)

	// Сервисы оборачивают sentinel через %w
	err := fmt.Errorf("please register first: %w", ErrUserNotFound)
	req.Equal(http.StatusNotFound, HTTPStatusFromError(err))

	err = fmt.Errorf("you can only edit your own profile: %w", ErrForbidden)
	req.Equal(http.StatusForbidden, HTTPStatusFromError(err))
}
