package auth

import (
	"net/http"

	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// Authentication failures. ErrInvalidCredentials deliberately carries one
// generic message for both unknown-email and wrong-password so account
// existence cannot be probed through the login form.
var (
	ErrInvalidCredentials = apperrors.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized, nil)
	ErrAccountInactive    = apperrors.NewDomainError("ACCOUNT_INACTIVE", "User inactive", http.StatusForbidden, nil)
)
