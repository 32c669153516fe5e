// Package auth handles account registration, credential checks and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Authenticator registers trip owners and verifies their credentials.
// Implementations decide what a credential is; the password one uses bcrypt.
type Authenticator interface {
	// Register creates a new account. Emails are unique regardless of case.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that may not be stored.
	ValidateCredential(credential string) error
}
