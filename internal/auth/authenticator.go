package auth

import "context"

// Authenticator verifies login credentials.
// The single-owner setup uses a passphrase; other methods can be plugged in
// without changing the service layer.
type Authenticator interface {
	// Authenticate verifies the credential of the named account and
	// returns the token subject for it.
	Authenticate(ctx context.Context, name, credential string) (subject string, err error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements.
	ValidateCredential(credential string) error
}
