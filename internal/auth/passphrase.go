package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or passphrase")
	ErrWeakPassphrase     = errors.New("passphrase must be at least 8 characters")
)

// MinPassphraseLength is the shortest passphrase HashPassphrase accepts.
const MinPassphraseLength = 8

// PassphraseAuthenticator checks the owner's passphrase against a bcrypt hash.
type PassphraseAuthenticator struct {
	owner string
	hash  []byte
}

var _ Authenticator = (*PassphraseAuthenticator)(nil)

// NewPassphraseAuthenticator creates an authenticator for owner. hash is a
// bcrypt hash as produced by HashPassphrase.
func NewPassphraseAuthenticator(owner, hash string) (*PassphraseAuthenticator, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid passphrase hash: %w", err)
	}
	return &PassphraseAuthenticator{owner: owner, hash: []byte(hash)}, nil
}

// ValidateCredential checks if the passphrase meets minimum requirements.
func (a *PassphraseAuthenticator) ValidateCredential(credential string) error {
	return validatePassphrase(credential)
}

// Authenticate returns the owner's name if name and passphrase match.
func (a *PassphraseAuthenticator) Authenticate(ctx context.Context, name, credential string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(name), []byte(a.owner)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.owner, nil
}

// HashPassphrase returns the bcrypt hash to put in the auth configuration.
func HashPassphrase(passphrase string) (string, error) {
	if err := validatePassphrase(passphrase); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hash), nil
}

func validatePassphrase(p string) error {
	if len(p) < MinPassphraseLength {
		return ErrWeakPassphrase
	}
	return nil
}
