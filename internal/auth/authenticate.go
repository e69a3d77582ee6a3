package auth

import (
	"context"
	"errors"
	"fmt"
)

// Authenticate verifies a username/password pair against the repository.
// An unknown username and a wrong password both come back as
// ErrInvalidCredentials so callers cannot tell (and therefore cannot leak)
// which of the two it was. Any other error is a storage fault.
func Authenticate(ctx context.Context, users UserRepository, username, password string) (*User, error) {
	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password for user %d: %w", user.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
