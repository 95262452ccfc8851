package authn

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
// The two cases are indistinguishable to callers.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", errors.ErrUnauthorized)

// Cost is the bcrypt work factor used by HashPassword
var Cost = bcrypt.DefaultCost

// UserFinder looks users up by username
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password against a stored bcrypt hash
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("failed to verify password: %w", err)
}

// VerifyCredentials returns the user owning username if password matches its
// stored hash. An unknown username still costs one bcrypt comparison.
func VerifyCredentials(ctx context.Context, users UserFinder, username, password string) (*model.User, error) {
	user, err := users.FindByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			dummyHashOnce.Do(func() {
				dummyHash, _ = bcrypt.GenerateFromPassword([]byte("swapi-dummy-password"), Cost)
			})
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	return user, nil
}

// GeneratePassword returns a random URL-safe password
func GeneratePassword() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
