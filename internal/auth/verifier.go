// Package auth implements the login gate: credential verification,
// session token issuance and the middleware protecting catalog routes.
package auth

import (
	"context"

	"plasco-inventory/internal/repository"
)

// Principal identifies an authenticated operator.
type Principal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Verifier checks a submitted credential pair. A failed match is not
// an error: ok is false and err is nil. err is reserved for lookup
// failures.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (*Principal, bool, error)
}

// EnvVerifier validates against the single configured operator
// account. This is the active implementation.
type EnvVerifier struct {
	Name     string
	Username string
	Password string
}

func (v *EnvVerifier) Verify(_ context.Context, username, password string) (*Principal, bool, error) {
	if username != v.Username || password != v.Password {
		return nil, false, nil
	}
	return &Principal{ID: "1", Name: v.Name, Username: v.Username}, true, nil
}

// MongoVerifier validates against the stored user directory with
// bcrypt-hashed passwords. Not wired into the live login flow; it
// exists so a multi-account directory can replace EnvVerifier without
// touching the call sites.
type MongoVerifier struct {
	Users *repository.UserRepository
}

func (v *MongoVerifier) Verify(ctx context.Context, username, password string) (*Principal, bool, error) {
	user, err := v.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if user == nil || !user.MatchPassword(password) {
		return nil, false, nil
	}
	return &Principal{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Username: user.Username,
	}, true, nil
}
