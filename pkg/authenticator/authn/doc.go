// Package authn implements username/password authentication for SWAPI users.
//
// Passwords are stored as salted bcrypt hashes. Verification is a plain
// function invoked per request:
//
//	user, err := authn.VerifyCredentials(ctx, usersStore, username, password)
//	if errors.Is(err, authn.ErrInvalidCredentials) {
//	    // 401
//	}
//
// There is no plaintext comparison path.
package authn
