// Package token decodes the bearer credential issued by the backend into
// the identity fields the client renders from.
//
// Decoding is structural only: the signature is not verified and expiry is
// not checked. That is a deliberate trust boundary — the server rejects
// invalid credentials on every authenticated call, so the client treats it
// as authoritative and only needs to read the claims.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode reports a structurally malformed credential: wrong segment
// count, invalid payload encoding, or a non-parseable claims document.
var ErrDecode = errors.New("malformed credential")

// Role distinguishes the two account kinds the platform issues tokens for.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Identity is the client-side view of the claims embedded in a credential.
type Identity struct {
	// SubjectID is the opaque account id the realtime channel is keyed by.
	SubjectID string

	Role Role

	// IsAdmin is meaningful only when Role is RoleEmployer.
	IsAdmin bool

	// Email is optional and used for display only.
	Email string
}

type claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"id"`
	Role    Role   `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
	Email   string `json:"email,omitempty"`
}

// Decode extracts the identity from credential without verifying it.
// Pure: no side effects, deterministic for a given input.
func Decode(credential string) (Identity, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &c); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if c.UserID == "" {
		return Identity{}, fmt.Errorf("%w: missing subject id", ErrDecode)
	}
	return Identity{
		SubjectID: c.UserID,
		Role:      c.Role,
		IsAdmin:   c.IsAdmin,
		Email:     c.Email,
	}, nil
}
