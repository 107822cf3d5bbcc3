package auth

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so a
// caller cannot tell which addresses are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMalformedToken is returned when a token lacks the jti or expiry claim
// required to revoke it.
var ErrMalformedToken = errors.New("token missing jti or expiry claim")

// ErrTokenRevoked is returned for tokens found on the blacklist.
var ErrTokenRevoked = errors.New("token has been revoked")

// NotApprovedError is returned when a candidate's password checks out but the
// account has not been approved. It deliberately carries the current status:
// the caller already proved password knowledge.
type NotApprovedError struct {
	Status string
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("candidate account is not approved (status %q)", e.Status)
}
