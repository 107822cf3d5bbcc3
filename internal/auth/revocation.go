package auth

import (
	"context"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

// Registry records revoked tokens and answers membership queries. It is
// consulted synchronously on every authenticated request, so a revoked token
// is rejected even before its natural expiry.
type Registry struct {
	repo repository.BlacklistRepo
}

func NewRegistry(repo repository.BlacklistRepo) *Registry {
	return &Registry{repo: repo}
}

// Revoke blacklists the token described by claims. The token must carry both
// a jti and an expiry; without them the record could never be keyed or
// garbage-collected. A store failure means the logout did not happen and is
// reported as such.
func (r *Registry) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrMalformedToken
	}

	userID, _ := claims.UserID()
	userType := claims.UserType
	if userType == "" {
		userType = "unknown"
	}

	rec := &models.RevocationRecord{
		JTI:      claims.ID,
		Exp:      claims.ExpiresAt.Unix(),
		UserID:   userID,
		UserType: userType,
	}
	if err := r.repo.InsertRevocation(ctx, rec); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

// IsRevoked reports whether the jti is on the blacklist. Lookup errors are
// returned so the caller can refuse access rather than fail open.
func (r *Registry) IsRevoked(ctx context.Context, jti string) (bool, error) {
	revoked, err := r.repo.IsBlacklisted(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}

	return revoked, nil
}
