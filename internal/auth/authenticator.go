package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

// Session is the resolved identity produced by a successful login. It carries
// the profile fields the login response needs so the handler does not go back
// to the store.
type Session struct {
	UserID    int64
	UserType  string
	Role      string
	FirstName string
	LastName  string
	Name      string
	Email     string
}

// Authenticator resolves credentials against the three principal namespaces.
type Authenticator struct {
	candidates repository.CandidateRepo
	companies  repository.CompanyRepo
	admins     repository.AdminRepo
}

func NewAuthenticator(candidates repository.CandidateRepo, companies repository.CompanyRepo, admins repository.AdminRepo) *Authenticator {
	return &Authenticator{candidates: candidates, companies: companies, admins: admins}
}

// Login probes candidates, then companies, then admins, stopping at the first
// namespace containing the email. Email uniqueness is enforced jointly across
// candidates and companies at registration, so at most one namespace can
// match; stopping at the first match keeps behavior well-defined even if that
// invariant were ever violated. A wrong password for a matched principal does
// not fall through to later namespaces.
//
// Candidates additionally must have an active account. Companies and admins
// have no such gate.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Session, error) {
	cand, err := a.candidates.GetCandidateByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup candidate: %w", err)
	}
	if cand != nil {
		if bcrypt.CompareHashAndPassword([]byte(cand.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		if cand.Status != models.StatusActive {
			status := cand.Status
			if status == "" {
				status = models.StatusPending
			}
			return nil, &NotApprovedError{Status: status}
		}

		return &Session{
			UserID:    cand.ID,
			UserType:  models.UserTypeCandidate,
			FirstName: cand.FirstName,
			LastName:  cand.LastName,
			Email:     cand.Email,
		}, nil
	}

	comp, err := a.companies.GetCompanyByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup company: %w", err)
	}
	if comp != nil {
		if bcrypt.CompareHashAndPassword([]byte(comp.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}

		return &Session{
			UserID:   comp.ID,
			UserType: models.UserTypeCompany,
			Name:     comp.Name,
			Email:    comp.Email,
		}, nil
	}

	admin, err := a.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if admin != nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}

		return &Session{
			UserID:   admin.ID,
			UserType: models.UserTypeAdmin,
			Role:     admin.Role,
			Email:    admin.Email,
		}, nil
	}

	// same error as a wrong password so callers cannot enumerate emails
	return nil, ErrInvalidCredentials
}
