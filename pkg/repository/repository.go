package repository

import (
	"context"

	"github.com/growcoach/jobboard/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type CandidateRepo interface {
	CreateCandidate(ctx context.Context, c *models.Candidate) (int64, error)
	GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error)
	GetCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	// SetCandidateStatus updates the status and bumps the updated timestamp
	// in a single write. Returns the number of rows modified.
	SetCandidateStatus(ctx context.Context, id int64, status string) (int64, error)
	SetAdminCV(ctx context.Context, id int64, filename string) (int64, error)
	SaveJob(ctx context.Context, candidateID, jobID int64) error
	UnsaveJob(ctx context.Context, candidateID, jobID int64) error
	ListSavedJobs(ctx context.Context, candidateID int64) ([]int64, error)
}

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
	ListCompanies(ctx context.Context) ([]models.Company, error)
	SetCompanyStatus(ctx context.Context, id int64, status string) (int64, error)
	// SetCompanyVerification writes both the verified flag and the status in
	// one update; verification transitions always carry a status as well.
	SetCompanyVerification(ctx context.Context, id int64, verified bool, status string) (int64, error)
}

type AdminRepo interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (int64, error)
	GetAdminByID(ctx context.Context, id int64) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJobByID(ctx context.Context, id int64) (*models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListJobsByCompany(ctx context.Context, companyID int64) ([]models.Job, error)
	SetJobStatus(ctx context.Context, id int64, status string) (int64, error)
	// AddApplicant records a candidate's application. The applicant list has
	// set semantics: adding an existing applicant returns false, nil.
	AddApplicant(ctx context.Context, jobID, candidateID int64) (bool, error)
	ListApplicants(ctx context.Context, jobID int64) ([]int64, error)
}

type BlacklistRepo interface {
	// InsertRevocation is duplicate-tolerant: revoking the same jti twice
	// succeeds both times and leaves a single record.
	InsertRevocation(ctx context.Context, rec *models.RevocationRecord) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// DeleteExpired removes records whose token expiry (unix seconds) is
	// before the given cutoff. Returns the number of rows deleted.
	DeleteExpired(ctx context.Context, cutoff int64) (int64, error)
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, id int64) error
	// DeleteBySubject removes all notifications of the given type for a
	// subject (e.g. the new_candidate entries cleared by an approval).
	DeleteBySubject(ctx context.Context, typ string, subjectID int64) error
	HasUnread(ctx context.Context, typ string, subjectID int64) (bool, error)
}
