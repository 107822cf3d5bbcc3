// Package workflow owns the status state machines for candidate accounts,
// company accounts, and job postings, plus the admin notification entries
// those transitions produce.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

// ErrInvalidAction is returned for status actions outside the defined set.
var ErrInvalidAction = errors.New("invalid action")

// ErrAlreadyApplied is returned when a candidate applies to a job twice.
var ErrAlreadyApplied = errors.New("already applied")

// NotFoundError identifies which entity a transition failed to find.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// Engine applies status transitions. Each transition is a single atomic
// update to one record; notification side effects are best-effort and logged
// when they fail.
type Engine struct {
	candidates    repository.CandidateRepo
	companies     repository.CompanyRepo
	jobs          repository.JobRepo
	notifications repository.NotificationRepo
	logger        *slog.Logger
}

func NewEngine(
	candidates repository.CandidateRepo,
	companies repository.CompanyRepo,
	jobs repository.JobRepo,
	notifications repository.NotificationRepo,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		candidates:    candidates,
		companies:     companies,
		jobs:          jobs,
		notifications: notifications,
		logger:        logger,
	}
}

// NotifyNewCandidate records an admin inbox entry for a fresh registration.
func (e *Engine) NotifyNewCandidate(ctx context.Context, c *models.Candidate) error {
	n := &models.Notification{
		Text:        fmt.Sprintf("New candidate registration: %s %s", c.FirstName, c.LastName),
		Unread:      true,
		Type:        models.NotificationNewCandidate,
		SubjectID:   c.ID,
		SubjectName: c.FirstName + " " + c.LastName,
	}
	if _, err := e.notifications.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create new_candidate notification: %w", err)
	}

	return nil
}

// ApproveCandidate moves a pending candidate to active and clears any
// outstanding new_candidate notifications for it.
func (e *Engine) ApproveCandidate(ctx context.Context, candidateID int64) error {
	modified, err := e.candidates.SetCandidateStatus(ctx, candidateID, models.StatusActive)
	if err != nil {
		return fmt.Errorf("approve candidate: %w", err)
	}
	if modified == 0 {
		return &NotFoundError{Entity: "candidate"}
	}

	if err := e.notifications.DeleteBySubject(ctx, models.NotificationNewCandidate, candidateID); err != nil {
		e.logger.Error("clear new_candidate notifications", "candidate_id", candidateID, "err", err)
	}

	return nil
}

// CandidateAction applies an admin block/unblock to a candidate and returns
// the resulting status. Unblocking always lands on active, never back on
// pending.
func (e *Engine) CandidateAction(ctx context.Context, candidateID int64, action string) (string, error) {
	var status string
	switch action {
	case "block":
		status = models.StatusBlocked
	case "unblock":
		status = models.StatusActive
	default:
		return "", ErrInvalidAction
	}

	modified, err := e.candidates.SetCandidateStatus(ctx, candidateID, status)
	if err != nil {
		return "", fmt.Errorf("set candidate status: %w", err)
	}
	if modified == 0 {
		return "", &NotFoundError{Entity: "candidate"}
	}

	return status, nil
}

// CompanyAction applies an admin action to a company and returns the
// resulting status and verified flag. Status and verified are independent
// axes, except that verify and unverify also force status to active: a
// blocked company that gets verified is silently unblocked.
func (e *Engine) CompanyAction(ctx context.Context, companyID int64, action string) (string, bool, error) {
	company, err := e.companies.GetCompanyByID(ctx, companyID)
	if err != nil {
		return "", false, fmt.Errorf("lookup company: %w", err)
	}
	if company == nil {
		return "", false, &NotFoundError{Entity: "company"}
	}

	status := company.Status
	verified := company.Verified

	switch action {
	case "verify":
		verified, status = true, models.StatusActive
		_, err = e.companies.SetCompanyVerification(ctx, companyID, verified, status)
	case "unverify":
		verified, status = false, models.StatusActive
		_, err = e.companies.SetCompanyVerification(ctx, companyID, verified, status)
	case "block":
		status = models.StatusBlocked
		_, err = e.companies.SetCompanyStatus(ctx, companyID, status)
	case "unblock":
		status = models.StatusActive
		_, err = e.companies.SetCompanyStatus(ctx, companyID, status)
	default:
		return "", false, ErrInvalidAction
	}
	if err != nil {
		return "", false, fmt.Errorf("apply company action %s: %w", action, err)
	}

	return status, verified, nil
}

// SetJobStatus toggles a job between active and closed. The job must belong
// to the given company.
func (e *Engine) SetJobStatus(ctx context.Context, companyID, jobID int64, status string) error {
	if status != models.JobStatusActive && status != models.JobStatusClosed {
		return ErrInvalidAction
	}

	job, err := e.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("lookup job: %w", err)
	}
	if job == nil || job.CompanyID != companyID {
		return &NotFoundError{Entity: "job"}
	}

	if _, err := e.jobs.SetJobStatus(ctx, jobID, status); err != nil {
		return fmt.Errorf("set job status: %w", err)
	}

	return nil
}

// Apply records a candidate's application to a job. The applicant list has
// set semantics; a repeat application is a client error.
func (e *Engine) Apply(ctx context.Context, jobID, candidateID int64) error {
	job, err := e.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("lookup job: %w", err)
	}
	if job == nil {
		return &NotFoundError{Entity: "job"}
	}

	added, err := e.jobs.AddApplicant(ctx, jobID, candidateID)
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}
	if !added {
		return ErrAlreadyApplied
	}

	return nil
}

// RequestVerification files a verification_request notification for the
// admins. It changes no status; an admin resolves it later through a company
// action plus notification deletion.
func (e *Engine) RequestVerification(ctx context.Context, companyID int64) error {
	company, err := e.companies.GetCompanyByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("lookup company: %w", err)
	}
	if company == nil {
		return &NotFoundError{Entity: "company"}
	}

	n := &models.Notification{
		Text:        fmt.Sprintf("%s has made a verification request", company.Name),
		Unread:      true,
		Type:        models.NotificationVerificationRequest,
		SubjectID:   company.ID,
		SubjectName: company.Name,
	}
	if _, err := e.notifications.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create verification_request notification: %w", err)
	}

	return nil
}

// VerificationPending reports whether a company has an unread verification
// request in the admin inbox.
func (e *Engine) VerificationPending(ctx context.Context, companyID int64) (bool, error) {
	pending, err := e.notifications.HasUnread(ctx, models.NotificationVerificationRequest, companyID)
	if err != nil {
		return false, fmt.Errorf("check verification request: %w", err)
	}

	return pending, nil
}
