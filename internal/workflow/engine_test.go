package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/growcoach/jobboard/internal/workflow"
	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository/mock"
)

func newEngine(m *mock.Mocks) *workflow.Engine {
	return workflow.NewEngine(m.Candidates, m.Companies, m.Jobs, m.Notifications, nil)
}

func TestApproveCandidate(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Candidates.Stored = []*models.Candidate{{ID: 1, FirstName: "Alice", Status: models.StatusPending}}
	mocks.Notifications.Stored = []*models.Notification{
		{ID: 10, Type: models.NotificationNewCandidate, SubjectID: 1, Unread: true},
		{ID: 11, Type: models.NotificationNewCandidate, SubjectID: 2, Unread: true},
	}
	engine := newEngine(mocks)

	if err := engine.ApproveCandidate(context.Background(), 1); err != nil {
		t.Fatalf("ApproveCandidate error: %v", err)
	}

	if got := mocks.Candidates.Stored[0].Status; got != models.StatusActive {
		t.Fatalf("status: got %q want %q", got, models.StatusActive)
	}

	// only the approved candidate's inbox entry goes away
	if len(mocks.Notifications.Stored) != 1 {
		t.Fatalf("expected 1 remaining notification got %d", len(mocks.Notifications.Stored))
	}
	if mocks.Notifications.Stored[0].SubjectID != 2 {
		t.Fatalf("wrong notification deleted")
	}
}

func TestApproveCandidate_NotFound(t *testing.T) {
	engine := newEngine(mock.NewMocks())

	err := engine.ApproveCandidate(context.Background(), 999)
	var notFound *workflow.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

// A failed notification cleanup must not undo or report a failed approval.
func TestApproveCandidate_NotificationFailureIsBestEffort(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Candidates.Stored = []*models.Candidate{{ID: 1, Status: models.StatusPending}}
	mocks.Notifications.Err = errors.New("inbox unavailable")
	engine := newEngine(mocks)

	if err := engine.ApproveCandidate(context.Background(), 1); err != nil {
		t.Fatalf("expected approval to succeed, got %v", err)
	}
	if got := mocks.Candidates.Stored[0].Status; got != models.StatusActive {
		t.Fatalf("status: got %q want %q", got, models.StatusActive)
	}
}

func TestCandidateAction(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		fromStatus string
		want       string
		wantErr    error
	}{
		{"Block", "block", models.StatusActive, models.StatusBlocked, nil},
		{"Unblock", "unblock", models.StatusBlocked, models.StatusActive, nil},
		{"UnblockNeverLandsOnPending", "unblock", models.StatusPending, models.StatusActive, nil},
		{"UnknownAction", "approve", models.StatusActive, "", workflow.ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			mocks.Candidates.Stored = []*models.Candidate{{ID: 1, Status: tt.fromStatus}}
			engine := newEngine(mocks)

			status, err := engine.CandidateAction(context.Background(), 1, tt.action)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CandidateAction error: %v", err)
			}
			if status != tt.want {
				t.Fatalf("status: got %q want %q", status, tt.want)
			}
			if got := mocks.Candidates.Stored[0].Status; got != tt.want {
				t.Fatalf("stored status: got %q want %q", got, tt.want)
			}
		})
	}
}

func TestCompanyAction(t *testing.T) {
	tests := []struct {
		name         string
		action       string
		fromStatus   string
		fromVerified bool
		wantStatus   string
		wantVerified bool
		wantErr      error
	}{
		{"Verify", "verify", models.StatusActive, false, models.StatusActive, true, nil},
		{"Unverify", "unverify", models.StatusActive, true, models.StatusActive, false, nil},
		{"Block", "block", models.StatusActive, true, models.StatusBlocked, true, nil},
		{"Unblock", "unblock", models.StatusBlocked, false, models.StatusActive, false, nil},
		{"BlockKeepsVerified", "block", models.StatusActive, true, models.StatusBlocked, true, nil},
		{"UnknownAction", "promote", models.StatusActive, false, "", false, workflow.ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			mocks.Companies.Stored = []*models.Company{{ID: 1, Status: tt.fromStatus, Verified: tt.fromVerified}}
			engine := newEngine(mocks)

			status, verified, err := engine.CompanyAction(context.Background(), 1, tt.action)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompanyAction error: %v", err)
			}
			if status != tt.wantStatus || verified != tt.wantVerified {
				t.Fatalf("got (%q, %v) want (%q, %v)", status, verified, tt.wantStatus, tt.wantVerified)
			}

			stored := mocks.Companies.Stored[0]
			if stored.Status != tt.wantStatus || stored.Verified != tt.wantVerified {
				t.Fatalf("stored (%q, %v) want (%q, %v)", stored.Status, stored.Verified, tt.wantStatus, tt.wantVerified)
			}
		})
	}
}

// Verifying a blocked company forces its status back to active. This couples
// the verification axis to the status axis and silently unblocks the company.
func TestCompanyAction_VerifyUnblocks(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Companies.Stored = []*models.Company{{ID: 1, Status: models.StatusBlocked, Verified: false}}
	engine := newEngine(mocks)

	status, verified, err := engine.CompanyAction(context.Background(), 1, "verify")
	if err != nil {
		t.Fatalf("CompanyAction error: %v", err)
	}
	if status != models.StatusActive {
		t.Fatalf("status: got %q want %q", status, models.StatusActive)
	}
	if !verified {
		t.Fatalf("expected verified true")
	}

	// unverify behaves the same way on a blocked company
	mocks.Companies.Stored[0].Status = models.StatusBlocked
	status, verified, err = engine.CompanyAction(context.Background(), 1, "unverify")
	if err != nil {
		t.Fatalf("CompanyAction error: %v", err)
	}
	if status != models.StatusActive || verified {
		t.Fatalf("got (%q, %v) want (%q, false)", status, verified, models.StatusActive)
	}
}

func TestCompanyAction_NotFound(t *testing.T) {
	engine := newEngine(mock.NewMocks())

	_, _, err := engine.CompanyAction(context.Background(), 999, "verify")
	var notFound *workflow.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestSetJobStatus(t *testing.T) {
	tests := []struct {
		name    string
		company int64
		status  string
		wantErr error
	}{
		{"Close", 1, models.JobStatusClosed, nil},
		{"Reopen", 1, models.JobStatusActive, nil},
		{"InvalidStatus", 1, "archived", workflow.ErrInvalidAction},
		{"NotOwner", 2, models.JobStatusClosed, &workflow.NotFoundError{Entity: "job"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			mocks.Jobs.Stored = []*models.Job{{ID: 10, CompanyID: 1, Status: models.JobStatusActive}}
			engine := newEngine(mocks)

			err := engine.SetJobStatus(context.Background(), tt.company, 10, tt.status)
			switch {
			case tt.wantErr == nil:
				if err != nil {
					t.Fatalf("SetJobStatus error: %v", err)
				}
				if got := mocks.Jobs.Stored[0].Status; got != tt.status {
					t.Fatalf("stored status: got %q want %q", got, tt.status)
				}
			case errors.Is(tt.wantErr, workflow.ErrInvalidAction):
				if !errors.Is(err, workflow.ErrInvalidAction) {
					t.Fatalf("expected ErrInvalidAction got %v", err)
				}
			default:
				var notFound *workflow.NotFoundError
				if !errors.As(err, &notFound) {
					t.Fatalf("expected NotFoundError got %v", err)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []*models.Job{{ID: 10, CompanyID: 1, Status: models.JobStatusActive}}
	engine := newEngine(mocks)
	ctx := context.Background()

	if err := engine.Apply(ctx, 10, 5); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	// the applicant list has set semantics
	err := engine.Apply(ctx, 10, 5)
	if !errors.Is(err, workflow.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied got %v", err)
	}

	applicants, _ := mocks.Jobs.ListApplicants(ctx, 10)
	if len(applicants) != 1 {
		t.Fatalf("expected 1 applicant got %d", len(applicants))
	}

	// a second candidate can still apply
	if err := engine.Apply(ctx, 10, 6); err != nil {
		t.Fatalf("Apply second candidate error: %v", err)
	}
}

func TestApply_MissingJob(t *testing.T) {
	engine := newEngine(mock.NewMocks())

	err := engine.Apply(context.Background(), 999, 5)
	var notFound *workflow.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestRequestVerification(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Companies.Stored = []*models.Company{{ID: 1, Name: "Acme"}}
	engine := newEngine(mocks)
	ctx := context.Background()

	pending, err := engine.VerificationPending(ctx, 1)
	if err != nil {
		t.Fatalf("VerificationPending error: %v", err)
	}
	if pending {
		t.Fatalf("expected no pending request before filing one")
	}

	if err := engine.RequestVerification(ctx, 1); err != nil {
		t.Fatalf("RequestVerification error: %v", err)
	}

	if len(mocks.Notifications.Stored) != 1 {
		t.Fatalf("expected 1 notification got %d", len(mocks.Notifications.Stored))
	}
	n := mocks.Notifications.Stored[0]
	if n.Type != models.NotificationVerificationRequest || n.SubjectID != 1 || !n.Unread {
		t.Fatalf("unexpected notification: %+v", n)
	}

	pending, err = engine.VerificationPending(ctx, 1)
	if err != nil {
		t.Fatalf("VerificationPending error: %v", err)
	}
	if !pending {
		t.Fatalf("expected pending request after filing one")
	}
}

func TestRequestVerification_NotFound(t *testing.T) {
	engine := newEngine(mock.NewMocks())

	err := engine.RequestVerification(context.Background(), 999)
	var notFound *workflow.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestNotifyNewCandidate(t *testing.T) {
	mocks := mock.NewMocks()
	engine := newEngine(mocks)

	c := &models.Candidate{ID: 3, FirstName: "Alice", LastName: "Doe"}
	if err := engine.NotifyNewCandidate(context.Background(), c); err != nil {
		t.Fatalf("NotifyNewCandidate error: %v", err)
	}

	if len(mocks.Notifications.Stored) != 1 {
		t.Fatalf("expected 1 notification got %d", len(mocks.Notifications.Stored))
	}
	n := mocks.Notifications.Stored[0]
	if n.Type != models.NotificationNewCandidate || n.SubjectID != 3 {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.SubjectName != "Alice Doe" {
		t.Fatalf("subject name: got %q", n.SubjectName)
	}
}
