package mock

import (
	"context"
	"sync"

	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

var _ repository.CandidateRepo = (*CandidateRepo)(nil)
var _ repository.CompanyRepo = (*CompanyRepo)(nil)
var _ repository.AdminRepo = (*AdminRepo)(nil)
var _ repository.JobRepo = (*JobRepo)(nil)
var _ repository.BlacklistRepo = (*BlacklistRepo)(nil)
var _ repository.NotificationRepo = (*NotificationRepo)(nil)

// Test helpers and mocks
type Mocks struct {
	Candidates    *CandidateRepo
	Companies     *CompanyRepo
	Admins        *AdminRepo
	Jobs          *JobRepo
	Blacklist     *BlacklistRepo
	Notifications *NotificationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Candidates:    &CandidateRepo{},
		Companies:     &CompanyRepo{},
		Admins:        &AdminRepo{},
		Jobs:          &JobRepo{},
		Blacklist:     &BlacklistRepo{},
		Notifications: &NotificationRepo{},
	}
}

type CandidateRepo struct {
	Stored    []*models.Candidate
	SavedJobs map[int64][]int64
	Err       error

	nextID int64
}

func (m *CandidateRepo) CreateCandidate(ctx context.Context, c *models.Candidate) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	stored := *c
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *CandidateRepo) GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *CandidateRepo) GetCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (m *CandidateRepo) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Stored {
		if existing.ID == c.ID {
			updated := *c
			m.Stored[i] = &updated
			return nil
		}
	}
	return nil
}

func (m *CandidateRepo) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Candidate, 0, len(m.Stored))
	for _, c := range m.Stored {
		out = append(out, *c)
	}
	return out, nil
}

func (m *CandidateRepo) SetCandidateStatus(ctx context.Context, id int64, status string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id {
			c.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (m *CandidateRepo) SetAdminCV(ctx context.Context, id int64, filename string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id {
			c.AdminCV = filename
			return 1, nil
		}
	}
	return 0, nil
}

func (m *CandidateRepo) SaveJob(ctx context.Context, candidateID, jobID int64) error {
	if m.Err != nil {
		return m.Err
	}
	if m.SavedJobs == nil {
		m.SavedJobs = make(map[int64][]int64)
	}
	for _, id := range m.SavedJobs[candidateID] {
		if id == jobID {
			return nil
		}
	}
	m.SavedJobs[candidateID] = append(m.SavedJobs[candidateID], jobID)
	return nil
}

func (m *CandidateRepo) UnsaveJob(ctx context.Context, candidateID, jobID int64) error {
	if m.Err != nil {
		return m.Err
	}
	saved := m.SavedJobs[candidateID]
	for i, id := range saved {
		if id == jobID {
			m.SavedJobs[candidateID] = append(saved[:i], saved[i+1:]...)
			break
		}
	}
	return nil
}

func (m *CandidateRepo) ListSavedJobs(ctx context.Context, candidateID int64) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SavedJobs[candidateID], nil
}

type CompanyRepo struct {
	Stored []*models.Company
	Err    error

	nextID int64
}

func (m *CompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	stored := *c
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *CompanyRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *CompanyRepo) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (m *CompanyRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Stored {
		if existing.ID == c.ID {
			updated := *c
			m.Stored[i] = &updated
			return nil
		}
	}
	return nil
}

func (m *CompanyRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Company, 0, len(m.Stored))
	for _, c := range m.Stored {
		out = append(out, *c)
	}
	return out, nil
}

func (m *CompanyRepo) SetCompanyStatus(ctx context.Context, id int64, status string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id {
			c.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (m *CompanyRepo) SetCompanyVerification(ctx context.Context, id int64, verified bool, status string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id {
			c.Verified = verified
			c.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

type AdminRepo struct {
	Stored []*models.Admin
	Err    error

	nextID int64
}

func (m *AdminRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *AdminRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Stored {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *AdminRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Stored {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

type JobRepo struct {
	Stored     []*models.Job
	Applicants map[int64][]int64
	Err        error

	nextID int64
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	stored := *j
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *JobRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, j := range m.Stored {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Stored {
		if existing.ID == j.ID {
			updated := *j
			m.Stored[i] = &updated
			return nil
		}
	}
	return nil
}

func (m *JobRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Job, 0, len(m.Stored))
	for _, j := range m.Stored {
		out = append(out, *j)
	}
	return out, nil
}

func (m *JobRepo) ListJobsByCompany(ctx context.Context, companyID int64) ([]models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Job
	for _, j := range m.Stored {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *JobRepo) SetJobStatus(ctx context.Context, id int64, status string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, j := range m.Stored {
		if j.ID == id {
			j.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (m *JobRepo) AddApplicant(ctx context.Context, jobID, candidateID int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.Applicants == nil {
		m.Applicants = make(map[int64][]int64)
	}
	for _, id := range m.Applicants[jobID] {
		if id == candidateID {
			return false, nil
		}
	}
	m.Applicants[jobID] = append(m.Applicants[jobID], candidateID)
	return true, nil
}

func (m *JobRepo) ListApplicants(ctx context.Context, jobID int64) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Applicants[jobID], nil
}

// BlacklistRepo is safe for concurrent use; the janitor sweeps it from a
// background goroutine while tests inspect it.
type BlacklistRepo struct {
	Records map[string]*models.RevocationRecord
	Err     error

	mu sync.Mutex
}

func (m *BlacklistRepo) InsertRevocation(ctx context.Context, rec *models.RevocationRecord) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string]*models.RevocationRecord)
	}
	if _, ok := m.Records[rec.JTI]; ok {
		return nil
	}
	stored := *rec
	m.Records[rec.JTI] = &stored
	return nil
}

func (m *BlacklistRepo) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Records[jti]
	return ok, nil
}

func (m *BlacklistRepo) DeleteExpired(ctx context.Context, cutoff int64) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for jti, rec := range m.Records {
		if rec.Exp < cutoff {
			delete(m.Records, jti)
			n++
		}
	}
	return n, nil
}

// Count reports the number of stored revocation records.
func (m *BlacklistRepo) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

type NotificationRepo struct {
	Stored []*models.Notification
	Err    error

	nextID int64
}

func (m *NotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	stored := *n
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *NotificationRepo) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Notification, 0, len(m.Stored))
	for _, n := range m.Stored {
		out = append(out, *n)
	}
	return out, nil
}

func (m *NotificationRepo) DeleteNotification(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	for i, n := range m.Stored {
		if n.ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			break
		}
	}
	return nil
}

func (m *NotificationRepo) DeleteBySubject(ctx context.Context, typ string, subjectID int64) error {
	if m.Err != nil {
		return m.Err
	}
	kept := m.Stored[:0]
	for _, n := range m.Stored {
		if n.Type == typ && n.SubjectID == subjectID {
			continue
		}
		kept = append(kept, n)
	}
	m.Stored = kept
	return nil
}

func (m *NotificationRepo) HasUnread(ctx context.Context, typ string, subjectID int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, n := range m.Stored {
		if n.Type == typ && n.SubjectID == subjectID && n.Unread {
			return true, nil
		}
	}
	return false, nil
}
