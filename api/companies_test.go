package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/growcoach/jobboard/api"
	"github.com/growcoach/jobboard/internal/validate"
	"github.com/growcoach/jobboard/internal/workflow"
	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository/mock"
)

func newCompaniesHandler(t *testing.T, m *mock.Mocks) *api.CompaniesHandler {
	t.Helper()
	validator, err := validate.New()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	engine := workflow.NewEngine(m.Candidates, m.Companies, m.Jobs, m.Notifications, nil)
	return api.NewCompaniesHandler(m.Companies, m.Candidates, engine, validator, "/uploads")
}

func TestCompanySignup(t *testing.T) {
	validBody := map[string]any{
		"company_name": "Acme",
		"email":        "acme@example.com",
		"password":     "s3cret",
		"industry":     "software",
	}

	tests := []struct {
		name       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		wantBody   string
	}{
		{
			name: "MissingIndustry",
			body: map[string]any{
				"company_name": "Acme", "email": "acme@example.com", "password": "s3cret",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "industry",
		},
		{
			name: "ShortPassword",
			body: map[string]any{
				"company_name": "Acme", "email": "acme@example.com",
				"password": "pw", "industry": "software",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "DuplicateCompanyEmail",
			body: validBody,
			prepare: func(m *mock.Mocks) {
				m.Companies.Stored = []*models.Company{{ID: 1, Email: "acme@example.com"}}
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Email already registered",
		},
		{
			name: "EmailTakenByCandidate",
			body: validBody,
			prepare: func(m *mock.Mocks) {
				m.Candidates.Stored = []*models.Candidate{{ID: 1, Email: "acme@example.com"}}
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Email already registered",
		},
		{
			name:       "Success",
			body:       validBody,
			wantStatus: http.StatusCreated,
			wantBody:   "Company registered successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := newCompaniesHandler(t, mocks)

			b, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/company/signup", bytes.NewReader(b))
			w := httptest.NewRecorder()
			handler.Signup(w, req)

			res := w.Result()
			defer res.Body.Close()
			if res.StatusCode != tt.wantStatus {
				data, _ := io.ReadAll(res.Body)
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.wantBody != "" {
				data, _ := io.ReadAll(res.Body)
				if !strings.Contains(string(data), tt.wantBody) {
					t.Fatalf("body %q does not contain %q", string(data), tt.wantBody)
				}
			}
		})
	}
}

// New companies start active and unverified with a hashed password.
func TestCompanySignup_SideEffects(t *testing.T) {
	mocks := mock.NewMocks()
	handler := newCompaniesHandler(t, mocks)

	body, _ := json.Marshal(map[string]any{
		"company_name": "Acme", "email": "acme@example.com",
		"password": "s3cret", "industry": "software",
	})
	req := httptest.NewRequest(http.MethodPost, "/company/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	if len(mocks.Companies.Stored) != 1 {
		t.Fatalf("expected 1 stored company got %d", len(mocks.Companies.Stored))
	}
	stored := mocks.Companies.Stored[0]
	if stored.Status != models.StatusActive {
		t.Fatalf("status: got %q want %q", stored.Status, models.StatusActive)
	}
	if stored.Verified {
		t.Fatalf("new companies must start unverified")
	}
	if stored.PasswordHash == "s3cret" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestCompanyProfile(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Companies.Stored = []*models.Company{{
		ID: 1, Name: "Acme", Email: "acme@example.com",
		Industry: "software", Status: models.StatusActive,
	}}
	handler := newCompaniesHandler(t, mocks)

	req := asCandidate(httptest.NewRequest(http.MethodGet, "/company/profile", nil), 1)
	w := httptest.NewRecorder()
	handler.Profile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["company_name"] != "Acme" || body["verified"] != false {
		t.Fatalf("unexpected profile: %v", body)
	}
	// no logo uploaded, the key is still present and null
	if v, ok := body["logo_url"]; !ok || v != nil {
		t.Fatalf("expected null logo_url got %v", v)
	}

	req = asCandidate(httptest.NewRequest(http.MethodGet, "/company/profile", nil), 999)
	w = httptest.NewRecorder()
	handler.Profile(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestCompanyUpdate_Partial(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Companies.Stored = []*models.Company{{
		ID: 1, Name: "Acme", Email: "acme@example.com",
		Industry: "software", Location: "Berlin", Status: models.StatusActive,
	}}
	handler := newCompaniesHandler(t, mocks)

	body, _ := json.Marshal(map[string]any{"location": "Munich"})
	req := asCandidate(httptest.NewRequest(http.MethodPut, "/company/update", bytes.NewReader(body)), 1)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	stored := mocks.Companies.Stored[0]
	if stored.Location != "Munich" || stored.Name != "Acme" || stored.Industry != "software" {
		t.Fatalf("unexpected company after update: %#v", stored)
	}

	// clearing the name or email is rejected
	for _, field := range []string{"company_name", "email"} {
		body, _ = json.Marshal(map[string]any{field: ""})
		req = asCandidate(httptest.NewRequest(http.MethodPut, "/company/update", bytes.NewReader(body)), 1)
		w = httptest.NewRecorder()
		handler.Update(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty %s got %d", field, w.Code)
		}
	}
}

func TestRequestVerificationHandler(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Companies.Stored = []*models.Company{{ID: 1, Name: "Acme", Status: models.StatusActive}}
	handler := newCompaniesHandler(t, mocks)

	req := asCandidate(httptest.NewRequest(http.MethodPost, "/api/request-verification", nil), 1)
	w := httptest.NewRecorder()
	handler.RequestVerification(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Verification request sent") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if len(mocks.Notifications.Stored) != 1 {
		t.Fatalf("expected 1 notification got %d", len(mocks.Notifications.Stored))
	}

	// status endpoint reflects the pending request
	req = asCandidate(httptest.NewRequest(http.MethodGet, "/api/company/verification-status", nil), 1)
	w = httptest.NewRecorder()
	handler.VerificationStatus(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["pending"] != true {
		t.Fatalf("expected pending true got %v", body)
	}

	// unknown company
	req = asCandidate(httptest.NewRequest(http.MethodPost, "/api/request-verification", nil), 999)
	w = httptest.NewRecorder()
	handler.RequestVerification(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestCompanyCandidatesListing(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Candidates.Stored = []*models.Candidate{{
		ID: 1, FirstName: "Alice", LastName: "Doe",
		Email:  "alice@example.com",
		Skills: []string{"go", "sql"},
		Education: []models.Education{
			{School: "Old School", Degree: "BSc", StartDate: "2015-09"},
			{School: "New School", Degree: "MSc", StartDate: "2019-09"},
		},
		Experience: []models.Experience{
			{Title: "Junior Dev", Company: "Startup", StartDate: "2021-01"},
			{Title: "Senior Dev", Company: "Bigcorp", StartDate: "2023-06"},
		},
		Status: models.StatusActive,
	}}
	handler := newCompaniesHandler(t, mocks)

	req := asCandidate(httptest.NewRequest(http.MethodGet, "/company/candidates", nil), 1)
	w := httptest.NewRecorder()
	handler.Candidates(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate got %d", len(out))
	}

	// only the latest entries show up in the summary
	education := out[0]["education"].(map[string]any)
	if education["school"] != "New School" {
		t.Fatalf("expected latest education got %v", education)
	}
	experience := out[0]["experience"].(map[string]any)
	if experience["title"] != "Senior Dev" {
		t.Fatalf("expected latest experience got %v", experience)
	}
}

func TestCandidateDetails(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Candidates.Stored = []*models.Candidate{{
		ID: 1, FirstName: "Alice", LastName: "Doe",
		Email:  "alice@example.com",
		Resume: "cv.pdf",
		Education: []models.Education{
			{School: "School", Degree: "BSc", StartDate: "2015-09"},
		},
		Status: models.StatusActive,
	}}
	handler := newCompaniesHandler(t, mocks)

	req := asCandidate(httptest.NewRequest(http.MethodGet, "/company/candidates/1", nil), 2)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	handler.CandidateDetails(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["firstName"] != "Alice" {
		t.Fatalf("unexpected details: %v", body)
	}
	if body["resume_url"] != "/uploads/cv.pdf" {
		t.Fatalf("unexpected resume url: %v", body["resume_url"])
	}
	// the detail view carries the full history
	if got := body["educations"].([]any); len(got) != 1 {
		t.Fatalf("expected full education list got %v", got)
	}

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/company/candidates/999", nil), map[string]string{"id": "999"})
	w = httptest.NewRecorder()
	handler.CandidateDetails(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
