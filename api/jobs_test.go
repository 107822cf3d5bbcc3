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
	"github.com/growcoach/jobboard/internal/workflow"
	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository/mock"
)

func newJobsHandler(m *mock.Mocks) *api.JobsHandler {
	engine := workflow.NewEngine(m.Candidates, m.Companies, m.Jobs, m.Notifications, nil)
	return api.NewJobsHandler(m.Jobs, m.Companies, m.Candidates, engine, "/uploads")
}

func TestAddJob(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantBody   string
	}{
		{
			name: "MissingTitle",
			body: map[string]any{
				"salary": "100k", "looking_for_profile": "backend", "required_experience": "3y",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "job title is required",
		},
		{
			name: "MissingSalary",
			body: map[string]any{
				"job_title": "Backend Engineer", "looking_for_profile": "backend", "required_experience": "3y",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "salary is required",
		},
		{
			name: "SkillsAsList",
			body: map[string]any{
				"job_title": "Backend Engineer", "salary": "100k",
				"looking_for_profile": "Backend", "required_experience": "3y",
				"required_skills": []string{"Go", " SQL "},
			},
			wantStatus: http.StatusCreated,
			wantBody:   "Job added successfully",
		},
		{
			name: "SkillsAsCommaString",
			body: map[string]any{
				"job_title": "Backend Engineer", "salary": "100k",
				"looking_for_profile": "Backend", "required_experience": "3y",
				"required_skills": "Go, SQL,docker",
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			handler := newJobsHandler(mocks)

			b, _ := json.Marshal(tt.body)
			req := asCandidate(httptest.NewRequest(http.MethodPost, "/company/addJob", bytes.NewReader(b)), 1)
			w := httptest.NewRecorder()
			handler.Add(w, req)

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

			if res.StatusCode == http.StatusCreated {
				stored := mocks.Jobs.Stored[0]
				if stored.Status != models.JobStatusActive {
					t.Fatalf("new jobs must start active got %q", stored.Status)
				}
				if stored.Title != "backend engineer" {
					t.Fatalf("title must be lowercased got %q", stored.Title)
				}
				for _, s := range stored.Skills {
					if s != strings.TrimSpace(strings.ToLower(s)) {
						t.Fatalf("skills must be normalized got %q", s)
					}
				}
			}
		})
	}
}

func TestEditJob_Ownership(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []*models.Job{{ID: 10, CompanyID: 1, Title: "old title", Salary: "90k"}}
	handler := newJobsHandler(mocks)

	edit := func(companyID int64, jobID string, body map[string]any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := asCandidate(httptest.NewRequest(http.MethodPut, "/company/editJob/"+jobID, bytes.NewReader(b)), companyID)
		req = mux.SetURLVars(req, map[string]string{"id": jobID})
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		return w
	}

	// another company cannot see the job
	if w := edit(2, "10", map[string]any{"salary": "120k"}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign job got %d", w.Code)
	}
	if got := mocks.Jobs.Stored[0].Salary; got != "90k" {
		t.Fatalf("foreign edit must not stick: %q", got)
	}

	// partial edit by the owner
	if w := edit(1, "10", map[string]any{"salary": "120k"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	stored := mocks.Jobs.Stored[0]
	if stored.Salary != "120k" || stored.Title != "old title" {
		t.Fatalf("unexpected job after edit: %#v", stored)
	}
}

func TestUpdateJobStatus(t *testing.T) {
	tests := []struct {
		name       string
		companyID  int64
		status     string
		wantStatus int
		wantBody   string
	}{
		{"Close", 1, models.JobStatusClosed, http.StatusOK, "Job status updated successfully"},
		{"Reopen", 1, models.JobStatusActive, http.StatusOK, ""},
		{"InvalidStatus", 1, "archived", http.StatusBadRequest, "Invalid status"},
		{"ForeignJob", 2, models.JobStatusClosed, http.StatusNotFound, "Job not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			mocks.Jobs.Stored = []*models.Job{{ID: 10, CompanyID: 1, Status: models.JobStatusActive}}
			handler := newJobsHandler(mocks)

			b, _ := json.Marshal(map[string]string{"status": tt.status})
			req := asCandidate(httptest.NewRequest(http.MethodPatch, "/company/jobs/10/status", bytes.NewReader(b)), tt.companyID)
			req = mux.SetURLVars(req, map[string]string{"id": "10"})
			w := httptest.NewRecorder()
			handler.UpdateStatus(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Fatalf("body %q does not contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestApplyHandler(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []*models.Job{{ID: 10, CompanyID: 1, Status: models.JobStatusActive}}
	handler := newJobsHandler(mocks)

	apply := func(jobID string, body map[string]any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/jobs/"+jobID+"/apply", bytes.NewReader(b))
		req = mux.SetURLVars(req, map[string]string{"id": jobID})
		w := httptest.NewRecorder()
		handler.Apply(w, req)
		return w
	}

	if w := apply("10", map[string]any{}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without candidate_id got %d", w.Code)
	}
	if w := apply("10", map[string]any{"candidate_id": 5}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// second application is rejected without growing the list
	w := apply("10", map[string]any{"candidate_id": 5})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate application got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Already applied") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if got := len(mocks.Jobs.Applicants[10]); got != 1 {
		t.Fatalf("expected 1 applicant got %d", got)
	}

	if w := apply("999", map[string]any{"candidate_id": 5}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown job got %d", w.Code)
	}
}

func TestListPublicJobs(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Companies.Stored = []*models.Company{{ID: 1, Name: "Acme", Location: "Berlin", Logo: "acme.png"}}
	mocks.Jobs.Stored = []*models.Job{
		{ID: 10, CompanyID: 1, Title: "backend engineer", Status: models.JobStatusActive},
		{ID: 11, CompanyID: 1, Title: "frontend engineer", Status: models.JobStatusClosed},
	}
	mocks.Jobs.Applicants = map[int64][]int64{10: {5, 6}}
	handler := newJobsHandler(mocks)

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	w := httptest.NewRecorder()
	handler.ListPublic(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var jobs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs got %d", len(jobs))
	}

	for _, j := range jobs {
		if j["company_name"] != "Acme" {
			t.Fatalf("expected company enrichment: %v", j)
		}
		if j["company_logo"] != "/uploads/acme.png" {
			t.Fatalf("unexpected logo url: %v", j["company_logo"])
		}
	}

	var withApplicants map[string]any
	for _, j := range jobs {
		if j["id"].(float64) == 10 {
			withApplicants = j
		}
	}
	if got := withApplicants["applicants"].([]any); len(got) != 2 {
		t.Fatalf("expected 2 applicants got %v", got)
	}
}

func TestJobApplicantsListing(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []*models.Job{{ID: 10, CompanyID: 1}}
	mocks.Jobs.Applicants = map[int64][]int64{10: {5}}
	mocks.Candidates.Stored = []*models.Candidate{{
		ID: 5, FirstName: "Alice", LastName: "Doe",
		Email: "alice@example.com", Resume: "cv.pdf",
	}}
	handler := newJobsHandler(mocks)

	req := asCandidate(httptest.NewRequest(http.MethodGet, "/company/jobs/10/applicants", nil), 1)
	req = mux.SetURLVars(req, map[string]string{"id": "10"})
	w := httptest.NewRecorder()
	handler.Applicants(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 applicant got %d", len(out))
	}
	if out[0]["firstName"] != "Alice" || out[0]["resume_url"] != "/uploads/cv.pdf" {
		t.Fatalf("unexpected applicant: %v", out[0])
	}

	// a company cannot read another company's applicants
	req = asCandidate(httptest.NewRequest(http.MethodGet, "/company/jobs/10/applicants", nil), 2)
	req = mux.SetURLVars(req, map[string]string{"id": "10"})
	w = httptest.NewRecorder()
	handler.Applicants(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
