package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/growcoach/jobboard/internal/workflow"
	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

type JobsHandler struct {
	jobs          repository.JobRepo
	companies     repository.CompanyRepo
	candidates    repository.CandidateRepo
	engine        *workflow.Engine
	uploadBaseURL string
}

func NewJobsHandler(
	jobs repository.JobRepo,
	companies repository.CompanyRepo,
	candidates repository.CandidateRepo,
	engine *workflow.Engine,
	uploadBaseURL string,
) *JobsHandler {
	return &JobsHandler{
		jobs:          jobs,
		companies:     companies,
		candidates:    candidates,
		engine:        engine,
		uploadBaseURL: uploadBaseURL,
	}
}

// skillList accepts either a JSON array of strings or a single
// comma-separated string; skills are normalized to lower case.
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			if v = strings.TrimSpace(strings.ToLower(v)); v != "" {
				out = append(out, v)
			}
		}
		*s = out
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(strings.ToLower(v)); v != "" {
			out = append(out, v)
		}
	}
	*s = out
	return nil
}

func (h *JobsHandler) jobView(j *models.Job, applicants []int64) map[string]any {
	if applicants == nil {
		applicants = []int64{}
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}

	return map[string]any{
		"id":                  j.ID,
		"company_id":          j.CompanyID,
		"job_title":           j.Title,
		"salary":              j.Salary,
		"looking_for_profile": j.Profile,
		"required_experience": j.Experience,
		"required_skills":     skills,
		"status":              j.Status,
		"created":             j.Created,
		"applicants":          applicants,
	}
}

// ListPublic serves the open job board. Every posting is returned with its
// current status; filtering by status is the client's concern.
func (h *JobsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobs, err := h.jobs.ListJobs(ctx)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		applicants, err := h.jobs.ListApplicants(ctx, j.ID)
		if err != nil {
			writeError(w, "Database error", http.StatusInternalServerError)
			return
		}

		view := h.jobView(j, applicants)
		if company, err := h.companies.GetCompanyByID(ctx, j.CompanyID); err == nil && company != nil {
			view["company_name"] = company.Name
			view["company_location"] = company.Location
			if company.Logo != "" {
				view["company_logo"] = h.uploadBaseURL + "/" + company.Logo
			}
		}
		out = append(out, view)
	}

	writeJSON(w, out, http.StatusOK)
}

func (h *JobsHandler) CompanyJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	jobs, err := h.jobs.ListJobsByCompany(ctx, userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(jobs))
	for i := range jobs {
		applicants, err := h.jobs.ListApplicants(ctx, jobs[i].ID)
		if err != nil {
			writeError(w, "Database error", http.StatusInternalServerError)
			return
		}
		out = append(out, h.jobView(&jobs[i], applicants))
	}

	writeJSON(w, out, http.StatusOK)
}

type addJobRequest struct {
	Title      string    `json:"job_title"`
	Salary     string    `json:"salary"`
	Profile    string    `json:"looking_for_profile"`
	Experience string    `json:"required_experience"`
	Skills     skillList `json:"required_skills"`
}

func (h *JobsHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req addJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	for field, value := range map[string]string{
		"job title":           req.Title,
		"salary":              req.Salary,
		"looking for profile": req.Profile,
		"required experience": req.Experience,
	} {
		if value == "" {
			writeError(w, field+" is required", http.StatusBadRequest)
			return
		}
	}

	job := models.Job{
		CompanyID:  userID,
		Title:      strings.ToLower(req.Title),
		Salary:     req.Salary,
		Profile:    strings.ToLower(req.Profile),
		Experience: req.Experience,
		Skills:     req.Skills,
		Status:     models.JobStatusActive,
	}

	id, err := h.jobs.CreateJob(r.Context(), &job)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"message": "Job added successfully",
		"job_id":  id,
	}, http.StatusCreated)
}

type editJobRequest struct {
	Title      *string    `json:"job_title"`
	Salary     *string    `json:"salary"`
	Profile    *string    `json:"looking_for_profile"`
	Experience *string    `json:"required_experience"`
	Skills     *skillList `json:"required_skills"`
}

func (h *JobsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	var req editJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	job, err := h.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if job == nil || job.CompanyID != userID {
		writeError(w, "Job not found", http.StatusNotFound)
		return
	}

	if req.Title != nil {
		job.Title = strings.ToLower(*req.Title)
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Profile != nil {
		job.Profile = strings.ToLower(*req.Profile)
	}
	if req.Experience != nil {
		job.Experience = *req.Experience
	}
	if req.Skills != nil {
		job.Skills = *req.Skills
	}

	if err := h.jobs.UpdateJob(ctx, job); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Job updated successfully"}, http.StatusOK)
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	var req jobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.engine.SetJobStatus(r.Context(), userID, jobID, req.Status); err != nil {
		var notFound *workflow.NotFoundError
		switch {
		case errors.Is(err, workflow.ErrInvalidAction):
			writeError(w, "Invalid status", http.StatusBadRequest)
		case errors.As(err, &notFound):
			writeError(w, "Job not found", http.StatusNotFound)
		default:
			logger.Error("update job status", "job_id", jobID, "err", err)
			writeError(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"message": "Job status updated successfully",
		"status":  req.Status,
	}, http.StatusOK)
}

func (h *JobsHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	job, err := h.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if job == nil || job.CompanyID != userID {
		writeError(w, "Job not found", http.StatusNotFound)
		return
	}

	ids, err := h.jobs.ListApplicants(ctx, jobID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		candidate, err := h.candidates.GetCandidateByID(ctx, id)
		if err != nil {
			writeError(w, "Database error", http.StatusInternalServerError)
			return
		}
		if candidate == nil {
			continue
		}
		entry := map[string]any{
			"id":        candidate.ID,
			"firstName": candidate.FirstName,
			"lastName":  candidate.LastName,
			"email":     candidate.Email,
		}
		if candidate.Resume != "" {
			entry["resume_url"] = h.uploadBaseURL + "/" + candidate.Resume
		}
		out = append(out, entry)
	}

	writeJSON(w, out, http.StatusOK)
}

type applyRequest struct {
	CandidateID int64 `json:"candidate_id"`
}

func (h *JobsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.CandidateID == 0 {
		// fall back to the authenticated candidate
		if id, ok := requestUserID(r); ok {
			req.CandidateID = id
		}
	}
	if req.CandidateID == 0 {
		writeError(w, "Missing candidate_id", http.StatusBadRequest)
		return
	}

	if err := h.engine.Apply(r.Context(), jobID, req.CandidateID); err != nil {
		var notFound *workflow.NotFoundError
		switch {
		case errors.As(err, &notFound):
			writeError(w, "Job not found", http.StatusNotFound)
		case errors.Is(err, workflow.ErrAlreadyApplied):
			writeError(w, "Already applied", http.StatusBadRequest)
		default:
			logger.Error("apply to job", "job_id", jobID, "err", err)
			writeError(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Applied successfully"}, http.StatusOK)
}
