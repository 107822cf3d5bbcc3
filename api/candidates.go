package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/growcoach/jobboard/internal/validate"
	"github.com/growcoach/jobboard/internal/workflow"
	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

type CandidatesHandler struct {
	candidates    repository.CandidateRepo
	companies     repository.CompanyRepo
	engine        *workflow.Engine
	validator     *validate.Validator
	uploadBaseURL string
}

func NewCandidatesHandler(
	candidates repository.CandidateRepo,
	companies repository.CompanyRepo,
	engine *workflow.Engine,
	validator *validate.Validator,
	uploadBaseURL string,
) *CandidatesHandler {
	return &CandidatesHandler{
		candidates:    candidates,
		companies:     companies,
		engine:        engine,
		validator:     validator,
		uploadBaseURL: uploadBaseURL,
	}
}

type candidateSignupRequest struct {
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Email      string              `json:"email"`
	Password   string              `json:"password"`
	Phone      string              `json:"phone"`
	Location   string              `json:"location"`
	Bio        string              `json:"bio"`
	Skills     []string            `json:"skills"`
	Education  []models.Education  `json:"education"`
	Experience []models.Experience `json:"experience"`
	Avatar     string              `json:"avatar"`
	Resume     string              `json:"resume"`
}

func (h *CandidatesHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(r.Context(), "candidate_signup", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req candidateSignupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// email uniqueness is enforced jointly across candidates and companies
	if existing, err := h.candidates.GetCandidateByEmail(ctx, req.Email); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Email already registered", http.StatusBadRequest)
		return
	}
	if existing, err := h.companies.GetCompanyByEmail(ctx, req.Email); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Email already registered", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	candidate := models.Candidate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Location:     req.Location,
		Bio:          req.Bio,
		Skills:       req.Skills,
		Education:    req.Education,
		Experience:   req.Experience,
		Avatar:       req.Avatar,
		Resume:       req.Resume,
		Status:       models.StatusPending,
	}

	id, err := h.candidates.CreateCandidate(ctx, &candidate)
	if err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	}
	candidate.ID = id

	// best-effort; the registration stands even if the admin inbox write fails
	if err := h.engine.NotifyNewCandidate(ctx, &candidate); err != nil {
		logger.Error("notify new candidate", "candidate_id", id, "err", err)
	}

	resp := map[string]any{
		"success":      true,
		"message":      "Candidate created successfully. Your account is pending approval.",
		"status":       models.StatusPending,
		"candidate_id": id,
	}
	if candidate.Avatar != "" {
		resp["avatar_url"] = h.uploadBaseURL + "/" + candidate.Avatar
	}
	if candidate.Resume != "" {
		resp["resume_url"] = h.uploadBaseURL + "/" + candidate.Resume
	}

	writeJSON(w, resp, http.StatusCreated)
}

func (h *CandidatesHandler) candidateProfile(c *models.Candidate) map[string]any {
	profile := map[string]any{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"location":   c.Location,
		"bio":        c.Bio,
		"skills":     c.Skills,
		"status":     c.Status,
		"education":  c.Education,
		"experience": c.Experience,
		"created":    c.Created,
		"updated":    c.Updated,
	}
	if c.Avatar != "" {
		profile["avatar_url"] = h.uploadBaseURL + "/" + c.Avatar
	}
	if c.Resume != "" {
		profile["resume_url"] = h.uploadBaseURL + "/" + c.Resume
	}

	return profile
}

func (h *CandidatesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	candidate, err := h.candidates.GetCandidateByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if candidate == nil {
		writeError(w, "Candidate not found", http.StatusNotFound)
		return
	}

	writeJSON(w, h.candidateProfile(candidate), http.StatusOK)
}

type candidateUpdateRequest struct {
	FirstName  *string              `json:"first_name"`
	LastName   *string              `json:"last_name"`
	Email      *string              `json:"email"`
	Phone      *string              `json:"phone"`
	Location   *string              `json:"location"`
	Bio        *string              `json:"bio"`
	Skills     *[]string            `json:"skills"`
	Education  *[]models.Education  `json:"education"`
	Experience *[]models.Experience `json:"experience"`
	Avatar     *string              `json:"avatar"`
	Resume     *string              `json:"resume"`
}

func (h *CandidatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req candidateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	candidate, err := h.candidates.GetCandidateByID(ctx, userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if candidate == nil {
		writeError(w, "Candidate not found", http.StatusNotFound)
		return
	}

	if req.FirstName != nil {
		candidate.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		candidate.LastName = *req.LastName
	}
	if req.Email != nil {
		if *req.Email == "" {
			writeError(w, "Email is required", http.StatusBadRequest)
			return
		}
		candidate.Email = *req.Email
	}
	if req.Phone != nil {
		candidate.Phone = *req.Phone
	}
	if req.Location != nil {
		candidate.Location = *req.Location
	}
	if req.Bio != nil {
		candidate.Bio = *req.Bio
	}
	if req.Skills != nil {
		candidate.Skills = *req.Skills
	}
	if req.Education != nil {
		candidate.Education = *req.Education
	}
	if req.Experience != nil {
		candidate.Experience = *req.Experience
	}
	if req.Avatar != nil {
		candidate.Avatar = *req.Avatar
	}
	if req.Resume != nil {
		candidate.Resume = *req.Resume
	}

	if err := h.candidates.UpdateCandidate(ctx, candidate); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	updated, err := h.candidates.GetCandidateByID(ctx, userID)
	if err != nil || updated == nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.candidateProfile(updated), http.StatusOK)
}

type saveJobRequest struct {
	Action string `json:"action"`
}

func (h *CandidatesHandler) SaveJob(w http.ResponseWriter, r *http.Request) {
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

	var req saveJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" {
		req.Action = "save"
	}

	ctx := r.Context()
	candidate, err := h.candidates.GetCandidateByID(ctx, userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if candidate == nil {
		writeError(w, "Candidate not found", http.StatusNotFound)
		return
	}

	if req.Action == "save" {
		err = h.candidates.SaveJob(ctx, userID, jobID)
	} else {
		err = h.candidates.UnsaveJob(ctx, userID, jobID)
	}
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true}, http.StatusOK)
}

func (h *CandidatesHandler) SavedJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	candidate, err := h.candidates.GetCandidateByID(ctx, userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if candidate == nil {
		writeError(w, "Candidate not found", http.StatusNotFound)
		return
	}

	saved, err := h.candidates.ListSavedJobs(ctx, userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if saved == nil {
		saved = []int64{}
	}

	writeJSON(w, map[string]any{"saved_jobs": saved}, http.StatusOK)
}
