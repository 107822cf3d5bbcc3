package api

import (
	"encoding/json"
	"errors"
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

type CompaniesHandler struct {
	companies     repository.CompanyRepo
	candidates    repository.CandidateRepo
	engine        *workflow.Engine
	validator     *validate.Validator
	uploadBaseURL string
}

func NewCompaniesHandler(
	companies repository.CompanyRepo,
	candidates repository.CandidateRepo,
	engine *workflow.Engine,
	validator *validate.Validator,
	uploadBaseURL string,
) *CompaniesHandler {
	return &CompaniesHandler{
		companies:     companies,
		candidates:    candidates,
		engine:        engine,
		validator:     validator,
		uploadBaseURL: uploadBaseURL,
	}
}

type companySignupRequest struct {
	Name        string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Industry    string `json:"industry"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Description string `json:"description"`
	CompanySize string `json:"company_size"`
	FoundedYear string `json:"founded_year"`
	Logo        string `json:"logo"`
}

func (h *CompaniesHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(r.Context(), "company_signup", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req companySignupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// email uniqueness is enforced jointly across candidates and companies
	if existing, err := h.companies.GetCompanyByEmail(ctx, req.Email); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Email already registered", http.StatusBadRequest)
		return
	}
	if existing, err := h.candidates.GetCandidateByEmail(ctx, req.Email); err != nil {
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

	company := models.Company{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Location:     req.Location,
		Website:      req.Website,
		Description:  req.Description,
		Industry:     req.Industry,
		CompanySize:  req.CompanySize,
		FoundedYear:  req.FoundedYear,
		Logo:         req.Logo,
		Verified:     false,
		Status:       models.StatusActive,
	}

	id, err := h.companies.CreateCompany(ctx, &company)
	if err != nil {
		writeError(w, "Error creating company", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"success":    true,
		"message":    "Company registered successfully",
		"company_id": id,
	}
	if company.Logo != "" {
		resp["logo_url"] = h.uploadBaseURL + "/" + company.Logo
	}

	writeJSON(w, resp, http.StatusCreated)
}

func (h *CompaniesHandler) companyProfile(c *models.Company) map[string]any {
	profile := map[string]any{
		"company_name": c.Name,
		"email":        c.Email,
		"phone":        c.Phone,
		"location":     c.Location,
		"website":      c.Website,
		"description":  c.Description,
		"industry":     c.Industry,
		"company_size": c.CompanySize,
		"founded_year": c.FoundedYear,
		"verified":     c.Verified,
		"status":       c.Status,
	}
	if c.Logo != "" {
		profile["logo_url"] = h.uploadBaseURL + "/" + c.Logo
	} else {
		profile["logo_url"] = nil
	}

	return profile
}

func (h *CompaniesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	company, err := h.companies.GetCompanyByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if company == nil {
		writeError(w, "Company not found", http.StatusNotFound)
		return
	}

	writeJSON(w, h.companyProfile(company), http.StatusOK)
}

type companyUpdateRequest struct {
	Name        *string `json:"company_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"company_size"`
	FoundedYear *string `json:"founded_year"`
	Logo        *string `json:"logo"`
}

func (h *CompaniesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req companyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	company, err := h.companies.GetCompanyByID(ctx, userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if company == nil {
		writeError(w, "Company not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			writeError(w, "Company name is required", http.StatusBadRequest)
			return
		}
		company.Name = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			writeError(w, "Email is required", http.StatusBadRequest)
			return
		}
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Location != nil {
		company.Location = *req.Location
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.CompanySize != nil {
		company.CompanySize = *req.CompanySize
	}
	if req.FoundedYear != nil {
		company.FoundedYear = *req.FoundedYear
	}
	if req.Logo != nil {
		company.Logo = *req.Logo
	}

	if err := h.companies.UpdateCompany(ctx, company); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	updated, err := h.companies.GetCompanyByID(ctx, userID)
	if err != nil || updated == nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.companyProfile(updated), http.StatusOK)
}

func (h *CompaniesHandler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.engine.RequestVerification(r.Context(), userID); err != nil {
		var notFound *workflow.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, "Company not found", http.StatusNotFound)
			return
		}

		logger.Error("request verification", "company_id", userID, "err", err)
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Verification request sent"}, http.StatusOK)
}

func (h *CompaniesHandler) VerificationStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	pending, err := h.engine.VerificationPending(r.Context(), userID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"pending": pending}, http.StatusOK)
}

// candidateSummary is the listing shape companies see when browsing
// candidates; only the latest education and experience entries are included.
func (h *CompaniesHandler) candidateSummary(c *models.Candidate) map[string]any {
	var latestEducation any
	if len(c.Education) > 0 {
		latestEducation = c.Education[len(c.Education)-1]
	}
	var latestExperience any
	if len(c.Experience) > 0 {
		latestExperience = c.Experience[len(c.Experience)-1]
	}

	summary := map[string]any{
		"id":         c.ID,
		"firstName":  c.FirstName,
		"lastName":   c.LastName,
		"email":      c.Email,
		"skills":     c.Skills,
		"education":  latestEducation,
		"experience": latestExperience,
	}
	if c.Resume != "" {
		summary["resume_url"] = h.uploadBaseURL + "/" + c.Resume
	}
	if c.AdminCV != "" {
		summary["adminCV"] = h.uploadBaseURL + "/" + c.AdminCV
	}

	return summary
}

func (h *CompaniesHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.ListCandidates(r.Context())
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(candidates))
	for i := range candidates {
		out = append(out, h.candidateSummary(&candidates[i]))
	}

	writeJSON(w, out, http.StatusOK)
}

func (h *CompaniesHandler) CandidateDetails(w http.ResponseWriter, r *http.Request) {
	candidateID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	candidate, err := h.candidates.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if candidate == nil {
		writeError(w, "Candidate not found", http.StatusNotFound)
		return
	}

	details := map[string]any{
		"id":          candidate.ID,
		"firstName":   candidate.FirstName,
		"lastName":    candidate.LastName,
		"email":       candidate.Email,
		"phone":       candidate.Phone,
		"location":    candidate.Location,
		"skills":      candidate.Skills,
		"educations":  candidate.Education,
		"experiences": candidate.Experience,
		"bio":         candidate.Bio,
	}
	if candidate.Resume != "" {
		details["resume_url"] = h.uploadBaseURL + "/" + candidate.Resume
	}

	writeJSON(w, details, http.StatusOK)
}
