package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/growcoach/jobboard/internal/workflow"
	"github.com/growcoach/jobboard/pkg/models"
	"github.com/growcoach/jobboard/pkg/repository"
)

type AdminHandler struct {
	candidates    repository.CandidateRepo
	companies     repository.CompanyRepo
	notifications repository.NotificationRepo
	engine        *workflow.Engine
	uploadBaseURL string
}

func NewAdminHandler(
	candidates repository.CandidateRepo,
	companies repository.CompanyRepo,
	notifications repository.NotificationRepo,
	engine *workflow.Engine,
	uploadBaseURL string,
) *AdminHandler {
	return &AdminHandler{
		candidates:    candidates,
		companies:     companies,
		notifications: notifications,
		engine:        engine,
		uploadBaseURL: uploadBaseURL,
	}
}

type adminUser struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Verified *bool  `json:"verified,omitempty"`
	AdminCV  string `json:"adminCV,omitempty"`
	Created  int64  `json:"created"`
}

// Users returns the merged candidate and company listing for the admin
// dashboard. Query parameters: type (candidate|company), status, name
// (substring, case-insensitive), sort_order (asc|desc by creation time).
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typeFilter := q.Get("type")
	statusFilter := q.Get("status")
	nameFilter := strings.ToLower(q.Get("name"))
	sortOrder := q.Get("sort_order")

	ctx := r.Context()
	var users []adminUser

	if typeFilter == "" || typeFilter == models.UserTypeCandidate {
		candidates, err := h.candidates.ListCandidates(ctx)
		if err != nil {
			writeError(w, "Database error", http.StatusInternalServerError)
			return
		}
		for i := range candidates {
			c := &candidates[i]
			status := c.Status
			if status == "" {
				status = models.StatusPending
			}
			u := adminUser{
				ID:      c.ID,
				Type:    models.UserTypeCandidate,
				Name:    c.FirstName + " " + c.LastName,
				Email:   c.Email,
				Status:  status,
				Created: c.Created,
			}
			if c.AdminCV != "" {
				u.AdminCV = h.uploadBaseURL + "/" + c.AdminCV
			}
			users = append(users, u)
		}
	}

	if typeFilter == "" || typeFilter == models.UserTypeCompany {
		companies, err := h.companies.ListCompanies(ctx)
		if err != nil {
			writeError(w, "Database error", http.StatusInternalServerError)
			return
		}
		for i := range companies {
			c := &companies[i]
			status := c.Status
			if status == "" {
				status = models.StatusActive
			}
			verified := c.Verified
			users = append(users, adminUser{
				ID:       c.ID,
				Type:     models.UserTypeCompany,
				Name:     c.Name,
				Email:    c.Email,
				Status:   status,
				Verified: &verified,
				Created:  c.Created,
			})
		}
	}

	filtered := users[:0]
	for _, u := range users {
		if statusFilter != "" && u.Status != statusFilter {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(u.Name), nameFilter) {
			continue
		}
		filtered = append(filtered, u)
	}
	users = filtered

	sort.SliceStable(users, func(i, j int) bool {
		if sortOrder == "asc" {
			return users[i].Created < users[j].Created
		}
		return users[i].Created > users[j].Created
	})

	if users == nil {
		users = []adminUser{}
	}

	writeJSON(w, users, http.StatusOK)
}

type adminActionRequest struct {
	Action string `json:"action"`
}

func (h *AdminHandler) CandidateStatus(w http.ResponseWriter, r *http.Request) {
	candidateID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	var req adminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	status, err := h.engine.CandidateAction(r.Context(), candidateID, req.Action)
	if err != nil {
		var notFound *workflow.NotFoundError
		switch {
		case errors.Is(err, workflow.ErrInvalidAction):
			writeError(w, "Invalid action. Use 'block' or 'unblock'", http.StatusBadRequest)
		case errors.As(err, &notFound):
			writeError(w, "Candidate not found", http.StatusNotFound)
		default:
			logger.Error("candidate status action", "candidate_id", candidateID, "err", err)
			writeError(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"message": "Candidate " + req.Action + "ed successfully",
		"status":  status,
	}, http.StatusOK)
}

func (h *AdminHandler) ApproveCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	if err := h.engine.ApproveCandidate(r.Context(), candidateID); err != nil {
		var notFound *workflow.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, "Candidate not found", http.StatusNotFound)
			return
		}

		logger.Error("approve candidate", "candidate_id", candidateID, "err", err)
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"message": "Candidate approved successfully",
		"status":  models.StatusActive,
	}, http.StatusOK)
}

type adminCVRequest struct {
	Filename string `json:"filename"`
}

// AdminCV attaches a reviewed CV filename to a candidate record.
func (h *AdminHandler) AdminCV(w http.ResponseWriter, r *http.Request) {
	candidateID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	var req adminCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeError(w, "Missing filename", http.StatusBadRequest)
		return
	}

	modified, err := h.candidates.SetAdminCV(r.Context(), candidateID, req.Filename)
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if modified == 0 {
		writeError(w, "Candidate not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"message": "CV attached successfully",
		"cv_url":  h.uploadBaseURL + "/" + req.Filename,
	}, http.StatusOK)
}

func (h *AdminHandler) CompanyStatus(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid company id", http.StatusBadRequest)
		return
	}

	var req adminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	status, verified, err := h.engine.CompanyAction(r.Context(), companyID, req.Action)
	if err != nil {
		var notFound *workflow.NotFoundError
		switch {
		case errors.Is(err, workflow.ErrInvalidAction):
			writeError(w, "Invalid action. Use one of: verify, unverify, block, unblock", http.StatusBadRequest)
		case errors.As(err, &notFound):
			writeError(w, "Company not found", http.StatusNotFound)
		default:
			logger.Error("company status action", "company_id", companyID, "err", err)
			writeError(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]any{
		"success":  true,
		"message":  "Company updated successfully",
		"status":   status,
		"verified": verified,
	}, http.StatusOK)
}

func (h *AdminHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListNotifications(r.Context())
	if err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	writeJSON(w, notifications, http.StatusOK)
}

func (h *AdminHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid notification id", http.StatusBadRequest)
		return
	}

	if err := h.notifications.DeleteNotification(r.Context(), id); err != nil {
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Notification deleted"}, http.StatusOK)
}
