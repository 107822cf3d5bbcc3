package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/growcoach/jobboard/internal/auth"
	"github.com/growcoach/jobboard/internal/config"
	"github.com/growcoach/jobboard/internal/db"
	"github.com/growcoach/jobboard/internal/repository/sqlite"
	"github.com/growcoach/jobboard/internal/validate"
	"github.com/growcoach/jobboard/internal/workflow"
)

// SetupRoutes wires repositories, auth, the workflow engine, and all HTTP
// handlers onto a router.
func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	repo := sqlite.New(database, logger)

	validator, err := validate.New()
	if err != nil {
		return nil, err
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenDuration)
	registry := auth.NewRegistry(repo)
	authenticator := auth.NewAuthenticator(repo, repo, repo)
	engine := workflow.NewEngine(repo, repo, repo, repo, logger)

	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(authenticator, issuer, registry)
	candidatesHandler := NewCandidatesHandler(repo, repo, engine, validator, cfg.UploadBaseURL)
	companiesHandler := NewCompaniesHandler(repo, repo, engine, validator, cfg.UploadBaseURL)
	jobsHandler := NewJobsHandler(repo, repo, repo, engine, cfg.UploadBaseURL)
	adminHandler := NewAdminHandler(repo, repo, repo, engine, cfg.UploadBaseURL)

	authMW := AuthMiddleware(issuer, registry)
	optionalAuthMW := OptionalAuthMiddleware(issuer, registry)

	// public surface
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET", "OPTIONS")
	r.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/candidate/signup", candidatesHandler.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/company/signup", companiesHandler.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/jobs", jobsHandler.ListPublic).Methods("GET", "OPTIONS")
	r.Handle("/check-auth", optionalAuthMW(http.HandlerFunc(authHandler.CheckAuth))).Methods("GET", "OPTIONS")
	r.Handle("/logout", authMW(http.HandlerFunc(authHandler.Logout))).Methods("POST", "OPTIONS")

	// candidate surface
	candidate := r.PathPrefix("/candidate").Subrouter()
	candidate.Use(authMW)
	candidate.HandleFunc("/profile", candidatesHandler.Profile).Methods("GET", "OPTIONS")
	candidate.HandleFunc("/update", candidatesHandler.Update).Methods("PUT", "OPTIONS")
	candidate.HandleFunc("/save-job/{id:[0-9]+}", candidatesHandler.SaveJob).Methods("POST", "OPTIONS")
	candidate.HandleFunc("/saved-jobs", candidatesHandler.SavedJobs).Methods("GET", "OPTIONS")

	// company surface
	company := r.PathPrefix("/company").Subrouter()
	company.Use(authMW)
	company.HandleFunc("/profile", companiesHandler.Profile).Methods("GET", "OPTIONS")
	company.HandleFunc("/update", companiesHandler.Update).Methods("PUT", "OPTIONS")
	company.HandleFunc("/jobs", jobsHandler.CompanyJobs).Methods("GET", "OPTIONS")
	company.HandleFunc("/addJob", jobsHandler.Add).Methods("POST", "OPTIONS")
	company.HandleFunc("/editJob/{id:[0-9]+}", jobsHandler.Edit).Methods("PUT", "OPTIONS")
	company.HandleFunc("/jobs/{id:[0-9]+}/status", jobsHandler.UpdateStatus).Methods("PATCH", "OPTIONS")
	company.HandleFunc("/jobs/{id:[0-9]+}/applicants", jobsHandler.Applicants).Methods("GET", "OPTIONS")
	company.HandleFunc("/candidates", companiesHandler.Candidates).Methods("GET", "OPTIONS")
	company.HandleFunc("/candidates/{id:[0-9]+}", companiesHandler.CandidateDetails).Methods("GET", "OPTIONS")

	// application surface
	jobs := r.PathPrefix("/jobs").Subrouter()
	jobs.Use(authMW)
	jobs.HandleFunc("/{id:[0-9]+}/apply", jobsHandler.Apply).Methods("POST", "OPTIONS")

	// verification surface
	apiRoutes := r.PathPrefix("/api").Subrouter()
	apiRoutes.Use(authMW)
	apiRoutes.HandleFunc("/request-verification", companiesHandler.RequestVerification).Methods("POST", "OPTIONS")
	apiRoutes.HandleFunc("/company/verification-status", companiesHandler.VerificationStatus).Methods("GET", "OPTIONS")

	apiAdmin := apiRoutes.PathPrefix("/admin").Subrouter()
	apiAdmin.Use(RequireAdmin)
	apiAdmin.HandleFunc("/notifications", adminHandler.Notifications).Methods("GET", "OPTIONS")
	apiAdmin.HandleFunc("/notifications/{id:[0-9]+}", adminHandler.DeleteNotification).Methods("DELETE", "OPTIONS")

	// admin surface
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(authMW)
	admin.Use(RequireAdmin)
	admin.HandleFunc("/users", adminHandler.Users).Methods("GET", "OPTIONS")
	admin.HandleFunc("/candidates/{id:[0-9]+}/status", adminHandler.CandidateStatus).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/candidates/{id:[0-9]+}/approve", adminHandler.ApproveCandidate).Methods("POST", "OPTIONS")
	admin.HandleFunc("/candidates/{id:[0-9]+}/admin-cv", adminHandler.AdminCV).Methods("POST", "OPTIONS")
	admin.HandleFunc("/companies/{id:[0-9]+}/status", adminHandler.CompanyStatus).Methods("PUT", "OPTIONS")

	return r, nil
}
