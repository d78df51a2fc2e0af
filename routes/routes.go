package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlasmoves/moveops/handlers"
	"github.com/atlasmoves/moveops/middleware"
	"github.com/atlasmoves/moveops/models"
)

// RegisterRoutes wires the full API. Staff can read everything and file
// their own time entries; managers run jobs, leads, and approvals; admin
// additionally manages user accounts.
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Public routes (no authentication required)
	r.HandleFunc("/api/v1/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// Protected API routes (require authentication)
	api := r.PathPrefix("/api/v1").Subrouter()
	// JWT first so the logger can attribute requests to a user.
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.RequestLogger)

	manager := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	admin := middleware.RequireRole(models.RoleAdmin)

	// Accounts
	api.Handle("/register", admin(http.HandlerFunc(handlers.Register))).Methods("POST")
	api.Handle("/users", admin(http.HandlerFunc(handlers.GetAllUsers))).Methods("GET")
	api.HandleFunc("/profile", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/change-password", handlers.ChangePassword).Methods("POST")

	// Leads
	api.HandleFunc("/leads", handlers.GetAllLeads).Methods("GET")
	api.Handle("/leads", manager(http.HandlerFunc(handlers.CreateLead))).Methods("POST")
	api.HandleFunc("/leads/{id}", handlers.GetLead).Methods("GET")
	api.Handle("/leads/{id}", manager(http.HandlerFunc(handlers.UpdateLead))).Methods("PUT")
	api.Handle("/leads/{id}", manager(http.HandlerFunc(handlers.DeleteLead))).Methods("DELETE")
	api.Handle("/leads/{id}/status", manager(http.HandlerFunc(handlers.TransitionLeadStatus))).Methods("POST")
	api.Handle("/leads/{id}/convert", manager(http.HandlerFunc(handlers.ConvertLead))).Methods("POST")

	// Jobs
	api.HandleFunc("/jobs", handlers.GetAllJobs).Methods("GET")
	api.Handle("/jobs", manager(http.HandlerFunc(handlers.CreateJob))).Methods("POST")
	api.HandleFunc("/jobs/{id}", handlers.GetJob).Methods("GET")
	api.Handle("/jobs/{id}", manager(http.HandlerFunc(handlers.UpdateJob))).Methods("PUT")
	api.Handle("/jobs/{id}", manager(http.HandlerFunc(handlers.DeleteJob))).Methods("DELETE")
	api.Handle("/jobs/{id}/status", manager(http.HandlerFunc(handlers.TransitionJobStatus))).Methods("POST")
	api.Handle("/jobs/{id}/complete", manager(http.HandlerFunc(handlers.CompleteJob))).Methods("POST")
	api.Handle("/jobs/{id}/payment", manager(http.HandlerFunc(handlers.SetJobPayment))).Methods("POST")

	// Clients
	api.HandleFunc("/clients", handlers.GetAllClients).Methods("GET")
	api.Handle("/clients", manager(http.HandlerFunc(handlers.CreateClient))).Methods("POST")
	api.HandleFunc("/clients/{id}", handlers.GetClient).Methods("GET")
	api.Handle("/clients/{id}", manager(http.HandlerFunc(handlers.UpdateClient))).Methods("PUT")
	api.Handle("/clients/{id}", admin(http.HandlerFunc(handlers.DeleteClient))).Methods("DELETE")
	api.HandleFunc("/clients/{id}/jobs", handlers.GetClientJobs).Methods("GET")

	// Employees
	api.HandleFunc("/employees", handlers.GetAllEmployees).Methods("GET")
	api.Handle("/employees", manager(http.HandlerFunc(handlers.CreateEmployee))).Methods("POST")
	api.HandleFunc("/employees/{id}", handlers.GetEmployee).Methods("GET")
	api.Handle("/employees/{id}", manager(http.HandlerFunc(handlers.UpdateEmployee))).Methods("PUT")
	api.Handle("/employees/{id}", manager(http.HandlerFunc(handlers.DeleteEmployee))).Methods("DELETE")

	// Time entries
	api.HandleFunc("/time-entries", handlers.GetAllTimeEntries).Methods("GET")
	api.HandleFunc("/time-entries", handlers.CreateTimeEntry).Methods("POST")
	api.HandleFunc("/time-entries/{id}", handlers.GetTimeEntry).Methods("GET")
	api.HandleFunc("/time-entries/{id}", handlers.UpdateTimeEntry).Methods("PUT")
	api.Handle("/time-entries/{id}", manager(http.HandlerFunc(handlers.DeleteTimeEntry))).Methods("DELETE")
	api.Handle("/time-entries/{id}/approve", manager(http.HandlerFunc(handlers.ApproveTimeEntry))).Methods("POST")
	api.Handle("/time-entries/{id}/reject", manager(http.HandlerFunc(handlers.RejectTimeEntry))).Methods("POST")
	api.Handle("/time-entries/{id}/reset", manager(http.HandlerFunc(handlers.ResetTimeEntry))).Methods("POST")
	api.Handle("/time-entries/{id}/payment", manager(http.HandlerFunc(handlers.SetTimeEntryPayment))).Methods("POST")

	// Dashboard and reports
	api.HandleFunc("/dashboard/metrics", handlers.GetDashboardMetrics).Methods("GET")
	api.HandleFunc("/dashboard/revenue-by-source", handlers.GetRevenueBySource).Methods("GET")
	api.HandleFunc("/dashboard/revenue-by-client", handlers.GetRevenueByClient).Methods("GET")
	api.HandleFunc("/dashboard/revenue-trend", handlers.GetRevenueTrend).Methods("GET")
	api.Handle("/reports/financials", manager(http.HandlerFunc(handlers.ExportFinancials))).Methods("GET")
	api.Handle("/reports/payroll", manager(http.HandlerFunc(handlers.ExportPayroll))).Methods("GET")

	// Uploads
	api.HandleFunc("/files/upload", handlers.UploadFile).Methods("POST")

	return r
}
