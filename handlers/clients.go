package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/atlasmoves/moveops/config"
	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
)

func GetAllClients(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.Client{}).Order("name ASC")

	if search := r.URL.Query().Get("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", like, "%"+search+"%", like)
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func CreateClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if errs := client.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	// Stats columns start from zero; only job activity moves them.
	client.TotalJobsCompleted = 0
	client.TotalRevenue = 0

	if err := config.DB.Create(&client).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// GetClient returns one client with stats recomputed from the job table, so
// a stale cache never reaches the detail page.
func GetClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	var jobs []models.Job
	if err := config.DB.Where("client_id = ?", client.ID).Find(&jobs).Error; err == nil {
		completed, revenue := finance.ClientStats(client.ID, jobs)
		if completed != client.TotalJobsCompleted || revenue != client.TotalRevenue {
			client.TotalJobsCompleted = completed
			client.TotalRevenue = revenue
			config.DB.Model(&client).Updates(map[string]interface{}{
				"total_jobs_completed": completed,
				"total_revenue":        revenue,
			})
		}
	}
	writeJSON(w, http.StatusOK, client)
}

func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	// The stats cache is derived, not editable.
	completed := client.TotalJobsCompleted
	revenue := client.TotalRevenue

	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	client.TotalJobsCompleted = completed
	client.TotalRevenue = revenue

	if errs := client.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Save(&client).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// DeleteClient soft-deletes a client. Their jobs survive with the
// denormalized name/phone copies intact.
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&client).Error; err != nil {
		http.Error(w, "failed to delete client", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetClientJobs lists a client's job history, newest first.
func GetClientJobs(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	var jobs []models.Job
	if err := config.DB.Where("client_id = ?", client.ID).Order("job_date DESC").Find(&jobs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]jobView, len(jobs))
	for i, j := range jobs {
		out[i] = newJobView(j)
	}
	writeJSON(w, http.StatusOK, out)
}
