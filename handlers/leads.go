package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/atlasmoves/moveops/config"
	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
)

func GetAllLeads(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.Lead{}).Order("created_at DESC")

	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if source := r.URL.Query().Get("source"); source != "" {
		q = q.Where("source = ?", source)
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}

	var leads []models.Lead
	if err := q.Find(&leads).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func CreateLead(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.Source == "" {
		lead.Source = models.LeadSourceOther
	}
	if errs := lead.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Create(&lead).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func GetLead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var lead models.Lead
	if err := config.DB.First(&lead, "id = ?", id).Error; err != nil {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var lead models.Lead
	if err := config.DB.First(&lead, "id = ?", id).Error; err != nil {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}

	// Status moves through the transition endpoint; conversion stamps are
	// owned by ConvertLead.
	status := lead.Status
	convertedAt := lead.ConvertedAt

	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	lead.Status = status
	lead.ConvertedAt = convertedAt

	if errs := lead.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Save(&lead).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// DeleteLead removes a lead. Converted leads are kept forever because jobs
// and revenue attribution point back at them.
func DeleteLead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var lead models.Lead
	if err := config.DB.First(&lead, "id = ?", id).Error; err != nil {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}
	if lead.Status == models.LeadStatusConverted {
		http.Error(w, "converted leads cannot be deleted", http.StatusConflict)
		return
	}
	if err := config.DB.Delete(&lead).Error; err != nil {
		http.Error(w, "failed to delete lead", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type leadStatusReq struct {
	Status string `json:"status"`
}

// TransitionLeadStatus moves a lead along the pipeline. The converted state
// is only reachable through ConvertLead, which also creates the client and
// job records.
func TransitionLeadStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req leadStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var lead models.Lead
	if err := config.DB.First(&lead, "id = ?", id).Error; err != nil {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}
	if req.Status == models.LeadStatusConverted {
		http.Error(w, "use the convert endpoint to convert a lead", http.StatusBadRequest)
		return
	}
	if !lead.CanTransition(req.Status) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   fmt.Sprintf("cannot move lead from %q to %q", lead.Status, req.Status),
			"allowed": lead.AllowedTransitions(),
		})
		return
	}

	lead.Status = req.Status
	if err := config.DB.Save(&lead).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

type convertLeadReq struct {
	JobDate          models.JSONTime `json:"jobDate"`
	StartTime        string          `json:"startTime"`
	PricingModel     string          `json:"pricingModel"`
	HourlyRate       float64         `json:"hourlyRate"`
	MoversNeeded     int             `json:"moversNeeded"`
	FlatHourlyRate   float64         `json:"flatHourlyRate"`
	WorkerHourlyRate float64         `json:"workerHourlyRate"`
	HoursWorked      float64         `json:"hoursWorked"`

	OriginAddress      string `json:"originAddress"`
	DestinationAddress string `json:"destinationAddress"`
}

// ConvertLead turns a quoted lead into a client and a pending job in one
// transaction. An existing client is matched by phone number so repeat
// customers don't multiply.
func ConvertLead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req convertLeadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var lead models.Lead
	if err := config.DB.First(&lead, "id = ?", id).Error; err != nil {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}
	if !lead.CanTransition(models.LeadStatusConverted) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   fmt.Sprintf("cannot convert a lead in status %q", lead.Status),
			"allowed": lead.AllowedTransitions(),
		})
		return
	}
	if req.PricingModel == "" {
		req.PricingModel = models.PricingPerPerson
	}

	var client models.Client
	var job models.Job

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if lead.Phone != "" {
			tx.Where("phone = ?", lead.Phone).First(&client)
		}
		if client.ID == uuid.Nil {
			client = models.Client{
				Name:  lead.Name,
				Phone: lead.Phone,
				Email: lead.Email,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		}

		job = models.Job{
			ClientID:           &client.ID,
			ClientName:         client.Name,
			ClientPhone:        client.Phone,
			ClientEmail:        client.Email,
			LeadID:             &lead.ID,
			Status:             models.JobStatusPendingSchedule,
			JobDate:            req.JobDate,
			StartTime:          req.StartTime,
			PricingModel:       req.PricingModel,
			HourlyRate:         req.HourlyRate,
			MoversNeeded:       req.MoversNeeded,
			FlatHourlyRate:     req.FlatHourlyRate,
			WorkerHourlyRate:   req.WorkerHourlyRate,
			HoursWorked:        req.HoursWorked,
			OriginAddress:      req.OriginAddress,
			DestinationAddress: req.DestinationAddress,
		}
		if req.JobDate.IsZero() {
			job.JobDate = models.JSONTime(time.Now().AddDate(0, 0, 7))
		}
		if errs := job.Validate(); len(errs) > 0 {
			return fmt.Errorf("job validation failed: %v", errs)
		}
		job.EstimatedTotal = finance.EstimatedTotal(job)
		if err := tx.Create(&job).Error; err != nil {
			return err
		}

		now := models.JSONTime(time.Now())
		lead.Status = models.LeadStatusConverted
		lead.ConvertedAt = &now
		return tx.Save(&lead).Error
	})
	if err != nil {
		http.Error(w, "conversion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lead":   lead,
		"client": client,
		"job":    newJobView(job),
	})
}
