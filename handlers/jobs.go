package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/atlasmoves/moveops/config"
	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
	"github.com/atlasmoves/moveops/utils"
)

// newJobView attaches the derived profit figures to a job response.
func newJobView(j models.Job) jobView {
	view := jobView{Job: j}
	if profit := finance.JobProfit(j); profit.Computed {
		view.JobProfit = profit
	}
	if j.TruckServiceFee != 0 || j.TruckRentalCost != 0 || j.TruckGasCost != 0 {
		tp := finance.TruckProfit(j)
		view.TruckProfit = &tp
	}
	return view
}

func GetAllJobs(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.Job{}).Order("job_date DESC")

	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if paid := r.URL.Query().Get("paid"); paid != "" {
		q = q.Where("is_paid = ?", paid == "true")
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !from.IsZero() {
		q = q.Where("job_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("job_date < ?", to)
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]jobView, len(jobs))
	for i, j := range jobs {
		out[i] = newJobView(j)
	}
	writeJSON(w, http.StatusOK, out)
}

func CreateJob(w http.ResponseWriter, r *http.Request) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if job.Status == "" {
		job.Status = models.JobStatusPendingSchedule
	}
	if errs := job.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	job.EstimatedTotal = finance.EstimatedTotal(job)
	job.DistanceMiles = utils.MoveDistanceMiles(job.OriginLat, job.OriginLng, job.DestinationLat, job.DestinationLng)

	// Completion facts only exist on completed jobs.
	if job.Status != models.JobStatusCompleted {
		job.ActualTotal = 0
		job.IsPaid = false
		job.PaidAt = nil
	}

	if err := config.DB.Create(&job).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	refreshClientStats(job.ClientID)
	writeJSON(w, http.StatusCreated, newJobView(job))
}

func GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var job models.Job
	if err := config.DB.Preload("Client").First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

func UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var job models.Job
	if err := config.DB.First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	// Status moves through the transition endpoint, completion facts through
	// the completion endpoint; an update can't smuggle either in.
	status := job.Status
	isPaid := job.IsPaid
	paidAt := job.PaidAt
	actualTotal := job.ActualTotal
	actualDuration := job.ActualDurationHours

	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	job.Status = status
	job.IsPaid = isPaid
	job.PaidAt = paidAt
	job.ActualTotal = actualTotal
	job.ActualDurationHours = actualDuration

	if errs := job.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	job.EstimatedTotal = finance.EstimatedTotal(job)
	job.DistanceMiles = utils.MoveDistanceMiles(job.OriginLat, job.OriginLng, job.DestinationLat, job.DestinationLng)

	if err := config.DB.Save(&job).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	refreshClientStats(job.ClientID)
	writeJSON(w, http.StatusOK, newJobView(job))
}

func DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var job models.Job
	if err := config.DB.First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&job).Error; err != nil {
		http.Error(w, "failed to delete job", http.StatusInternalServerError)
		return
	}
	refreshClientStats(job.ClientID)
	w.WriteHeader(http.StatusNoContent)
}

type jobStatusReq struct {
	Status string `json:"status"`
}

// TransitionJobStatus moves a job through its lifecycle. Completion goes
// through CompleteJob so the completion facts arrive together.
func TransitionJobStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req jobStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var job models.Job
	if err := config.DB.First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if req.Status == models.JobStatusCompleted {
		http.Error(w, "use the completion endpoint to complete a job", http.StatusBadRequest)
		return
	}
	if !job.CanTransition(req.Status) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   fmt.Sprintf("cannot move job from %q to %q", job.Status, req.Status),
			"allowed": job.AllowedTransitions(),
		})
		return
	}

	job.Status = req.Status
	if err := config.DB.Save(&job).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

type completeJobReq struct {
	ActualDurationHours float64  `json:"actualDurationHours"`
	ActualTotal         *float64 `json:"actualTotal,omitempty"`
	TotalAmountReceived float64  `json:"totalAmountReceived"`
	CompletionNotes     string   `json:"completionNotes"`
	CompletionPhotos    []string `json:"completionPhotos"`
}

// CompleteJob finishes a job and records the completion facts. A job only
// acquires an actual total here, never earlier.
func CompleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req completeJobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ActualDurationHours < 0 {
		writeValidationErrors(w, []string{"actual duration cannot be negative"})
		return
	}

	var job models.Job
	if err := config.DB.First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if !job.CanTransition(models.JobStatusCompleted) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   fmt.Sprintf("cannot complete a job in status %q", job.Status),
			"allowed": job.AllowedTransitions(),
		})
		return
	}

	job.Status = models.JobStatusCompleted
	job.ActualDurationHours = req.ActualDurationHours
	job.TotalAmountReceived = req.TotalAmountReceived
	job.CompletionNotes = req.CompletionNotes
	job.CompletionPhotos = req.CompletionPhotos

	switch {
	case req.ActualTotal != nil:
		job.ActualTotal = *req.ActualTotal
	case job.PricingModel == models.PricingPerPerson:
		job.ActualTotal = job.HourlyRate * float64(job.MoversNeeded) * req.ActualDurationHours
	default:
		job.ActualTotal = job.EstimatedTotal
	}

	if err := config.DB.Save(&job).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	refreshClientStats(job.ClientID)
	writeJSON(w, http.StatusOK, newJobView(job))
}

type jobPaymentReq struct {
	IsPaid        bool   `json:"isPaid"`
	PaymentMethod string `json:"paymentMethod"`
}

// SetJobPayment toggles the payment flag of a completed job. Payment state
// is orthogonal to lifecycle status and only exists after completion.
func SetJobPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req jobPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var job models.Job
	if err := config.DB.First(&job, "id = ?", id).Error; err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if !job.IsCompleted() {
		http.Error(w, "only completed jobs can be marked paid or unpaid", http.StatusConflict)
		return
	}

	job.IsPaid = req.IsPaid
	if req.IsPaid {
		job.PaymentMethod = req.PaymentMethod
		now := models.JSONTime(time.Now())
		job.PaidAt = &now
	} else {
		job.PaymentMethod = ""
		job.PaidAt = nil
	}

	if err := config.DB.Save(&job).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	refreshClientStats(job.ClientID)
	writeJSON(w, http.StatusOK, newJobView(job))
}

// refreshClientStats rewrites a client's cached job count and revenue from
// the job table. The stored columns are a display cache; this fold is the
// truth.
func refreshClientStats(clientID *uuid.UUID) {
	if clientID == nil {
		return
	}
	var jobs []models.Job
	if err := config.DB.Where("client_id = ?", *clientID).Find(&jobs).Error; err != nil {
		return
	}
	completed, revenue := finance.ClientStats(*clientID, jobs)
	config.DB.Model(&models.Client{}).
		Where("id = ?", *clientID).
		Updates(map[string]interface{}{
			"total_jobs_completed": completed,
			"total_revenue":        revenue,
		})
}
