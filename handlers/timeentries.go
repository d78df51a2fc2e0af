package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/atlasmoves/moveops/config"
	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
)

// prepareTimeEntry fills the derived fields before a write: hours are split
// from the clock stamps when present, rates default from the employee
// record, and the stored total is recomputed.
func prepareTimeEntry(entry *models.TimeEntry) {
	if entry.ClockInTime != nil && entry.ClockOutTime != nil {
		entry.RegularHours, entry.OvertimeHours = finance.SplitHours(entry.WorkedHours())
	}
	if entry.HourlyRate == 0 || entry.OvertimeRate == 0 {
		var emp models.Employee
		if err := config.DB.First(&emp, "id = ?", entry.EmployeeID).Error; err == nil {
			if entry.HourlyRate == 0 {
				entry.HourlyRate = emp.HourlyWage
			}
			if entry.OvertimeRate == 0 {
				entry.OvertimeRate = emp.EffectiveOvertimeRate()
			}
		}
	}
	entry.TotalPay = finance.TotalPay(*entry)
}

func GetAllTimeEntries(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.TimeEntry{}).Preload("Employee").Order("entry_date DESC")

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
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
		q = q.Where("entry_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("entry_date < ?", to)
	}

	var entries []models.TimeEntry
	if err := q.Find(&entries).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.TimeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	entry.Status = models.TimeEntryStatusPending
	entry.IsPaid = false
	entry.PaidAt = nil
	prepareTimeEntry(&entry)

	if errs := entry.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func GetTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var entry models.TimeEntry
	if err := config.DB.Preload("Employee").First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// UpdateTimeEntry edits an entry's facts. Editing a non-pending entry drops
// it back to pending: the manager signed off on different numbers.
func UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var entry models.TimeEntry
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}
	if entry.IsPaid {
		http.Error(w, "paid entries cannot be edited; reset the entry first", http.StatusConflict)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	entry.Status = models.TimeEntryStatusPending
	entry.IsPaid = false
	entry.PaidAt = nil
	prepareTimeEntry(&entry)

	if errs := entry.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Save(&entry).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var entry models.TimeEntry
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}
	if entry.IsPaid {
		http.Error(w, "paid entries cannot be deleted; reset the entry first", http.StatusConflict)
		return
	}
	if err := config.DB.Delete(&entry).Error; err != nil {
		http.Error(w, "failed to delete time entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ApproveTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var entry models.TimeEntry
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}
	if entry.Status != models.TimeEntryStatusPending {
		http.Error(w, fmt.Sprintf("only pending entries can be approved, this one is %q", entry.Status), http.StatusConflict)
		return
	}

	entry.Status = models.TimeEntryStatusApproved
	if err := config.DB.Save(&entry).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type rejectTimeEntryReq struct {
	Reason string `json:"reason"`
}

// RejectTimeEntry marks an entry rejected. A reason is mandatory so the
// employee sees why on their timesheet.
func RejectTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req rejectTimeEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Reason == "" {
		writeValidationErrors(w, []string{"a rejection reason is required"})
		return
	}

	var entry models.TimeEntry
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}
	if entry.Status != models.TimeEntryStatusPending {
		http.Error(w, fmt.Sprintf("only pending entries can be rejected, this one is %q", entry.Status), http.StatusConflict)
		return
	}

	entry.Status = models.TimeEntryStatusRejected
	entry.ManagerNotes = req.Reason
	if err := config.DB.Save(&entry).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ResetTimeEntry puts an entry back to pending and clears payment in one
// write, so an approved-and-paid entry can never linger half reset.
func ResetTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var entry models.TimeEntry
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}

	entry.Status = models.TimeEntryStatusPending
	entry.IsPaid = false
	entry.PaidAt = nil
	entry.ManagerNotes = ""
	if err := config.DB.Save(&entry).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type timeEntryPaymentReq struct {
	IsPaid bool `json:"isPaid"`
}

// SetTimeEntryPayment toggles payroll disbursement on an approved entry.
func SetTimeEntryPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req timeEntryPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var entry models.TimeEntry
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "time entry not found", http.StatusNotFound)
		return
	}
	if entry.Status != models.TimeEntryStatusApproved {
		http.Error(w, "only approved entries can be marked paid or unpaid", http.StatusConflict)
		return
	}

	entry.IsPaid = req.IsPaid
	if req.IsPaid {
		now := models.JSONTime(time.Now())
		entry.PaidAt = &now
	} else {
		entry.PaidAt = nil
	}
	if err := config.DB.Save(&entry).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
