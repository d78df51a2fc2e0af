package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlasmoves/moveops/config"
	"github.com/atlasmoves/moveops/models"
)

func GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.Employee{}).Order("name ASC")

	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if role := r.URL.Query().Get("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var employees []models.Employee
	if err := q.Find(&employees).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp models.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if emp.Status == "" {
		emp.Status = models.EmployeeStatusActive
	}
	if errs := emp.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Create(&emp).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

func GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var emp models.Employee
	if err := config.DB.First(&emp, "id = ?", id).Error; err != nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

func UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var emp models.Employee
	if err := config.DB.First(&emp, "id = ?", id).Error; err != nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if errs := emp.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Save(&emp).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

// DeleteEmployee deactivates instead of removing: time entries keep pointing
// at the row, and payroll history must stay reconstructible.
func DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var emp models.Employee
	if err := config.DB.First(&emp, "id = ?", id).Error; err != nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}
	emp.Status = models.EmployeeStatusInactive
	if err := config.DB.Save(&emp).Error; err != nil {
		http.Error(w, "failed to deactivate employee", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}
