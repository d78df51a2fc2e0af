package config

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
)

// SeedAdminUser creates the initial admin account when the users table is
// empty. Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD, with dev-friendly
// defaults.
func SeedAdminUser() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Warning: could not check users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@moveops.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Println("ADMIN_PASSWORD not set, seeding admin with default password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: could not hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		Phone:        "000-0000",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not seed admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", email)
}

// SeedDemoData loads a small, self-consistent sample book of business so a
// fresh install has something on the dashboard. Skips entirely if any jobs
// exist.
func SeedDemoData() {
	var count int64
	if err := DB.Model(&models.Job{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	log.Println("Seeding demo data")

	client := models.Client{
		Name:           "Harbor View Apartments",
		Phone:          "555-0134",
		Email:          "office@harborview.example",
		PrimaryAddress: "12 Harbor View Dr",
	}
	if err := DB.Create(&client).Error; err != nil {
		log.Printf("Warning: demo client: %v", err)
		return
	}

	lead := models.Lead{
		Name:     "Harbor View Apartments",
		Phone:    "555-0134",
		Source:   models.LeadSourceReferral,
		Status:   models.LeadStatusConverted,
		LeadCost: 40,
	}
	now := models.JSONTime(time.Now())
	lead.ConvertedAt = &now
	if err := DB.Create(&lead).Error; err != nil {
		log.Printf("Warning: demo lead: %v", err)
		return
	}

	job := models.Job{
		ClientID:            &client.ID,
		ClientName:          client.Name,
		ClientPhone:         client.Phone,
		LeadID:              &lead.ID,
		JobDate:             models.JSONTime(time.Now().AddDate(0, 0, -7)),
		Status:              models.JobStatusCompleted,
		PricingModel:        models.PricingPerPerson,
		HourlyRate:          55,
		MoversNeeded:        2,
		WorkerHourlyRate:    22,
		ActualDurationHours: 5,
		ActualTotal:         550,
		IsPaid:              true,
		PaymentMethod:       models.PaymentCard,
	}
	job.EstimatedTotal = finance.EstimatedTotal(job)
	paidAt := models.JSONTime(time.Now().AddDate(0, 0, -6))
	job.PaidAt = &paidAt
	if err := DB.Create(&job).Error; err != nil {
		log.Printf("Warning: demo job: %v", err)
		return
	}

	employee := models.Employee{
		Name:       "M. Alvarez",
		Phone:      "555-0177",
		Role:       models.EmployeeRoleForeman,
		Status:     models.EmployeeStatusActive,
		HourlyWage: 22,
	}
	if err := DB.Create(&employee).Error; err != nil {
		log.Printf("Warning: demo employee: %v", err)
		return
	}

	entry := models.TimeEntry{
		EmployeeID:   employee.ID,
		JobID:        &job.ID,
		EntryDate:    job.JobDate,
		RegularHours: 5,
		HourlyRate:   employee.HourlyWage,
		OvertimeRate: employee.EffectiveOvertimeRate(),
		Status:       models.TimeEntryStatusApproved,
		IsPaid:       true,
	}
	entry.TotalPay = finance.TotalPay(entry)
	entry.PaidAt = &paidAt
	if err := DB.Create(&entry).Error; err != nil {
		log.Printf("Warning: demo time entry: %v", err)
	}
}
