package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/atlasmoves/moveops/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Client{}, &models.Employee{},
					&models.Lead{}, &models.Job{}, &models.TimeEntry{})
			},
		},
		{
			ID: "20250414_add_job_financial_indexes",
			Migrate: func(tx *gorm.DB) error {
				// The dashboard filters on these constantly; keep the common
				// predicates cheap.
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_jobs_status_is_paid ON jobs(status, is_paid)").Error; err != nil {
					return err
				}
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_jobs_job_date ON jobs(job_date)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_time_entries_entry_date ON time_entries(entry_date)").Error
			},
		},
		{
			ID: "20250602_add_truck_addon_columns",
			Migrate: func(tx *gorm.DB) error {
				// Older deployments predate the truck add-on; AutoMigrate
				// fills the columns in, this records the schema step.
				return tx.AutoMigrate(&models.Job{})
			},
		},
	})
	return m.Migrate()
}
