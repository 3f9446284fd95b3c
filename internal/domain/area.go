package domain

import "time"

// AreaStatus represents the processing status of a city area work record.
// Values include AreaStatusPending, AreaStatusInProgress, AreaStatusCompleted,
// and AreaStatusFailed.
type AreaStatus string

const (
	AreaStatusPending    AreaStatus = "pending"
	AreaStatusInProgress AreaStatus = "in_progress"
	AreaStatusCompleted  AreaStatus = "completed"
	AreaStatusFailed     AreaStatus = "failed"
)

// Retryable reports whether a new run should process an area in this status.
// Completed areas are skipped; failed areas are retried like pending ones.
func (s AreaStatus) Retryable() bool {
	return s != AreaStatusCompleted
}

// CityArea is the persisted work record for one (city, area) unit of search
// work. Exactly one record exists per pair; status transitions within a run
// are pending/failed -> in_progress -> completed|failed.
type CityArea struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	City      string     `gorm:"type:varchar(100);not null;index:idx_city_areas_pair,unique" json:"city"`
	Area      string     `gorm:"type:varchar(100);not null;index:idx_city_areas_pair,unique" json:"area"`
	Status    AreaStatus `gorm:"type:varchar(50);not null;default:pending;index:idx_city_areas_status" json:"status"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for CityArea.
func (CityArea) TableName() string {
	return "city_areas"
}
