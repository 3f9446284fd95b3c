package domain

import "time"

// LeadStatus represents the lifecycle status of a qualified lead.
type LeadStatus string

const (
	LeadStatusQualified LeadStatus = "qualified"
)

// QualifiedLead is a persisted business that passed qualification: no website,
// review count above the configured threshold, and an estimated age of at
// least one year. Website is always stored empty (qualification requires its
// absence) and email is never populated by this pipeline.
type QualifiedLead struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessName string     `gorm:"type:varchar(255);not null" json:"business_name"`
	Address      *string    `gorm:"type:text" json:"address,omitempty"`
	Phone        *string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Email        *string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Area         string     `gorm:"type:varchar(100);not null;index:idx_qualified_leads_area" json:"area"`
	City         string     `gorm:"type:varchar(100);not null;index:idx_qualified_leads_city" json:"city"`
	ReviewsCount *int       `json:"reviews_count,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	Website      *string    `gorm:"type:text" json:"website,omitempty"`
	DateScraped  time.Time  `gorm:"not null" json:"date_scraped"`
	Status       LeadStatus `gorm:"type:varchar(50);not null;default:qualified" json:"status"`
}

// TableName returns the database table name for QualifiedLead.
func (QualifiedLead) TableName() string {
	return "qualified_leads"
}
