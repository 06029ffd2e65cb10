package models

import "time"

// Report statuses. Creation always starts at pending; admins may move
// a report between any of the three states in any order.
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

var ReportStatuses = []string{ReportStatusPending, ReportStatusReviewed, ReportStatusResolved}

type Report struct {
	ID uint `gorm:"primaryKey"`

	// Nil means a general site-wide report. The value is never checked
	// against food_resources so a report can outlive its subject.
	ResourceID *uint

	Message    string  `gorm:"type:text;not null"`
	Status     string  `gorm:"size:20;default:pending"`
	AdminNotes *string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Resource *FoodResource `gorm:"foreignKey:ResourceID"`
}

func (r *Report) ToDict() map[string]interface{} {
	var resourceName interface{}
	if r.Resource != nil {
		resourceName = r.Resource.Name
	}
	return map[string]interface{}{
		"id":            r.ID,
		"resource_id":   r.ResourceID,
		"resource_name": resourceName,
		"message":       r.Message,
		"status":        r.Status,
		"admin_notes":   r.AdminNotes,
		"created_at":    r.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
