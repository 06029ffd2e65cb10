package models

import "time"

const (
	SuggestionStatusPending  = "pending"
	SuggestionStatusApproved = "approved"
	SuggestionStatusRejected = "rejected"
)

var SuggestionStatuses = []string{SuggestionStatusPending, SuggestionStatusApproved, SuggestionStatusRejected}

// Suggestion is a citizen-submitted candidate resource. Approval does
// not create a FoodResource; promotion is a manual admin action.
type Suggestion struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255;not null"`
	Address      string `gorm:"size:255;not null"`
	ResourceType string `gorm:"size:100;not null"`

	Neighborhood *string `gorm:"size:100"`
	Phone        *string `gorm:"size:20"`
	Website      *string `gorm:"size:255"`
	Hours        *string `gorm:"type:text"`
	Description  *string `gorm:"type:text"`

	SubmitterName  *string `gorm:"size:100"`
	SubmitterEmail *string `gorm:"size:100"`

	Status     string  `gorm:"size:20;default:pending"`
	AdminNotes *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Suggestion) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":              s.ID,
		"name":            s.Name,
		"address":         s.Address,
		"resource_type":   s.ResourceType,
		"neighborhood":    s.Neighborhood,
		"phone":           s.Phone,
		"website":         s.Website,
		"hours":           s.Hours,
		"description":     s.Description,
		"submitter_name":  s.SubmitterName,
		"submitter_email": s.SubmitterEmail,
		"status":          s.Status,
		"admin_notes":     s.AdminNotes,
		"created_at":      s.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":      s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
