package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:80;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:200"`

	IsAdmin  bool `gorm:"default:false"`
	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	LastLogin *time.Time

	Organization *string `gorm:"size:200"`
	Phone        *string `gorm:"size:20"`
}

// ToDict converts the user for JSON responses. Email and phone are
// only included when specifically requested, for privacy.
func (u *User) ToDict(includeEmail bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":           u.ID,
		"name":         u.Name,
		"is_admin":     u.IsAdmin,
		"organization": u.Organization,
		"created_at":   u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeEmail {
		data["email"] = u.Email
		data["phone"] = u.Phone
	}
	return data
}
