package models

import (
	"time"

	"gorm.io/datatypes"
)

// Known resource_type values. The column is an open string enum: bulk
// imports may introduce new categories, so nothing below is enforced
// at the database level.
const (
	TypeGrocery         = "grocery"
	TypePantry          = "pantry"
	TypeFarmersMarket   = "farmers_market"
	TypeCornerStore     = "corner_store"
	TypeCommunityFarm   = "community_farm"
	TypeCommunityGarden = "community_garden"
	TypeSchoolGarden    = "school_garden"
	TypeUrbanFarm       = "urban_farm"
	TypeProgramSite     = "program_site"
	TypePartnerSite     = "partner_site"
	TypeFundedSite      = "funded_site"
	TypeOther           = "other"
)

type FoodResource struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"size:200;not null"`
	ResourceType string  `gorm:"size:50;not null"`
	Address      string  `gorm:"size:300;not null"`
	Neighborhood *string `gorm:"size:100"`
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`

	// Opaque JSON blob. Either a weekly map like
	// {"monday": "9:00-17:00", ...} or a plain string, echoed verbatim.
	Hours datatypes.JSON

	Phone       *string `gorm:"size:20"`
	Website     *string `gorm:"size:200"`
	Description *string `gorm:"type:text"`

	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
}

// ToDict is the public projection: no is_active, no created_at.
func (r *FoodResource) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":            r.ID,
		"name":          r.Name,
		"resource_type": r.ResourceType,
		"address":       r.Address,
		"neighborhood":  r.Neighborhood,
		"latitude":      r.Latitude,
		"longitude":     r.Longitude,
		"hours":         r.Hours,
		"phone":         r.Phone,
		"website":       r.Website,
		"description":   r.Description,
	}
}
