package services

import (
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

type ResourceService struct {
	db *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{db: db}
}

// ResourceFilter narrows List to exact matches; empty fields are
// unconstrained.
type ResourceFilter struct {
	ResourceType string
	Neighborhood string
}

type ResourceInput struct {
	Name         string
	ResourceType string
	Address      string
	Neighborhood *string
	Latitude     *float64
	Longitude    *float64
	Hours        datatypes.JSON
	Phone        *string
	Website      *string
	Description  *string
}

// ResourceUpdate is a partial update: nil fields are left untouched.
type ResourceUpdate struct {
	Name         *string
	ResourceType *string
	Address      *string
	Neighborhood *string
	Latitude     *float64
	Longitude    *float64
	Hours        datatypes.JSON
	Phone        *string
	Website      *string
	Description  *string
	IsActive     *bool
}

func validateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return errInvalid("Invalid latitude: must be between -90 and 90")
	}
	return nil
}

func validateLongitude(lng float64) error {
	if lng < -180 || lng > 180 {
		return errInvalid("Invalid longitude: must be between -180 and 180")
	}
	return nil
}

// List returns active resources matching the filter. Soft-deleted rows
// never appear.
func (s *ResourceService) List(f ResourceFilter) ([]models.FoodResource, error) {
	query := s.db.Where("is_active = ?", true)
	if f.ResourceType != "" {
		query = query.Where("resource_type = ?", f.ResourceType)
	}
	if f.Neighborhood != "" {
		query = query.Where("neighborhood = ?", f.Neighborhood)
	}

	var resources []models.FoodResource
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// Get returns a single active resource. Inactive resources are
// invisible through this path, same as missing ones.
func (s *ResourceService) Get(id uint) (*models.FoodResource, error) {
	var resource models.FoodResource
	err := s.db.First(&resource, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("Resource not found")
	}
	if err != nil {
		return nil, err
	}
	if !resource.IsActive {
		return nil, errNotFound("Resource not found")
	}
	return &resource, nil
}

func (s *ResourceService) Create(in *ResourceInput) (*models.FoodResource, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errInvalid("Missing required field: name")
	}
	if strings.TrimSpace(in.ResourceType) == "" {
		return nil, errInvalid("Missing required field: resource_type")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, errInvalid("Missing required field: address")
	}
	if in.Latitude == nil {
		return nil, errInvalid("Missing required field: latitude")
	}
	if in.Longitude == nil {
		return nil, errInvalid("Missing required field: longitude")
	}
	if err := validateLatitude(*in.Latitude); err != nil {
		return nil, err
	}
	if err := validateLongitude(*in.Longitude); err != nil {
		return nil, err
	}

	resource := &models.FoodResource{
		Name:         strings.TrimSpace(in.Name),
		ResourceType: strings.TrimSpace(in.ResourceType),
		Address:      strings.TrimSpace(in.Address),
		Neighborhood: trimPtr(in.Neighborhood),
		Latitude:     *in.Latitude,
		Longitude:    *in.Longitude,
		Hours:        in.Hours,
		Phone:        trimPtr(in.Phone),
		Website:      trimPtr(in.Website),
		Description:  trimPtr(in.Description),
		IsActive:     true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(resource).Error
	})
	if err != nil {
		return nil, err
	}
	return resource, nil
}

// Update mutates only the supplied fields inside one transaction.
// Out-of-range coordinates fail before anything is written.
func (s *ResourceService) Update(id uint, in *ResourceUpdate) (*models.FoodResource, error) {
	if in.Latitude != nil {
		if err := validateLatitude(*in.Latitude); err != nil {
			return nil, err
		}
	}
	if in.Longitude != nil {
		if err := validateLongitude(*in.Longitude); err != nil {
			return nil, err
		}
	}

	var resource models.FoodResource
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&resource, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Resource not found")
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.ResourceType != nil {
			updates["resource_type"] = strings.TrimSpace(*in.ResourceType)
		}
		if in.Address != nil {
			updates["address"] = strings.TrimSpace(*in.Address)
		}
		if in.Neighborhood != nil {
			updates["neighborhood"] = trimPtr(in.Neighborhood)
		}
		if in.Latitude != nil {
			updates["latitude"] = *in.Latitude
		}
		if in.Longitude != nil {
			updates["longitude"] = *in.Longitude
		}
		if in.Hours != nil {
			updates["hours"] = in.Hours
		}
		if in.Phone != nil {
			updates["phone"] = trimPtr(in.Phone)
		}
		if in.Website != nil {
			updates["website"] = trimPtr(in.Website)
		}
		if in.Description != nil {
			updates["description"] = trimPtr(in.Description)
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&resource).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// SoftDelete marks the resource inactive. The row is kept for history;
// deleting an already-inactive resource still succeeds.
func (s *ResourceService) SoftDelete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var resource models.FoodResource
		if err := tx.First(&resource, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Resource not found")
			}
			return err
		}
		return tx.Model(&resource).Update("is_active", false).Error
	})
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
