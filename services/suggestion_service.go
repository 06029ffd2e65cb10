package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/utils"
)

type SuggestionService struct {
	db *gorm.DB
}

func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{db: db}
}

type SuggestionInput struct {
	Name         string
	Address      string
	ResourceType string

	Neighborhood *string
	Phone        *string
	Website      *string
	Hours        *string
	Description  *string

	SubmitterName  *string
	SubmitterEmail *string
}

type SuggestionFilter struct {
	Status       string
	ResourceType string
}

type SuggestionStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

func validSuggestionStatus(status string) bool {
	for _, s := range models.SuggestionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *SuggestionService) Create(in *SuggestionInput) (*models.Suggestion, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errInvalid("Missing required field: name")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, errInvalid("Missing required field: address")
	}
	if strings.TrimSpace(in.ResourceType) == "" {
		return nil, errInvalid("Missing required field: resource_type")
	}

	suggestion := &models.Suggestion{
		Name:           strings.TrimSpace(in.Name),
		Address:        strings.TrimSpace(in.Address),
		ResourceType:   strings.TrimSpace(in.ResourceType),
		Neighborhood:   trimPtr(in.Neighborhood),
		Phone:          trimPtr(in.Phone),
		Website:        trimPtr(in.Website),
		Hours:          trimPtr(in.Hours),
		Description:    trimPtr(in.Description),
		SubmitterName:  trimPtr(in.SubmitterName),
		SubmitterEmail: trimPtr(in.SubmitterEmail),
		Status:         models.SuggestionStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(suggestion).Error
	})
	if err != nil {
		return nil, err
	}

	Hub().Broadcast("suggestion.created", suggestion.ToDict())
	return suggestion, nil
}

func (s *SuggestionService) List(f SuggestionFilter) ([]models.Suggestion, error) {
	query := s.db
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ResourceType != "" {
		query = query.Where("resource_type = ?", f.ResourceType)
	}

	var suggestions []models.Suggestion
	if err := query.Order("created_at DESC").Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (s *SuggestionService) Get(id uint) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	err := s.db.First(&suggestion, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("Suggestion not found")
	}
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// UpdateStatus sets the review decision. Approval does NOT create a
// FoodResource; promotion is a separate manual admin action. When the
// submitter left an email, a best-effort notification goes out.
func (s *SuggestionService) UpdateStatus(id uint, status string, notes *string) (*models.Suggestion, error) {
	if !validSuggestionStatus(status) {
		return nil, errInvalid("Invalid status. Must be one of: %s", strings.Join(models.SuggestionStatuses, ", "))
	}

	var suggestion models.Suggestion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&suggestion, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Suggestion not found")
			}
			return err
		}

		updates := map[string]interface{}{"status": status}
		if notes != nil {
			updates["admin_notes"] = trimPtr(notes)
		}
		return tx.Model(&suggestion).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if suggestion.SubmitterEmail != nil && status != models.SuggestionStatusPending {
		if err := utils.SendSuggestionDecisionEmail(*suggestion.SubmitterEmail, suggestion.Name, status); err != nil {
			log.Printf("suggestion %d: decision email failed: %v", suggestion.ID, err)
		}
	}
	return s.Get(id)
}

func (s *SuggestionService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var suggestion models.Suggestion
		if err := tx.First(&suggestion, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Suggestion not found")
			}
			return err
		}
		return tx.Delete(&suggestion).Error
	})
}

func (s *SuggestionService) Stats() (*SuggestionStats, error) {
	var stats SuggestionStats
	if err := s.db.Model(&models.Suggestion{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		models.SuggestionStatusPending:  &stats.Pending,
		models.SuggestionStatusApproved: &stats.Approved,
		models.SuggestionStatusRejected: &stats.Rejected,
	}
	for status, dst := range counts {
		if err := s.db.Model(&models.Suggestion{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
