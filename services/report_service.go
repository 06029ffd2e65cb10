package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type ReportFilter struct {
	Status     string
	ResourceID *uint
}

type ReportStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Resolved int64 `json:"resolved"`
}

func validReportStatus(status string) bool {
	for _, s := range models.ReportStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Create files a report. resourceID is deliberately not checked
// against the resource table: filing must never fail because of an
// unrelated data problem.
func (s *ReportService) Create(message string, resourceID *uint) (*models.Report, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errInvalid("Missing required field: message")
	}

	report := &models.Report{
		ResourceID: resourceID,
		Message:    message,
		Status:     models.ReportStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(report).Error
	})
	if err != nil {
		return nil, err
	}

	Hub().Broadcast("report.created", report.ToDict())
	return report, nil
}

func (s *ReportService) List(f ReportFilter) ([]models.Report, error) {
	query := s.db.Preload("Resource")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ResourceID != nil {
		query = query.Where("resource_id = ?", *f.ResourceID)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *ReportService) Get(id uint) (*models.Report, error) {
	var report models.Report
	err := s.db.Preload("Resource").First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("Report not found")
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateStatus moves a report to any of the three valid states and
// optionally replaces the admin notes. There is no terminal state.
func (s *ReportService) UpdateStatus(id uint, status string, notes *string) (*models.Report, error) {
	if !validReportStatus(status) {
		return nil, errInvalid("Invalid status. Must be one of: %s", strings.Join(models.ReportStatuses, ", "))
	}

	var report models.Report
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Report not found")
			}
			return err
		}

		updates := map[string]interface{}{"status": status}
		if notes != nil {
			updates["admin_notes"] = trimPtr(notes)
		}
		return tx.Model(&report).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a report permanently, unlike resources.
func (s *ReportService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Report not found")
			}
			return err
		}
		return tx.Delete(&report).Error
	})
}

func (s *ReportService) Stats() (*ReportStats, error) {
	var stats ReportStats
	model := s.db.Model(&models.Report{})
	if err := model.Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		models.ReportStatusPending:  &stats.Pending,
		models.ReportStatusReviewed: &stats.Reviewed,
		models.ReportStatusResolved: &stats.Resolved,
	}
	for status, dst := range counts {
		if err := s.db.Model(&models.Report{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
