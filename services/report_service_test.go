package services

import (
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

func TestReportCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	report, err := svc.Create("  Hours are wrong  ", nil)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, "Hours are wrong", report.Message)
	assert.Nil(t, report.ResourceID)
}

func TestReportCreateRequiresMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	for _, msg := range []string{"", "   "} {
		_, err := svc.Create(msg, nil)
		require.Error(t, err)
		assert.True(t, errdefs.IsInvalidArgument(err))
		assert.Equal(t, "Missing required field: message", err.Error())
	}

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReportResourceIDNotValidated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	// Filing must succeed even when the referenced resource does not
	// exist; reports may outlive their subject.
	report, err := svc.Create("This place closed", ptr(uint(424242)))
	require.NoError(t, err)
	require.NotNil(t, report.ResourceID)
	assert.EqualValues(t, 424242, *report.ResourceID)
}

func TestReportListOrderAndFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	older, err := svc.Create("first", ptr(uint(1)))
	require.NoError(t, err)
	newer, err := svc.Create("second", ptr(uint(2)))
	require.NoError(t, err)

	// force distinct timestamps so ordering is deterministic
	require.NoError(t, db.Model(&models.Report{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	all, err := svc.List(ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	_, err = svc.UpdateStatus(older.ID, models.ReportStatusResolved, nil)
	require.NoError(t, err)

	resolved, err := svc.List(ReportFilter{Status: models.ReportStatusResolved})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, older.ID, resolved[0].ID)

	byResource, err := svc.List(ReportFilter{ResourceID: ptr(uint(2))})
	require.NoError(t, err)
	require.Len(t, byResource, 1)
	assert.Equal(t, newer.ID, byResource[0].ID)
}

func TestReportStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	report, err := svc.Create("needs review", nil)
	require.NoError(t, err)

	// transitions are unrestricted among valid states, including
	// reopening a resolved report
	for _, status := range []string{
		models.ReportStatusResolved,
		models.ReportStatusPending,
		models.ReportStatusReviewed,
	} {
		updated, err := svc.UpdateStatus(report.ID, status, nil)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = svc.UpdateStatus(report.ID, "closed", nil)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))

	// invalid status left the row untouched
	got, err := svc.Get(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReviewed, got.Status)
}

func TestReportAdminNotes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	report, err := svc.Create("check this", nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(report.ID, models.ReportStatusReviewed, ptr("called the site"))
	require.NoError(t, err)
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, "called the site", *updated.AdminNotes)

	// blank notes clear the field
	updated, err = svc.UpdateStatus(report.ID, models.ReportStatusReviewed, ptr("  "))
	require.NoError(t, err)
	assert.Nil(t, updated.AdminNotes)
}

func TestReportDeleteIsHard(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	report, err := svc.Create("remove me", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(report.ID))

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)

	err = svc.Delete(report.ID)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestReportStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	for i := 0; i < 3; i++ {
		_, err := svc.Create("pending one", nil)
		require.NoError(t, err)
	}
	reviewed, err := svc.Create("reviewed one", nil)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(reviewed.ID, models.ReportStatusReviewed, nil)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 3, stats.Pending)
	assert.EqualValues(t, 1, stats.Reviewed)
	assert.EqualValues(t, 0, stats.Resolved)
}
