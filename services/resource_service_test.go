package services

import (
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

func validResourceInput() *ResourceInput {
	return &ResourceInput{
		Name:         "Test Pantry",
		ResourceType: "pantry",
		Address:      "1 Main St",
		Latitude:     ptr(40.44),
		Longitude:    ptr(-79.99),
	}
}

func TestResourceCreateAndGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResourceService(db)

	in := validResourceInput()
	in.Neighborhood = ptr("Bloomfield")
	in.Phone = ptr("412-555-0100")
	in.Website = ptr("https://example.org")
	in.Description = ptr("Weekly food pantry")
	in.Hours = datatypes.JSON(`{"monday":"9:00-17:00"}`)

	created, err := svc.Create(in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Pantry", got.Name)
	assert.Equal(t, "pantry", got.ResourceType)
	assert.Equal(t, "1 Main St", got.Address)
	assert.Equal(t, "Bloomfield", *got.Neighborhood)
	assert.Equal(t, 40.44, got.Latitude)
	assert.Equal(t, -79.99, got.Longitude)
	assert.Equal(t, "412-555-0100", *got.Phone)
	assert.Equal(t, "https://example.org", *got.Website)
	assert.Equal(t, "Weekly food pantry", *got.Description)
	assert.JSONEq(t, `{"monday":"9:00-17:00"}`, string(got.Hours))
	assert.True(t, got.IsActive)
}

func TestResourceCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResourceService(db)

	tests := []struct {
		name    string
		mutate  func(*ResourceInput)
		wantMsg string
	}{
		{"missing name", func(in *ResourceInput) { in.Name = " " }, "Missing required field: name"},
		{"missing type", func(in *ResourceInput) { in.ResourceType = "" }, "Missing required field: resource_type"},
		{"missing address", func(in *ResourceInput) { in.Address = "" }, "Missing required field: address"},
		{"missing latitude", func(in *ResourceInput) { in.Latitude = nil }, "Missing required field: latitude"},
		{"missing longitude", func(in *ResourceInput) { in.Longitude = nil }, "Missing required field: longitude"},
		{"latitude too high", func(in *ResourceInput) { in.Latitude = ptr(90.5) }, "Invalid latitude: must be between -90 and 90"},
		{"latitude too low", func(in *ResourceInput) { in.Latitude = ptr(-91.0) }, "Invalid latitude: must be between -90 and 90"},
		{"longitude too high", func(in *ResourceInput) { in.Longitude = ptr(181.0) }, "Invalid longitude: must be between -180 and 180"},
		{"longitude too low", func(in *ResourceInput) { in.Longitude = ptr(-180.01) }, "Invalid longitude: must be between -180 and 180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validResourceInput()
			tt.mutate(in)

			_, err := svc.Create(in)
			require.Error(t, err)
			assert.True(t, errdefs.IsInvalidArgument(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	// no partial writes on any failure
	var count int64
	require.NoError(t, db.Model(&models.FoodResource{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResourceListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResourceService(db)

	mk := func(name, rtype, hood string) {
		in := validResourceInput()
		in.Name = name
		in.ResourceType = rtype
		in.Neighborhood = ptr(hood)
		_, err := svc.Create(in)
		require.NoError(t, err)
	}
	mk("Giant Eagle", "grocery", "Shadyside")
	mk("East End Co-op", "grocery", "Point Breeze")
	mk("Garfield Farm", "urban_farm", "Garfield")

	all, err := svc.List(ResourceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	groceries, err := svc.List(ResourceFilter{ResourceType: "grocery"})
	require.NoError(t, err)
	assert.Len(t, groceries, 2)

	both, err := svc.List(ResourceFilter{ResourceType: "grocery", Neighborhood: "Shadyside"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Giant Eagle", both[0].Name)

	none, err := svc.List(ResourceFilter{Neighborhood: "Oakland"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResourceSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResourceService(db)

	created, err := svc.Create(validResourceInput())
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(created.ID))

	// invisible through both public read paths
	_, err = svc.Get(created.ID)
	assert.True(t, errdefs.IsNotFound(err))

	listed, err := svc.List(ResourceFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	// but the row is retained for history
	var count int64
	require.NoError(t, db.Model(&models.FoodResource{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// idempotent
	require.NoError(t, svc.SoftDelete(created.ID))

	err = svc.SoftDelete(9999)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestResourceUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResourceService(db)

	created, err := svc.Create(validResourceInput())
	require.NoError(t, err)

	t.Run("partial update mutates only supplied fields", func(t *testing.T) {
		updated, err := svc.Update(created.ID, &ResourceUpdate{Name: ptr("Renamed Pantry")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed Pantry", updated.Name)
		assert.Equal(t, "pantry", updated.ResourceType)
		assert.Equal(t, 40.44, updated.Latitude)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		before, err := svc.Get(created.ID)
		require.NoError(t, err)

		after, err := svc.Update(created.ID, &ResourceUpdate{})
		require.NoError(t, err)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Latitude, after.Latitude)
		assert.Equal(t, before.Longitude, after.Longitude)
	})

	t.Run("out-of-range coordinates mutate nothing", func(t *testing.T) {
		_, err := svc.Update(created.ID, &ResourceUpdate{
			Name:     ptr("Should Not Stick"),
			Latitude: ptr(123.0),
		})
		require.Error(t, err)
		assert.True(t, errdefs.IsInvalidArgument(err))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "Should Not Stick", got.Name)
		assert.Equal(t, 40.44, got.Latitude)
	})

	t.Run("missing resource", func(t *testing.T) {
		_, err := svc.Update(9999, &ResourceUpdate{Name: ptr("x")})
		assert.True(t, errdefs.IsNotFound(err))
	})

	t.Run("reactivation through is_active", func(t *testing.T) {
		require.NoError(t, svc.SoftDelete(created.ID))
		_, err := svc.Update(created.ID, &ResourceUpdate{IsActive: ptr(true)})
		require.NoError(t, err)

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})
}
