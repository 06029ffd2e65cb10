package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

// ImportService loads tabular exports (CSV) of food resources from
// partner datasets. Rows are upserted on (name, latitude, longitude);
// bad rows are counted and skipped, never fatal to the batch.
type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

type ImportSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// Source spreadsheets use a loose category vocabulary. More specific
// phrases come first so "farmers market" never falls into "market".
var categoryMap = []struct {
	key string
	out string
}{
	{"farmers market", models.TypeFarmersMarket},
	{"community garden", models.TypeCommunityGarden},
	{"school garden", models.TypeSchoolGarden},
	{"urban farm", models.TypeUrbanFarm},
	{"convenience", models.TypeCornerStore},
	{"c-store", models.TypeCornerStore},
	{"pantry", models.TypePantry},
	{"farm", models.TypeCommunityFarm},
	{"supermarket", models.TypeGrocery},
	{"grocery", models.TypeGrocery},
	{"market", models.TypeGrocery},
}

func mapCategory(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return models.TypeGrocery
	}
	for _, m := range categoryMap {
		if strings.Contains(t, m.key) {
			return m.out
		}
	}
	if strings.Contains(t, "conven") {
		return models.TypeCornerStore
	}
	if strings.Contains(t, "groc") || strings.Contains(t, "market") || strings.Contains(t, "super") {
		return models.TypeGrocery
	}
	return models.TypeGrocery
}

var headerCleaner = regexp.MustCompile(`[^\w]+`)

func normalizeHeader(h string) string {
	return headerCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "_")
}

func parseFloat(v string) (float64, bool) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ImportCSV reads a delimited export and upserts each row. The first
// record is the header; recognized columns are name, category (or
// resource_type), address, neighborhood, lat/latitude, lon/lng/
// longitude, phone, website, description, hours.
func (s *ImportService) ImportCSV(r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errInvalid("Empty or unreadable file")
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}

	field := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := cols[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	summary := &ImportSummary{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Skipped++
			continue
		}

		name := field(row, "name")
		lat, latOK := parseFloat(field(row, "lat", "latitude"))
		lng, lngOK := parseFloat(field(row, "lon", "lng", "longitude"))
		if name == "" || !latOK || !lngOK {
			summary.Skipped++
			continue
		}
		if validateLatitude(lat) != nil || validateLongitude(lng) != nil {
			summary.Skipped++
			continue
		}

		payload := &models.FoodResource{
			Name:         name,
			ResourceType: mapCategory(field(row, "category", "resource_type")),
			Address:      field(row, "address"),
			Neighborhood: optional(field(row, "neighborhood")),
			Latitude:     lat,
			Longitude:    lng,
			Phone:        optional(field(row, "phone")),
			Website:      optional(field(row, "website")),
			Description:  optional(field(row, "description")),
			IsActive:     true,
		}
		if hours := field(row, "hours"); hours != "" {
			raw, err := json.Marshal(hours)
			if err == nil {
				payload.Hours = datatypes.JSON(raw)
			}
		}

		if err := s.upsert(payload, summary); err != nil {
			summary.Skipped++
		}
	}
	return summary, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *ImportService) upsert(payload *models.FoodResource, summary *ImportSummary) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.FoodResource
		err := tx.Where("name = ? AND latitude = ? AND longitude = ?",
			payload.Name, payload.Latitude, payload.Longitude).First(&existing).Error
		if err == nil {
			payload.ID = existing.ID
			payload.CreatedAt = existing.CreatedAt
			if err := tx.Save(payload).Error; err != nil {
				return err
			}
			summary.Updated++
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(payload).Error; err != nil {
			return err
		}
		summary.Inserted++
		return nil
	})
}
