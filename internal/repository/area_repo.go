package repository

import (
	"context"
	"time"

	"github.com/timmy/leadscout/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AreaRepository handles city-area work record operations.
type AreaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new AreaRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *AreaRepository: repository instance bound to db.
func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

// Seed creates a pending work record for every (city, area) pair that does
// not already exist. Existing records, including completed ones, are left
// untouched, so reseeding is idempotent.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name shared by all areas.
//   - areas: area labels to seed.
// Returns:
//   - error: non-nil if the insert fails.
func (r *AreaRepository) Seed(ctx context.Context, city string, areas []string) error {
	if len(areas) == 0 {
		return nil
	}
	records := make([]domain.CityArea, 0, len(areas))
	for _, area := range areas {
		records = append(records, domain.CityArea{
			City:   city,
			Area:   area,
			Status: domain.AreaStatusPending,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}, {Name: "area"}},
		DoNothing: true,
	}).Create(&records).Error
}

// Get retrieves the work record for one (city, area) pair.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
//   - area: area label.
// Returns:
//   - *domain.CityArea: work record if found.
//   - error: non-nil if lookup fails.
func (r *AreaRepository) Get(ctx context.Context, city, area string) (*domain.CityArea, error) {
	var record domain.CityArea
	if err := r.db.WithContext(ctx).First(&record, "city = ? AND area = ?", city, area).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByCity retrieves all work records for a city in creation order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - []domain.CityArea: matching records.
//   - error: non-nil if the query fails.
func (r *AreaRepository) ListByCity(ctx context.Context, city string) ([]domain.CityArea, error) {
	var records []domain.CityArea
	if err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SetStatus updates one work record's status and, when lastRunAt is non-nil,
// its last run timestamp. Each call is a single-row transactional unit.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
//   - area: area label.
//   - status: new status value.
//   - lastRunAt: last run timestamp to record; nil leaves it unchanged.
// Returns:
//   - error: non-nil if the update fails or no record matched.
func (r *AreaRepository) SetStatus(ctx context.Context, city, area string, status domain.AreaStatus, lastRunAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if lastRunAt != nil {
		updates["last_run_at"] = *lastRunAt
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.CityArea{}).
		Where("city = ? AND area = ?", city, area).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StatusCounts returns the number of work records per status for a city.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - map[domain.AreaStatus]int64: record counts keyed by status.
//   - error: non-nil if the query fails.
func (r *AreaRepository) StatusCounts(ctx context.Context, city string) (map[domain.AreaStatus]int64, error) {
	type row struct {
		Status domain.AreaStatus
		N      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.CityArea{}).
		Select("status, count(*) as n").
		Where("city = ?", city).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.AreaStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
