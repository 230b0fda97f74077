package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/inventory"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPhoneRepository implements PhoneRepository using GORM
type GormPhoneRepository struct {
	db *gorm.DB
}

// NewGormPhoneRepository creates a new GormPhoneRepository
func NewGormPhoneRepository(db *gorm.DB) *GormPhoneRepository {
	return &GormPhoneRepository{db: db}
}

// FindByID finds a phone by its ID
func (r *GormPhoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Phone, error) {
	var model models.PhoneModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a phone by ID with an exclusive row lock
func (r *GormPhoneRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Phone, error) {
	var model models.PhoneModel
	if err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIMEI finds a phone by its IMEI
func (r *GormPhoneRepository) FindByIMEI(ctx context.Context, imei string) (*inventory.Phone, error) {
	var model models.PhoneModel
	if err := dbFromContext(ctx, r.db).First(&model, "imei = ?", imei).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds phones matching the filter
func (r *GormPhoneRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Phone, int64, error) {
	return r.findWhere(ctx, filter, nil)
}

// FindByStatus finds phones with a given status
func (r *GormPhoneRepository) FindByStatus(ctx context.Context, status inventory.PhoneStatus, filter shared.Filter) ([]inventory.Phone, int64, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

func (r *GormPhoneRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]inventory.Phone, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&models.PhoneModel{})
	if scope != nil {
		query = scope(query)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("brand ILIKE ? OR model ILIKE ? OR imei LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var phoneModels []models.PhoneModel
	if err := applyPagination(query, filter, "created_at DESC").Find(&phoneModels).Error; err != nil {
		return nil, 0, err
	}

	phones := make([]inventory.Phone, len(phoneModels))
	for i, model := range phoneModels {
		phones[i] = *model.ToDomain()
	}
	return phones, total, nil
}

// Save creates or updates a phone with the optimistic version check
func (r *GormPhoneRepository) Save(ctx context.Context, phone *inventory.Phone) error {
	model := models.PhoneModelFromDomain(phone)
	return saveVersioned(dbFromContext(ctx, r.db), model, phone)
}

// Delete removes a phone from inventory
func (r *GormPhoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.PhoneModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPhoneRepository implements PhoneRepository
var _ inventory.PhoneRepository = (*GormPhoneRepository)(nil)
