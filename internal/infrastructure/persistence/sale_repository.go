package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/sales"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func preloadInstallments(db *gorm.DB) *gorm.DB {
	return db.Preload("Installments", func(q *gorm.DB) *gorm.DB {
		return q.Order("number ASC")
	})
}

// FindByID finds a sale and its installments by sale ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := preloadInstallments(dbFromContext(ctx, r.db)).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a sale by ID with an exclusive row lock on the
// sale row. Installments are loaded without locks; they only change through
// the locked sale.
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	db := dbFromContext(ctx, r.db)
	var model models.SaleModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := db.Where("sale_id = ?", id).Order("number ASC").
		Find(&model.Installments).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInstallmentID finds the sale owning the given installment
func (r *GormSaleRepository) FindByInstallmentID(ctx context.Context, installmentID uuid.UUID) (*sales.Sale, error) {
	db := dbFromContext(ctx, r.db)
	var installment models.InstallmentModel
	if err := db.First(&installment, "id = ?", installmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, installment.SaleID)
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, int64, error) {
	return r.findWhere(ctx, filter, nil)
}

// FindByCustomerID lists a customer's sales
func (r *GormSaleRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]sales.Sale, int64, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ?", customerID)
	})
}

// FindByStatus lists sales with the given status
func (r *GormSaleRepository) FindByStatus(ctx context.Context, status sales.SaleStatus, filter shared.Filter) ([]sales.Sale, int64, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

func (r *GormSaleRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]sales.Sale, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&models.SaleModel{})
	if scope != nil {
		query = scope(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var saleModels []models.SaleModel
	if err := preloadInstallments(applyPagination(query, filter, "sale_date DESC")).
		Find(&saleModels).Error; err != nil {
		return nil, 0, err
	}

	result := make([]sales.Sale, len(saleModels))
	for i, model := range saleModels {
		result[i] = *model.ToDomain()
	}
	return result, total, nil
}

// CountActiveByCustomerID counts a customer's active sales
func (r *GormSaleRepository) CountActiveByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.SaleModel{}).
		Where("customer_id = ? AND status = ?", customerID, sales.SaleStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsActiveByPhoneID reports whether any sale references the phone
func (r *GormSaleRepository) ExistsActiveByPhoneID(ctx context.Context, phoneID uuid.UUID) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.SaleModel{}).
		Where("phone_id = ?", phoneID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a sale and its installments with the optimistic
// version check on the sale row
func (r *GormSaleRepository) Save(ctx context.Context, s *sales.Sale) error {
	db := dbFromContext(ctx, r.db)
	model := models.SaleModelFromDomain(s)
	installments := model.Installments
	model.Installments = nil

	if err := saveVersioned(db, model, s); err != nil {
		return err
	}
	if len(installments) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&installments).Error
}

// Delete removes a sale and its installments
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Delete(&models.InstallmentModel{}, "sale_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)

// GormInstallmentRepository implements InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// FindAll lists installments across all sales ordered by due date
func (r *GormInstallmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Installment, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.InstallmentModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return r.listPage(query, filter)
}

// FindDueBefore lists unpaid installments whose due date is before asOf
func (r *GormInstallmentRepository) FindDueBefore(ctx context.Context, asOf time.Time, filter shared.Filter) ([]sales.Installment, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.InstallmentModel{}).
		Where("status <> ? AND due_date < ?", sales.InstallmentStatusPaid, asOf)
	return r.listPage(query, filter)
}

func (r *GormInstallmentRepository) listPage(query *gorm.DB, filter shared.Filter) ([]sales.Installment, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var installmentModels []models.InstallmentModel
	if err := applyPagination(query, filter, "due_date ASC").Find(&installmentModels).Error; err != nil {
		return nil, 0, err
	}

	installments := make([]sales.Installment, len(installmentModels))
	for i, model := range installmentModels {
		installments[i] = *model.ToDomain()
	}
	return installments, total, nil
}

// FindBySaleID lists a sale's installments ordered by number
func (r *GormInstallmentRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]sales.Installment, error) {
	var installmentModels []models.InstallmentModel
	if err := dbFromContext(ctx, r.db).
		Where("sale_id = ?", saleID).
		Order("number ASC").
		Find(&installmentModels).Error; err != nil {
		return nil, err
	}

	installments := make([]sales.Installment, len(installmentModels))
	for i, model := range installmentModels {
		installments[i] = *model.ToDomain()
	}
	return installments, nil
}

// MarkOverdue transitions the given pending installments to overdue
func (r *GormInstallmentRepository) MarkOverdue(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := dbFromContext(ctx, r.db).
		Model(&models.InstallmentModel{}).
		Where("id IN ? AND status = ?", ids, sales.InstallmentStatusPending).
		Updates(map[string]interface{}{
			"status":     sales.InstallmentStatusOverdue,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormInstallmentRepository implements InstallmentRepository
var _ sales.InstallmentRepository = (*GormInstallmentRepository)(nil)
