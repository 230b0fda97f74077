package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/finance"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, int64, error) {
	return r.findWhere(ctx, filter, nil)
}

// FindByPeriod lists expenses spent within [from, to)
func (r *GormExpenseRepository) FindByPeriod(ctx context.Context, from, to time.Time, filter shared.Filter) ([]finance.Expense, int64, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("spent_at >= ? AND spent_at < ?", from, to)
	})
}

func (r *GormExpenseRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]finance.Expense, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&models.ExpenseModel{})
	if scope != nil {
		query = scope(query)
	}
	if expenseType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", expenseType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenseModels []models.ExpenseModel
	if err := applyPagination(query, filter, "spent_at DESC").Find(&expenseModels).Error; err != nil {
		return nil, 0, err
	}

	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, total, nil
}

// SumByPeriod totals expense amounts within [from, to)
func (r *GormExpenseRepository) SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := dbFromContext(ctx, r.db).
		Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Save creates or updates an expense with the optimistic version check
func (r *GormExpenseRepository) Save(ctx context.Context, e *finance.Expense) error {
	model := models.ExpenseModelFromDomain(e)
	return saveVersioned(dbFromContext(ctx, r.db), model, e)
}

// Delete removes an expense record
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
