package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/investor"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvestorRepository implements InvestorRepository using GORM
type GormInvestorRepository struct {
	db *gorm.DB
}

// NewGormInvestorRepository creates a new GormInvestorRepository
func NewGormInvestorRepository(db *gorm.DB) *GormInvestorRepository {
	return &GormInvestorRepository{db: db}
}

// FindByID finds an investor by its ID
func (r *GormInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (*investor.Investor, error) {
	var model models.InvestorModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an investor by ID with an exclusive row lock
func (r *GormInvestorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*investor.Investor, error) {
	var model models.InvestorModel
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

// FindAll finds investors matching the filter
func (r *GormInvestorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]investor.Investor, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&models.InvestorModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR national_id LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var investorModels []models.InvestorModel
	if err := applyPagination(query, filter, "created_at DESC").Find(&investorModels).Error; err != nil {
		return nil, 0, err
	}

	investors := make([]investor.Investor, len(investorModels))
	for i, model := range investorModels {
		investors[i] = *model.ToDomain()
	}
	return investors, total, nil
}

// Save creates or updates an investor with the optimistic version check
func (r *GormInvestorRepository) Save(ctx context.Context, i *investor.Investor) error {
	model := models.InvestorModelFromDomain(i)
	return saveVersioned(dbFromContext(ctx, r.db), model, i)
}

// Ensure GormInvestorRepository implements InvestorRepository
var _ investor.InvestorRepository = (*GormInvestorRepository)(nil)

// GormInvestorTransactionRepository implements InvestorTransactionRepository using GORM
type GormInvestorTransactionRepository struct {
	db *gorm.DB
}

// NewGormInvestorTransactionRepository creates a new GormInvestorTransactionRepository
func NewGormInvestorTransactionRepository(db *gorm.DB) *GormInvestorTransactionRepository {
	return &GormInvestorTransactionRepository{db: db}
}

// Append records a new ledger entry
func (r *GormInvestorTransactionRepository) Append(ctx context.Context, tx *investor.InvestorTransaction) error {
	model := models.InvestorTransactionModelFromDomain(tx)
	return dbFromContext(ctx, r.db).Create(model).Error
}

// FindByInvestorID lists an investor's ledger entries, newest first
func (r *GormInvestorTransactionRepository) FindByInvestorID(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]investor.InvestorTransaction, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.InvestorTransactionModel{}).
		Where("investor_id = ?", investorID)
	return r.list(query, filter)
}

// FindAll lists ledger entries across all investors, newest first
func (r *GormInvestorTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]investor.InvestorTransaction, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.InvestorTransactionModel{})
	if txType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", txType)
	}
	return r.list(query, filter)
}

func (r *GormInvestorTransactionRepository) list(query *gorm.DB, filter shared.Filter) ([]investor.InvestorTransaction, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txModels []models.InvestorTransactionModel
	if err := applyPagination(query, filter, "occurred_at DESC").Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]investor.InvestorTransaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, total, nil
}

// Ensure GormInvestorTransactionRepository implements InvestorTransactionRepository
var _ investor.InvestorTransactionRepository = (*GormInvestorTransactionRepository)(nil)
