package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var model models.PartnerModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a partner by ID with an exclusive row lock
func (r *GormPartnerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var model models.PartnerModel
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

// FindAll finds partners matching the filter
func (r *GormPartnerRepository) FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) ([]partner.Partner, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&models.PartnerModel{})
	if !includeDeleted {
		query = query.Where("status = ?", partner.PartnerStatusActive)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var partnerModels []models.PartnerModel
	if err := applyPagination(query, filter, "created_at ASC").Find(&partnerModels).Error; err != nil {
		return nil, 0, err
	}

	partners := make([]partner.Partner, len(partnerModels))
	for i, model := range partnerModels {
		partners[i] = *model.ToDomain()
	}
	return partners, total, nil
}

// FindAllActiveForUpdate loads every active partner with exclusive row locks.
// Rows are ordered by ID so concurrent allocations acquire locks in the same
// order.
func (r *GormPartnerRepository) FindAllActiveForUpdate(ctx context.Context) ([]*partner.Partner, error) {
	var partnerModels []models.PartnerModel
	if err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", partner.PartnerStatusActive).
		Order("id ASC").
		Find(&partnerModels).Error; err != nil {
		return nil, err
	}

	partners := make([]*partner.Partner, len(partnerModels))
	for i := range partnerModels {
		partners[i] = partnerModels[i].ToDomain()
	}
	return partners, nil
}

// Save creates or updates a partner with the optimistic version check
func (r *GormPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	model := models.PartnerModelFromDomain(p)
	return saveVersioned(dbFromContext(ctx, r.db), model, p)
}

// SaveAll persists several partners within the current transaction
func (r *GormPartnerRepository) SaveAll(ctx context.Context, partners []*partner.Partner) error {
	for _, p := range partners {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Ensure GormPartnerRepository implements PartnerRepository
var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)

// GormPartnerTransactionRepository implements PartnerTransactionRepository using GORM
type GormPartnerTransactionRepository struct {
	db *gorm.DB
}

// NewGormPartnerTransactionRepository creates a new GormPartnerTransactionRepository
func NewGormPartnerTransactionRepository(db *gorm.DB) *GormPartnerTransactionRepository {
	return &GormPartnerTransactionRepository{db: db}
}

// Append records a new ledger entry
func (r *GormPartnerTransactionRepository) Append(ctx context.Context, tx *partner.PartnerTransaction) error {
	model := models.PartnerTransactionModelFromDomain(tx)
	return dbFromContext(ctx, r.db).Create(model).Error
}

// AppendAll records several ledger entries
func (r *GormPartnerTransactionRepository) AppendAll(ctx context.Context, txs []*partner.PartnerTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	txModels := make([]*models.PartnerTransactionModel, len(txs))
	for i, tx := range txs {
		txModels[i] = models.PartnerTransactionModelFromDomain(tx)
	}
	return dbFromContext(ctx, r.db).Create(txModels).Error
}

// FindByID finds a single ledger entry
func (r *GormPartnerTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerTransaction, error) {
	var model models.PartnerTransactionModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartnerID lists a partner's ledger entries, newest first
func (r *GormPartnerTransactionRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]partner.PartnerTransaction, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.PartnerTransactionModel{}).
		Where("partner_id = ?", partnerID)
	return r.list(query, filter)
}

// FindAll lists ledger entries across all partners, newest first
func (r *GormPartnerTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.PartnerTransaction, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.PartnerTransactionModel{})
	if txType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", txType)
	}
	return r.list(query, filter)
}

func (r *GormPartnerTransactionRepository) list(query *gorm.DB, filter shared.Filter) ([]partner.PartnerTransaction, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txModels []models.PartnerTransactionModel
	if err := applyPagination(query, filter, "occurred_at DESC").Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]partner.PartnerTransaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, total, nil
}

// Ensure GormPartnerTransactionRepository implements PartnerTransactionRepository
var _ partner.PartnerTransactionRepository = (*GormPartnerTransactionRepository)(nil)

// GormPartnerHistoryRepository implements PartnerHistoryRepository using GORM
type GormPartnerHistoryRepository struct {
	db *gorm.DB
}

// NewGormPartnerHistoryRepository creates a new GormPartnerHistoryRepository
func NewGormPartnerHistoryRepository(db *gorm.DB) *GormPartnerHistoryRepository {
	return &GormPartnerHistoryRepository{db: db}
}

// Append records a snapshot
func (r *GormPartnerHistoryRepository) Append(ctx context.Context, h *partner.PartnerHistory) error {
	model := models.PartnerHistoryModelFromDomain(h)
	return dbFromContext(ctx, r.db).Create(model).Error
}

// AppendAll records several snapshots
func (r *GormPartnerHistoryRepository) AppendAll(ctx context.Context, hs []*partner.PartnerHistory) error {
	if len(hs) == 0 {
		return nil
	}
	historyModels := make([]*models.PartnerHistoryModel, len(hs))
	for i, h := range hs {
		historyModels[i] = models.PartnerHistoryModelFromDomain(h)
	}
	return dbFromContext(ctx, r.db).Create(historyModels).Error
}

// FindByPartnerID lists a partner's snapshots, newest first
func (r *GormPartnerHistoryRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]partner.PartnerHistory, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&models.PartnerHistoryModel{}).Where("partner_id = ?", partnerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var historyModels []models.PartnerHistoryModel
	if err := applyPagination(query, filter, "recorded_at DESC").Find(&historyModels).Error; err != nil {
		return nil, 0, err
	}

	histories := make([]partner.PartnerHistory, len(historyModels))
	for i, model := range historyModels {
		histories[i] = *model.ToDomain()
	}
	return histories, total, nil
}

// Ensure GormPartnerHistoryRepository implements PartnerHistoryRepository
var _ partner.PartnerHistoryRepository = (*GormPartnerHistoryRepository)(nil)
