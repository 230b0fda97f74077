package persistence

import (
	"strings"

	"github.com/phoneshop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// aggregateModel is implemented by persistence models of aggregate roots
type aggregateModel interface {
	SetVersion(v int)
}

// saveVersioned inserts new aggregates and updates existing ones guarded by
// the optimistic version check. On a successful update the in-memory
// aggregate version is advanced to match the stored row.
func saveVersioned(db *gorm.DB, model aggregateModel, agg shared.AggregateRoot) error {
	version := agg.GetVersion()
	model.SetVersion(version + 1)

	result := db.Model(model).
		Where("id = ? AND version = ?", agg.GetID(), version).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		agg.IncrementVersion()
		return nil
	}

	var count int64
	if err := db.Session(&gorm.Session{NewDB: true}).
		Model(model).
		Where("id = ?", agg.GetID()).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrConcurrencyConflict
	}

	model.SetVersion(version)
	return db.Create(model).Error
}

// applyPagination applies page and ordering options to the query
func applyPagination(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
