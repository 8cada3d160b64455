package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

// OperationRepository records income and expense operations.
type OperationRepository struct {
	db *gorm.DB
}

func NewOperationRepository(db *gorm.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// Insert stores the operation. Timestamps are kept in UTC so range filters compare consistently.
func (r *OperationRepository) Insert(ctx context.Context, operation *model.Operation) error {
	if operation.CreatedAt.IsZero() {
		operation.CreatedAt = time.Now()
	}
	operation.CreatedAt = operation.CreatedAt.UTC()
	if err := r.db.WithContext(ctx).Create(operation).Error; err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

type categorySumRow struct {
	Category string
	Amount   decimal.Decimal
	FirstID  uint
}

// SumByCategory totals the user's operations of one category type in [from, to).
func (r *OperationRepository) SumByCategory(ctx context.Context, userID uint, categoryType model.CategoryType, from, to time.Time) ([]service.CategoryTotal, error) {
	var rows []categorySumRow
	err := r.db.WithContext(ctx).
		Model(&model.Operation{}).
		Select("categories.name AS category, SUM(operations.amount) AS amount, MIN(operations.id) AS first_id").
		Joins("JOIN categories ON categories.id = operations.category_id").
		Where("operations.user_id = ? AND categories.type = ?", userID, categoryType).
		Where("operations.created_at >= ? AND operations.created_at < ?", from.UTC(), to.UTC()).
		Group("categories.id, categories.name").
		Order("first_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sum operations: %w", err)
	}

	totals := make([]service.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, service.CategoryTotal{Category: row.Category, Amount: row.Amount})
	}
	return totals, nil
}
