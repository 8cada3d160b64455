package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

// BudgetRepository stores monthly budgets.
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Find(ctx context.Context, userID uint, month service.YearMonth) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, month.Year, int(month.Month)).
		First(&budget).Error
	switch {
	case err == nil:
		return &budget, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("budget %s: %w", month, service.ErrBudgetNotFound)
	default:
		return nil, fmt.Errorf("find budget: %w", err)
	}
}

// ListBetween returns budgets from..to inclusive, oldest first.
func (r *BudgetRepository) ListBetween(ctx context.Context, userID uint, from, to service.YearMonth) ([]model.Budget, error) {
	var budgets []model.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("year * 12 + month BETWEEN ? AND ?", from.Year*12+int(from.Month), to.Year*12+int(to.Month)).
		Order("year ASC, month ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Save inserts or updates a budget. A second budget for the same month is reported as
// service.ErrBudgetExists.
func (r *BudgetRepository) Save(ctx context.Context, budget *model.Budget) error {
	err := r.db.WithContext(ctx).Save(budget).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("budget %02d.%04d: %w", budget.Month, budget.Year, service.ErrBudgetExists)
	default:
		return fmt.Errorf("save budget: %w", err)
	}
}
