package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"personal-finance-bot/internal/model"
)

// BudgetField selects which planned figure of a budget an edit changes.
type BudgetField int

const (
	BudgetIncome BudgetField = iota
	BudgetExpenses
)

func (f BudgetField) String() string {
	if f == BudgetIncome {
		return "income"
	}
	return "expenses"
}

// BudgetService validates and changes monthly budgets.
type BudgetService struct {
	store Store
	clock Clock
}

func NewBudgetService(store Store, clock Clock) *BudgetService {
	return &BudgetService{store: store, clock: clock}
}

// Create stores a budget for one month. Figures may be zero but not negative.
func (s *BudgetService) Create(ctx context.Context, userID uint, month YearMonth, income, expenses decimal.Decimal) (*model.Budget, error) {
	if income.IsNegative() || expenses.IsNegative() {
		return nil, fmt.Errorf("budget %s: %w", month, ErrInvalidAmount)
	}

	_, err := s.store.FindBudget(ctx, userID, month)
	switch {
	case err == nil:
		return nil, fmt.Errorf("budget %s: %w", month, ErrBudgetExists)
	case !errors.Is(err, ErrBudgetNotFound):
		return nil, err
	}

	budget := &model.Budget{
		UserID:           userID,
		Year:             month.Year,
		Month:            int(month.Month),
		ExpectedIncome:   income,
		ExpectedExpenses: expenses,
	}
	if err := s.store.SaveBudget(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Edit replaces one planned figure of an existing budget. Months before the current one are
// frozen; the check ignores the day of month.
func (s *BudgetService) Edit(ctx context.Context, userID uint, month YearMonth, field BudgetField, amount decimal.Decimal) (*model.Budget, error) {
	if month.Before(YearMonthOf(s.clock())) {
		return nil, fmt.Errorf("budget %s: %w", month, ErrPastPeriod)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("budget %s %s %s: %w", month, field, amount, ErrInvalidAmount)
	}

	budget, err := s.store.FindBudget(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	switch field {
	case BudgetIncome:
		budget.ExpectedIncome = amount
	case BudgetExpenses:
		budget.ExpectedExpenses = amount
	}
	if err := s.store.SaveBudget(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Get returns the budget of one month.
func (s *BudgetService) Get(ctx context.Context, userID uint, month YearMonth) (*model.Budget, error) {
	return s.store.FindBudget(ctx, userID, month)
}
