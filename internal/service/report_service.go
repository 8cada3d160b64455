package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"personal-finance-bot/internal/model"
)

// MonthSummary compares the planned and the actual figures of one month.
type MonthSummary struct {
	Month            YearMonth
	ExpectedIncome   decimal.Decimal
	ExpectedExpenses decimal.Decimal
	ActualIncome     decimal.Decimal
	ActualExpenses   decimal.Decimal
}

// ReportService aggregates operations into reports.
type ReportService struct {
	store Store
	clock Clock
}

func NewReportService(store Store, clock Clock) *ReportService {
	return &ReportService{store: store, clock: clock}
}

// ExpenseReport sums the user's expenses of one month per category, in the order the
// categories first appear among the operations.
func (s *ReportService) ExpenseReport(ctx context.Context, userID uint, month YearMonth) ([]CategoryTotal, error) {
	from, to := month.Bounds(s.clock().Location())
	totals, err := s.store.SumOperations(ctx, userID, model.CategoryExpense, from, to)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("expenses %s: %w", month, ErrEmptyReport)
	}
	return totals, nil
}

// BudgetList summarises every month of the period that has a budget. When the period holds
// no budget at all the result is ErrNoBudgets, even if operations were recorded.
func (s *ReportService) BudgetList(ctx context.Context, userID uint, period Period) ([]MonthSummary, error) {
	if len(period.Months) == 0 {
		return nil, fmt.Errorf("empty period: %w", ErrNoBudgets)
	}

	budgets, err := s.store.ListBudgets(ctx, userID, period.From(), period.To())
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, fmt.Errorf("budgets %s: %w", period.Tag(), ErrNoBudgets)
	}

	summaries := make([]MonthSummary, 0, len(budgets))
	for _, budget := range budgets {
		month := YearMonth{Year: budget.Year, Month: time.Month(budget.Month)}
		income, err := s.monthTotal(ctx, userID, model.CategoryIncome, month)
		if err != nil {
			return nil, err
		}
		expenses, err := s.monthTotal(ctx, userID, model.CategoryExpense, month)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, MonthSummary{
			Month:            month,
			ExpectedIncome:   budget.ExpectedIncome,
			ExpectedExpenses: budget.ExpectedExpenses,
			ActualIncome:     income,
			ActualExpenses:   expenses,
		})
	}
	return summaries, nil
}

func (s *ReportService) monthTotal(ctx context.Context, userID uint, categoryType model.CategoryType, month YearMonth) (decimal.Decimal, error) {
	from, to := month.Bounds(s.clock().Location())
	totals, err := s.store.SumOperations(ctx, userID, categoryType, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(total.Amount)
	}
	return sum, nil
}
