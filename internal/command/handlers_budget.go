package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

func handleCreateBudget(ctx context.Context, req Request) (string, error) {
	if len(req.Args) != 3 {
		return "", reject(msgBudgetCreateUsage, service.ErrMalformedCommand)
	}
	month, err := service.ParseYearMonth(req.Args[0])
	if err != nil {
		return "", reject(msgInvalidYearMonth, err)
	}
	income, okIncome := parseAmount(req.Args[1])
	expenses, okExpenses := parseAmount(req.Args[2])
	if !okIncome || !okExpenses {
		return "", reject(msgBudgetCreateUsage, service.ErrMalformedCommand)
	}

	budget, err := req.Services.Budgets.Create(ctx, req.User.ID, month, income, expenses)
	switch {
	case err == nil:
		return budgetReply(msgBudgetCreated, month, budget), nil
	case errors.Is(err, service.ErrInvalidAmount):
		return "", reject(msgAmountNegative, err)
	case errors.Is(err, service.ErrBudgetExists):
		return "", reject(fmt.Sprintf(msgBudgetExists, monthTitle(month)), err)
	default:
		return "", err
	}
}

// editBudget handles /budget_set_income and /budget_set_expenses: [MM.YYYY] [amount].
func editBudget(field service.BudgetField) HandlerFunc {
	return func(ctx context.Context, req Request) (string, error) {
		if len(req.Args) != 2 {
			return "", reject(msgBudgetEditUsage, service.ErrMalformedCommand)
		}
		month, err := service.ParseYearMonth(req.Args[0])
		if err != nil {
			return "", reject(msgInvalidYearMonth, err)
		}
		amount, ok := parseAmount(req.Args[1])
		if !ok {
			return "", reject(msgBudgetEditUsage, service.ErrMalformedCommand)
		}

		budget, err := req.Services.Budgets.Edit(ctx, req.User.ID, month, field, amount)
		switch {
		case err == nil:
			return budgetReply(msgBudgetEdited, month, budget), nil
		case errors.Is(err, service.ErrPastPeriod):
			return "", reject(msgBudgetPast, err)
		case errors.Is(err, service.ErrInvalidAmount):
			return "", reject(msgAmountNotPositive, err)
		case errors.Is(err, service.ErrBudgetNotFound):
			return "", reject(msgBudgetNotFound, err)
		default:
			return "", err
		}
	}
}

func budgetReply(template string, month service.YearMonth, budget *model.Budget) string {
	return fmt.Sprintf(template, monthTitle(month), formatAmount(budget.ExpectedIncome), formatAmount(budget.ExpectedExpenses))
}

// handleCurrentBudget shows the plan of the current month next to what already happened.
func handleCurrentBudget(ctx context.Context, req Request) (string, error) {
	current := service.YearMonthOf(req.Now)
	period := service.Period{Kind: service.PeriodRange, Months: []service.YearMonth{current}}

	summaries, err := req.Services.Reports.BudgetList(ctx, req.User.ID, period)
	switch {
	case errors.Is(err, service.ErrNoBudgets):
		return "", reject(fmt.Sprintf(msgBudgetNoCurrent, monthTitle(current)), err)
	case err != nil:
		return "", err
	}

	summary := summaries[0]
	remaining := summary.ExpectedExpenses.Sub(summary.ActualExpenses)
	return strings.Join([]string{
		fmt.Sprintf(msgBudgetCurrent, monthTitle(current)),
		monthFigures(summary),
		fmt.Sprintf(msgBudgetRemaining, formatAmount(remaining)),
	}, "\n"), nil
}

func handleBudgetList(ctx context.Context, req Request) (string, error) {
	period, err := service.ResolvePeriod(req.Args, req.Now)
	switch {
	case errors.Is(err, service.ErrMalformedCommand):
		return "", reject(msgBudgetListUsage, err)
	case errors.Is(err, service.ErrInvalidDate):
		return "", reject(msgInvalidYearMonth, err)
	case errors.Is(err, service.ErrRangeInverted):
		return "", reject(msgBudgetRangeInverted, err)
	case err != nil:
		return "", err
	}

	summaries, err := req.Services.Reports.BudgetList(ctx, req.User.ID, period)
	switch {
	case errors.Is(err, service.ErrNoBudgets):
		return "", reject(msgNoBudgets, err)
	case err != nil:
		return "", err
	}
	return renderBudgetList(summaries, period), nil
}

func renderBudgetList(summaries []service.MonthSummary, period service.Period) string {
	var builder strings.Builder
	builder.WriteString(msgBudgetListHeader + "\n")
	for _, summary := range summaries {
		builder.WriteString(monthTitle(summary.Month) + ":\n")
		builder.WriteString(monthFigures(summary))
		builder.WriteString("\n\n")
	}
	builder.WriteString(periodFooter(period))
	return builder.String()
}

func monthFigures(summary service.MonthSummary) string {
	return fmt.Sprintf(msgBudgetExpected, formatAmount(summary.ExpectedIncome), formatAmount(summary.ExpectedExpenses)) +
		"\n" +
		fmt.Sprintf(msgBudgetActual, formatAmount(summary.ActualIncome), formatAmount(summary.ActualExpenses))
}

func periodFooter(period service.Period) string {
	switch period.Kind {
	case service.PeriodYear:
		return fmt.Sprintf(msgBudgetListYear, period.From().Year)
	case service.PeriodRange:
		return fmt.Sprintf(msgBudgetListRange, len(period.Months))
	default:
		return msgBudgetListRolling
	}
}
