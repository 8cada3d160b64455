package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

func handleStart(_ context.Context, _ Request) (string, error) {
	return msgStart, nil
}

func handleHelp(_ context.Context, _ Request) (string, error) {
	return msgHelp, nil
}

func handleSetBalance(ctx context.Context, req Request) (string, error) {
	if len(req.Args) != 1 {
		return "", reject(msgSetBalanceUsage, service.ErrMalformedCommand)
	}
	amount, ok := parseAmount(req.Args[0])
	if !ok {
		return "", reject(msgSetBalanceUsage, service.ErrMalformedCommand)
	}
	if err := req.Services.Users.SetBalance(ctx, req.User, amount); err != nil {
		return "", err
	}
	return fmt.Sprintf(msgBalanceSet, formatAmount(req.User.Balance)), nil
}

func handleBalance(_ context.Context, req Request) (string, error) {
	return fmt.Sprintf(msgBalance, formatAmount(req.User.Balance)), nil
}

// addOperation handles /add_income and /add_expense: [amount] [category words...].
func addOperation(categoryType model.CategoryType) HandlerFunc {
	usage := fmt.Sprintf(msgOperationUsage, "add_"+categoryType.String())
	return func(ctx context.Context, req Request) (string, error) {
		if len(req.Args) < 2 {
			return "", reject(usage, service.ErrMalformedCommand)
		}
		amount, ok := parseAmount(req.Args[0])
		if !ok {
			return "", reject(usage, service.ErrMalformedCommand)
		}
		name := strings.Join(req.Args[1:], " ")

		_, category, err := req.Services.Users.AddOperation(ctx, req.User, categoryType, amount, name)
		switch {
		case err == nil:
			return fmt.Sprintf(msgOperationAdded,
				singularLabel(categoryType), category.Name, formatAmount(amount), formatAmount(req.User.Balance)), nil
		case errors.Is(err, service.ErrInvalidAmount):
			return "", reject(msgAmountNotPositive, err)
		case errors.Is(err, service.ErrCategoryNotFound):
			return "", reject(fmt.Sprintf(msgCategoryMissing, pluralLabel(categoryType), name, categoryType), err)
		default:
			return "", err
		}
	}
}
