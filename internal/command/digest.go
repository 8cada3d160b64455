package command

import (
	"context"
	"errors"
	"fmt"

	"personal-finance-bot/internal/service"
)

// Recipients returns the chat ids of every known user.
func (d *Dispatcher) Recipients(ctx context.Context) ([]int64, error) {
	users, err := service.New(d.store, d.clock).Users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	chatIDs := make([]int64, 0, len(users))
	for _, user := range users {
		chatIDs = append(chatIDs, user.ChatID)
	}
	return chatIDs, nil
}

// MonthlyDigest renders the budget summary of month for one chat. The boolean is false when
// the user has no budget for that month and nothing should be sent.
func (d *Dispatcher) MonthlyDigest(ctx context.Context, chatID int64, month service.YearMonth) (string, bool, error) {
	var digest string
	err := d.store.Transaction(ctx, func(tx service.Store) error {
		user, err := tx.FindUser(ctx, chatID)
		if err != nil {
			return err
		}
		period := service.Period{Kind: service.PeriodRange, Months: []service.YearMonth{month}}
		summaries, err := service.New(tx, d.clock).Reports.BudgetList(ctx, user.ID, period)
		if err != nil {
			return err
		}
		digest = fmt.Sprintf(msgDigestHeader, monthTitle(month)) + "\n" + monthFigures(summaries[0])
		return nil
	})
	switch {
	case err == nil:
		d.metrics.observe("digest", outcomeOK)
		return digest, true, nil
	case errors.Is(err, service.ErrNoBudgets), errors.Is(err, service.ErrUserNotFound):
		return "", false, nil
	default:
		d.metrics.observe("digest", outcomeFailed)
		return "", false, fmt.Errorf("digest for chat %d: %w", chatID, err)
	}
}
