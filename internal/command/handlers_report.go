package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personal-finance-bot/internal/service"
)

func handleExpenseReport(ctx context.Context, req Request) (string, error) {
	if len(req.Args) != 1 {
		return "", reject(msgReportUsage, service.ErrMalformedCommand)
	}
	month, err := service.ParseYearMonth(req.Args[0])
	if err != nil {
		return "", reject(msgReportInvalidDate, err)
	}

	totals, err := req.Services.Reports.ExpenseReport(ctx, req.User.ID, month)
	switch {
	case errors.Is(err, service.ErrEmptyReport):
		return "", reject(msgReportEmpty, err)
	case err != nil:
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(msgReportHeader + "\n")
	for _, total := range totals {
		builder.WriteString(fmt.Sprintf(msgReportLine, total.Category, formatAmount(total.Amount)))
		builder.WriteByte('\n')
	}
	return builder.String(), nil
}
