package command

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

func monthName(month time.Month) string {
	if month < time.January || month > time.December {
		return month.String()
	}
	return monthNames[month-1]
}

// formatAmount groups thousands with a space and shows kopecks only when present:
// 100000 -> "100 000", 1234.5 -> "1 234.50".
func formatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole := rounded.Truncate(0)
	text := strings.ReplaceAll(humanize.BigComma(whole.BigInt()), ",", " ")
	if fraction := rounded.Sub(whole); !fraction.IsZero() {
		text += strings.TrimPrefix(fraction.StringFixed(2), "0")
	}
	return sign + text
}

// amountLimit bounds user input to what a DECIMAL(20,2) column holds.
var amountLimit = decimal.New(1, 18)

// parseAmount reads a user-typed number; a comma works as the decimal separator.
// At most 18 integer digits and 2 fraction digits are accepted.
func parseAmount(raw string) (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	if value.Abs().GreaterThanOrEqual(amountLimit) || !value.Truncate(2).Equal(value) {
		return decimal.Zero, false
	}
	return value, true
}
