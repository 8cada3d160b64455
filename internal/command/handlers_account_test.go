package command

import (
	"testing"

	"github.com/shopspring/decimal"

	"personal-finance-bot/internal/model"
)

func TestSetBalance(t *testing.T) {
	h := newHarness(t)
	usage := "Команда введена неверно! Введите /set_balance <новый баланс>"

	h.expect(usage, "set_balance")
	h.expect(usage, "set_balance", "сто")
	h.expect(usage, "set_balance", "1", "2")
	h.expect("Ваш баланс изменен. Теперь он составляет 100 000", "set_balance", "100000")
	h.expect("Ваш баланс изменен. Теперь он составляет 1 234.50", "set_balance", "1234,5")
	h.expect("Ваш баланс изменен. Теперь он составляет -20", "set_balance", "-20")
	h.expect("Ваш текущий баланс: -20", "balance")
}

func TestSetBalanceRejectsAmountsOutsideColumnRange(t *testing.T) {
	h := newHarness(t)
	usage := "Команда введена неверно! Введите /set_balance <новый баланс>"

	for _, raw := range []string{"100000000000000000000", "1e30", "0.005"} {
		h.expect(usage, "set_balance", raw)
	}
	h.expect("Ваш баланс изменен. Теперь он составляет 999 999 999 999 999 999.99", "set_balance", "999999999999999999.99")
}

func TestAddOperationRejectsSubKopeckAmounts(t *testing.T) {
	h := newHarness(t)
	h.expect("Категория расходов 'Такси' успешно добавлена", "add_expense_category", "Такси")
	usage := "Команда введена неверно! Введите /add_expense [сумма] [название категории]"

	h.expect(usage, "add_expense", "0.005", "Такси")
	h.expect(usage, "add_expense", "1e30", "Такси")
	h.expect("Добавлен расход по категории 'Такси': 0.10\nТекущий баланс: -0.10", "add_expense", "0.1", "Такси")

	if balance := h.user().Balance; !balance.Equal(decimal.RequireFromString("-0.1")) {
		t.Fatalf("unexpected stored balance %s", balance)
	}
}

func TestAddOperation(t *testing.T) {
	h := newHarness(t)
	h.standardCategory(model.CategoryIncome, "Зарплата")
	h.expect("Ваш баланс изменен. Теперь он составляет 1 000", "set_balance", "1000")
	h.expect("Категория расходов 'Такси' успешно добавлена", "add_expense_category", "Такси")

	h.expect("Добавлен доход по категории 'Зарплата': 50 000\nТекущий баланс: 51 000", "add_income", "50000", "зарплата")
	h.expect("Добавлен расход по категории 'Такси': 350.25\nТекущий баланс: 50 649.75", "add_expense", "350.25", "ТАКСИ")

	h.expect("Все суммы должны быть больше нуля!", "add_expense", "0", "Такси")
	h.expect("Все суммы должны быть больше нуля!", "add_income", "-5", "Зарплата")
	h.expect("Команда введена неверно! Введите /add_expense [сумма] [название категории]", "add_expense", "100")
	h.expect("Команда введена неверно! Введите /add_income [сумма] [название категории]", "add_income", "много", "Зарплата")
	h.expect("Категория доходов 'Такси' не существует! Посмотреть доступные категории: /list_income_categories",
		"add_income", "10", "Такси")

	if balance := h.user().Balance; !balance.Equal(decimal.RequireFromString("50649.75")) {
		t.Fatalf("unexpected stored balance %s", balance)
	}
}

func TestAddOperationMultiWordCategory(t *testing.T) {
	h := newHarness(t)
	h.expect("Категория расходов 'Коммунальные платежи' успешно добавлена", "add_expense_category", "Коммунальные", "платежи")

	h.expect("Добавлен расход по категории 'Коммунальные платежи': 4 500\nТекущий баланс: -4 500",
		"add_expense", "4500", "коммунальные", "платежи")
}
