package command

import (
	"fmt"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

const (
	msgCommandNotFound = "Команда не распознана. Список команд: /help"
	msgInternalError   = "Не удалось выполнить команду. Попробуйте позже."

	msgSetBalanceUsage = "Команда введена неверно! Введите /set_balance <новый баланс>"
	msgBalanceSet      = "Ваш баланс изменен. Теперь он составляет %s"
	msgBalance         = "Ваш текущий баланс: %s"

	msgAmountNotPositive = "Все суммы должны быть больше нуля!"
	msgAmountNegative    = "Ожидаемые доходы и расходы не могут быть отрицательными!"
	msgOperationUsage    = "Команда введена неверно! Введите /%s [сумма] [название категории]"
	msgOperationAdded    = "Добавлен %s по категории '%s': %s\nТекущий баланс: %s"
	msgCategoryMissing   = "Категория %s '%s' не существует! Посмотреть доступные категории: /list_%s_categories"

	msgCategoryArgs           = "Данная команда принимает [название категории] в одно или несколько слов."
	msgCategoryInvalidName    = "Название категории введено неверно. Оно может содержать от 1 до 64 символов латиницы, кириллицы, цифр, тире и пробелов"
	msgCategoryAdded          = "Категория %s '%s' успешно добавлена"
	msgCategoryStandardExists = "Категория %s '%s' уже существует среди стандартных категорий."
	msgCategoryPersonalExists = "Категория %s '%s' уже существует."
	msgCategoryRemoved        = "Категория %s '%s' успешно удалена"
	msgCategoryNotExists      = "Пользовательской категории %s '%s' не существует!"
	msgCategoryListHeader     = "Все доступные вам категории %s:"
	msgCategoryListStandard   = "Стандартные:"
	msgCategoryListPersonal   = "Персональные:"
	msgCategoryListEmpty      = "<Нет категорий>"

	msgReportUsage       = "Команда /report_expense принимает 1 аргумент [mm.yyyy], например \"/report_expense 11.2023\""
	msgReportInvalidDate = "Переданы неверные данные месяца и года.\nДата должна быть передана в виде \"MM.YYYY\", например, \"11.2023\"."
	msgReportEmpty       = "Расходов в этом месяце не было."
	msgReportHeader      = "Подготовил отчёт по вашим расходам за указанный месяц:"
	msgReportLine        = "%s: %s руб."

	msgInvalidYearMonth  = "Дата введена неверно! Введите ее в формате [mm.yyyy - месяц.год]"
	msgBudgetCreateHint  = "/budget_create [mm.yyyy - месяц.год] [ожидаемый доход] [ожидаемый расходы]"
	msgBudgetCreateUsage = "Неверно введена команда! Введите " + msgBudgetCreateHint
	msgBudgetEditUsage   = "Неверно введена команда! Введите /budget_set_[income/expenses] [mm.yyyy - месяц.год] [ожидаемый доход/расход]"
	msgBudgetExists      = "Бюджет на %s уже существует! Измените его командой /budget_set_[income/expenses] [mm.yyyy - месяц.год] [ожидаемый доход/расход]"
	msgBudgetCreated     = "Бюджет на %s создан:\nОжидаемые доходы: %s\nОжидаемые расходы: %s"
	msgBudgetEdited      = "Бюджет на %s изменен:\nОжидаемые доходы: %s\nОжидаемые расходы: %s"
	msgBudgetPast        = "Вы не можете изменять бюджеты за прошедшие месяцы!"
	msgBudgetNotFound    = "Бюджет на этот период не найден! Создайте его командой " + msgBudgetCreateHint
	msgBudgetNoCurrent   = "Бюджет на %s не найден! Создайте его командой " + msgBudgetCreateHint
	msgBudgetCurrent     = "Бюджет на %s:"
	msgBudgetRemaining   = "Осталось потратить: %s"

	msgBudgetListUsage = "Неверно введена команда! Введите\n" +
		"или /budget_list - вывод бюджетов за 12 месяцев (текущий + предыдущие),\n" +
		"или /budget_list [год] - вывод бюджетов за определенный год,\n" +
		"или /budget_list [mm.yyyy - месяц.год] [mm.yyyy - месяц.год] - вывод бюджетов за указанный промежуток."
	msgBudgetRangeInverted = "Дата начала не может быть позднее даты конца периода!"
	msgNoBudgets           = "У вас не было бюджетов за этот период. Для создания бюджета введите " + msgBudgetCreateHint
	msgBudgetListHeader    = "Ваши запланированные доходы и расходы по месяцам:"
	msgBudgetExpected      = "Ожидание: + %s | - %s"
	msgBudgetActual        = "Реальность: + %s | - %s"
	msgBudgetListRolling   = "Данные показаны за последние 12 месяцев. Чтобы посмотреть данные, например, за 2022, введите /budget_list 2022.\n" +
		"Для показа данных по определенным месяцам, например, с ноября 2022 по январь 2023 введите /budget_list 10.2022 01.2023"
	msgBudgetListYear  = "Данные показаны за %d год."
	msgBudgetListRange = "Данные показаны за %d месяц(-ев)."

	msgDigestHeader = "Итоги месяца %s:"

	msgStart = "Добро пожаловать в бота для учета финансов!\n" + msgCommands
	msgHelp  = msgCommands

	msgCommands = "Доступные команды:\n" +
		"/set_balance [сумма] - установить текущий баланс\n" +
		"/balance - показать текущий баланс\n" +
		"/add_income [сумма] [категория] - добавить доход\n" +
		"/add_expense [сумма] [категория] - добавить расход\n" +
		"/add_income_category [название] - добавить категорию доходов\n" +
		"/add_expense_category [название] - добавить категорию расходов\n" +
		"/remove_income_category [название] - удалить категорию доходов\n" +
		"/remove_expense_category [название] - удалить категорию расходов\n" +
		"/list_categories - все категории\n" +
		"/list_income_categories - категории доходов\n" +
		"/list_expense_categories - категории расходов\n" +
		"/report_expense [mm.yyyy] - отчёт по расходам за месяц\n" +
		"/budget - бюджет на текущий месяц\n" +
		"/budget_create [mm.yyyy] [доход] [расход] - создать бюджет\n" +
		"/budget_set_income [mm.yyyy] [доход] - изменить ожидаемый доход\n" +
		"/budget_set_expenses [mm.yyyy] [расход] - изменить ожидаемый расход\n" +
		"/budget_list [год | mm.yyyy mm.yyyy] - бюджеты за период"
)

// pluralLabel is the genitive plural used in "категория доходов/расходов".
func pluralLabel(categoryType model.CategoryType) string {
	if categoryType == model.CategoryIncome {
		return "доходов"
	}
	return "расходов"
}

// singularLabel names one operation of the type.
func singularLabel(categoryType model.CategoryType) string {
	if categoryType == model.CategoryIncome {
		return "доход"
	}
	return "расход"
}

func monthTitle(month service.YearMonth) string {
	return fmt.Sprintf("%s %d", monthName(month.Month), month.Year)
}
