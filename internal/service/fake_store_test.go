package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"personal-finance-bot/internal/model"
)

var errStorage = errors.New("storage unavailable")

// fixedNow is "now" for every service test: the middle of November 2023.
var fixedNow = time.Date(2023, time.November, 15, 12, 0, 0, 0, time.UTC)

// fakeStore keeps everything in slices. Transaction restores a snapshot when fn fails.
type fakeStore struct {
	users      []model.User
	categories []model.Category
	operations []model.Operation
	budgets    []model.Budget
	nextID     uint

	// failSaves makes every Save*/Insert* call return errStorage.
	failSaves bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Transaction(_ context.Context, fn func(Store) error) error {
	snapshot := fakeStore{
		users:      append([]model.User(nil), s.users...),
		categories: append([]model.Category(nil), s.categories...),
		operations: append([]model.Operation(nil), s.operations...),
		budgets:    append([]model.Budget(nil), s.budgets...),
		nextID:     s.nextID,
	}
	if err := fn(s); err != nil {
		s.users, s.categories, s.operations, s.budgets, s.nextID =
			snapshot.users, snapshot.categories, snapshot.operations, snapshot.budgets, snapshot.nextID
		return err
	}
	return nil
}

func (s *fakeStore) FindUser(_ context.Context, chatID int64) (*model.User, error) {
	for _, user := range s.users {
		if user.ChatID == chatID {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("chat %d: %w", chatID, ErrUserNotFound)
}

func (s *fakeStore) SaveUser(_ context.Context, user *model.User) error {
	if s.failSaves {
		return errStorage
	}
	if user.ID == 0 {
		user.ID = s.id()
		s.users = append(s.users, *user)
		return nil
	}
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return fmt.Errorf("user %d missing", user.ID)
}

func (s *fakeStore) ListUsers(context.Context) ([]model.User, error) {
	return append([]model.User(nil), s.users...), nil
}

func (s *fakeStore) inScope(category model.Category, scope CategoryScope, categoryType model.CategoryType) bool {
	if category.Type != categoryType {
		return false
	}
	owner := scope.OwnerID()
	if owner == nil {
		return category.UserID == nil
	}
	return category.UserID != nil && *category.UserID == *owner
}

func (s *fakeStore) FindCategory(_ context.Context, scope CategoryScope, categoryType model.CategoryType, name string) (*model.Category, error) {
	for _, category := range s.categories {
		if s.inScope(category, scope, categoryType) && model.CategoryKey(category.Name) == model.CategoryKey(name) {
			found := category
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%s category %q: %w", categoryType, name, ErrCategoryNotFound)
}

func (s *fakeStore) ListCategories(_ context.Context, scope CategoryScope, categoryType model.CategoryType) ([]model.Category, error) {
	var categories []model.Category
	for _, category := range s.categories {
		if s.inScope(category, scope, categoryType) {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (s *fakeStore) CountCategoriesByName(_ context.Context, categoryType model.CategoryType, name string) (int64, error) {
	var count int64
	for _, category := range s.categories {
		if category.Type == categoryType && model.CategoryKey(category.Name) == model.CategoryKey(name) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) SaveCategory(_ context.Context, category *model.Category) error {
	if s.failSaves {
		return errStorage
	}
	category.NameKey = model.CategoryKey(category.Name)
	if category.ID == 0 {
		category.ID = s.id()
		s.categories = append(s.categories, *category)
		return nil
	}
	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i] = *category
			return nil
		}
	}
	return fmt.Errorf("category %d missing", category.ID)
}

func (s *fakeStore) DeleteCategory(_ context.Context, category *model.Category) error {
	kept := s.operations[:0:0]
	for _, operation := range s.operations {
		if operation.CategoryID != category.ID {
			kept = append(kept, operation)
		}
	}
	s.operations = kept

	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeStore) FindBudget(_ context.Context, userID uint, month YearMonth) (*model.Budget, error) {
	for _, budget := range s.budgets {
		if budget.UserID == userID && budget.Year == month.Year && budget.Month == int(month.Month) {
			found := budget
			return &found, nil
		}
	}
	return nil, fmt.Errorf("budget %s: %w", month, ErrBudgetNotFound)
}

func (s *fakeStore) ListBudgets(_ context.Context, userID uint, from, to YearMonth) ([]model.Budget, error) {
	var budgets []model.Budget
	for _, budget := range s.budgets {
		month := YearMonth{Year: budget.Year, Month: time.Month(budget.Month)}
		if budget.UserID == userID && !month.Before(from) && !month.After(to) {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Year*12+budgets[i].Month < budgets[j].Year*12+budgets[j].Month
	})
	return budgets, nil
}

func (s *fakeStore) SaveBudget(_ context.Context, budget *model.Budget) error {
	if s.failSaves {
		return errStorage
	}
	if budget.ID == 0 {
		for _, existing := range s.budgets {
			if existing.UserID == budget.UserID && existing.Year == budget.Year && existing.Month == budget.Month {
				return fmt.Errorf("duplicate budget: %w", ErrBudgetExists)
			}
		}
		budget.ID = s.id()
		s.budgets = append(s.budgets, *budget)
		return nil
	}
	for i := range s.budgets {
		if s.budgets[i].ID == budget.ID {
			s.budgets[i] = *budget
			return nil
		}
	}
	return fmt.Errorf("budget %d missing", budget.ID)
}

func (s *fakeStore) SumOperations(_ context.Context, userID uint, categoryType model.CategoryType, from, to time.Time) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	index := map[string]int{}
	for _, operation := range s.operations {
		if operation.UserID != userID || operation.CreatedAt.Before(from) || !operation.CreatedAt.Before(to) {
			continue
		}
		category := s.categoryByID(operation.CategoryID)
		if category == nil || category.Type != categoryType {
			continue
		}
		i, ok := index[category.Name]
		if !ok {
			i = len(totals)
			index[category.Name] = i
			totals = append(totals, CategoryTotal{Category: category.Name, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(operation.Amount)
	}
	return totals, nil
}

func (s *fakeStore) categoryByID(id uint) *model.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

func (s *fakeStore) InsertOperation(_ context.Context, operation *model.Operation) error {
	if s.failSaves {
		return errStorage
	}
	operation.ID = s.id()
	s.operations = append(s.operations, *operation)
	return nil
}

// Helpers for arranging state directly.

func (s *fakeStore) addUser(chatID int64) *model.User {
	user := model.User{ID: s.id(), ChatID: chatID, Balance: decimal.Zero}
	s.users = append(s.users, user)
	return &user
}

func (s *fakeStore) addCategory(owner *uint, categoryType model.CategoryType, name string) model.Category {
	category := model.Category{ID: s.id(), UserID: owner, Type: categoryType, Name: name, NameKey: model.CategoryKey(name)}
	s.categories = append(s.categories, category)
	return category
}

func (s *fakeStore) addOperation(userID uint, category model.Category, amount int64, at time.Time) {
	s.operations = append(s.operations, model.Operation{
		ID:         s.id(),
		UserID:     userID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(amount),
		CreatedAt:  at,
	})
}

func (s *fakeStore) addBudget(userID uint, month YearMonth, income, expenses int64) {
	s.budgets = append(s.budgets, model.Budget{
		ID:               s.id(),
		UserID:           userID,
		Year:             month.Year,
		Month:            int(month.Month),
		ExpectedIncome:   decimal.NewFromInt(income),
		ExpectedExpenses: decimal.NewFromInt(expenses),
	})
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func ptr(v uint) *uint {
	return &v
}
