package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

// Store implements service.Store on top of gorm.
type Store struct {
	db         *gorm.DB
	users      *UserRepository
	categories *CategoryRepository
	operations *OperationRepository
	budgets    *BudgetRepository
}

var _ service.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		users:      NewUserRepository(db),
		categories: NewCategoryRepository(db),
		operations: NewOperationRepository(db),
		budgets:    NewBudgetRepository(db),
	}
}

// Transaction runs fn on a store bound to a single database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) FindUser(ctx context.Context, chatID int64) (*model.User, error) {
	return s.users.FindByChatID(ctx, chatID)
}

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	return s.users.Save(ctx, user)
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

func (s *Store) FindCategory(ctx context.Context, scope service.CategoryScope, categoryType model.CategoryType, name string) (*model.Category, error) {
	return s.categories.Find(ctx, scope, categoryType, name)
}

func (s *Store) ListCategories(ctx context.Context, scope service.CategoryScope, categoryType model.CategoryType) ([]model.Category, error) {
	return s.categories.List(ctx, scope, categoryType)
}

func (s *Store) CountCategoriesByName(ctx context.Context, categoryType model.CategoryType, name string) (int64, error) {
	return s.categories.CountByName(ctx, categoryType, name)
}

func (s *Store) SaveCategory(ctx context.Context, category *model.Category) error {
	return s.categories.Save(ctx, category)
}

func (s *Store) DeleteCategory(ctx context.Context, category *model.Category) error {
	return s.categories.Delete(ctx, category)
}

func (s *Store) FindBudget(ctx context.Context, userID uint, month service.YearMonth) (*model.Budget, error) {
	return s.budgets.Find(ctx, userID, month)
}

func (s *Store) ListBudgets(ctx context.Context, userID uint, from, to service.YearMonth) ([]model.Budget, error) {
	return s.budgets.ListBetween(ctx, userID, from, to)
}

func (s *Store) SaveBudget(ctx context.Context, budget *model.Budget) error {
	return s.budgets.Save(ctx, budget)
}

func (s *Store) SumOperations(ctx context.Context, userID uint, categoryType model.CategoryType, from, to time.Time) ([]service.CategoryTotal, error) {
	return s.operations.SumByCategory(ctx, userID, categoryType, from, to)
}

func (s *Store) InsertOperation(ctx context.Context, operation *model.Operation) error {
	return s.operations.Insert(ctx, operation)
}
