package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"personal-finance-bot/internal/model"
)

// CategoryScope selects either the standard categories or the personal categories of one user.
type CategoryScope struct {
	owner *uint
}

// StandardScope addresses categories shared by all users.
func StandardScope() CategoryScope {
	return CategoryScope{}
}

// PersonalScope addresses categories owned by userID.
func PersonalScope(userID uint) CategoryScope {
	return CategoryScope{owner: &userID}
}

func (s CategoryScope) IsStandard() bool {
	return s.owner == nil
}

// OwnerID returns the owning user id, or nil for the standard scope.
func (s CategoryScope) OwnerID() *uint {
	if s.owner == nil {
		return nil
	}
	id := *s.owner
	return &id
}

// CategoryTotal is the summed amount of operations in one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// Store is the persistence boundary of the rule engine. Lookups of single records return
// the matching Err*NotFound sentinel when nothing is stored.
type Store interface {
	// Transaction runs fn against a store bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error

	FindUser(ctx context.Context, chatID int64) (*model.User, error)
	SaveUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)

	// FindCategory matches the name case-insensitively within one scope.
	FindCategory(ctx context.Context, scope CategoryScope, categoryType model.CategoryType, name string) (*model.Category, error)
	// ListCategories returns the categories of one scope in insertion order.
	ListCategories(ctx context.Context, scope CategoryScope, categoryType model.CategoryType) ([]model.Category, error)
	// CountCategoriesByName counts categories of any scope with the given name.
	CountCategoriesByName(ctx context.Context, categoryType model.CategoryType, name string) (int64, error)
	SaveCategory(ctx context.Context, category *model.Category) error
	// DeleteCategory removes the category together with its operations.
	DeleteCategory(ctx context.Context, category *model.Category) error

	FindBudget(ctx context.Context, userID uint, month YearMonth) (*model.Budget, error)
	// ListBudgets returns the user's budgets between from and to inclusive, oldest first.
	ListBudgets(ctx context.Context, userID uint, from, to YearMonth) ([]model.Budget, error)
	SaveBudget(ctx context.Context, budget *model.Budget) error

	// SumOperations groups operations in [from, to) by category name,
	// ordered by the first operation seen in each category.
	SumOperations(ctx context.Context, userID uint, categoryType model.CategoryType, from, to time.Time) ([]CategoryTotal, error)
	InsertOperation(ctx context.Context, operation *model.Operation) error
}

// Clock returns the current time. Services read "now" only through it.
type Clock func() time.Time

// Services bundles the rule components bound to one store.
type Services struct {
	Users      *UserService
	Categories *CategoryService
	Budgets    *BudgetService
	Reports    *ReportService
}

// New wires the rule components over store. A nil clock means time.Now.
func New(store Store, clock Clock) *Services {
	if clock == nil {
		clock = time.Now
	}
	categories := NewCategoryService(store)
	return &Services{
		Users:      NewUserService(store, categories, clock),
		Categories: categories,
		Budgets:    NewBudgetService(store, clock),
		Reports:    NewReportService(store, clock),
	}
}
