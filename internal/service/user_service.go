package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"personal-finance-bot/internal/model"
)

// UserService keeps users, their balance and the operations that move it.
type UserService struct {
	store      Store
	categories *CategoryService
	clock      Clock
}

func NewUserService(store Store, categories *CategoryService, clock Clock) *UserService {
	return &UserService{store: store, categories: categories, clock: clock}
}

// Ensure returns the user behind chatID, creating one with a zero balance on first contact.
func (s *UserService) Ensure(ctx context.Context, chatID int64) (*model.User, error) {
	user, err := s.store.FindUser(ctx, chatID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	user = &model.User{ChatID: chatID, Balance: decimal.Zero}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetBalance overwrites the balance.
func (s *UserService) SetBalance(ctx context.Context, user *model.User, amount decimal.Decimal) error {
	user.Balance = amount
	return s.store.SaveUser(ctx, user)
}

// AddOperation records income or expense in a category the user can see and moves the balance.
func (s *UserService) AddOperation(ctx context.Context, user *model.User, categoryType model.CategoryType, amount decimal.Decimal, categoryName string) (*model.Operation, *model.Category, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("operation amount %s: %w", amount, ErrInvalidAmount)
	}

	category, err := s.categories.Resolve(ctx, user.ID, categoryType, categoryName)
	if err != nil {
		return nil, nil, err
	}

	operation := &model.Operation{
		UserID:     user.ID,
		CategoryID: category.ID,
		Amount:     amount,
		CreatedAt:  s.clock(),
	}
	if err := s.store.InsertOperation(ctx, operation); err != nil {
		return nil, nil, err
	}

	switch categoryType {
	case model.CategoryIncome:
		user.Balance = user.Balance.Add(amount)
	case model.CategoryExpense:
		user.Balance = user.Balance.Sub(amount)
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, nil, err
	}
	return operation, category, nil
}

// ListAll returns every known user.
func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}
