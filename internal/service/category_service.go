package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"personal-finance-bot/internal/model"
)

var categoryNamePattern = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё0-9 \-]{1,64}$`)

// CategoryService resolves, creates and removes income and expense categories.
type CategoryService struct {
	store Store
}

func NewCategoryService(store Store) *CategoryService {
	return &CategoryService{store: store}
}

// NormalizeCategoryName validates a category name and capitalises it: "тАкСи" becomes "Такси".
func NormalizeCategoryName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if !categoryNamePattern.MatchString(name) {
		return "", fmt.Errorf("name %q: %w", raw, ErrInvalidName)
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes), nil
}

// Resolve finds the category a user means by name. A personal category shadows
// a standard one with the same name.
func (s *CategoryService) Resolve(ctx context.Context, userID uint, categoryType model.CategoryType, name string) (*model.Category, error) {
	category, err := s.store.FindCategory(ctx, PersonalScope(userID), categoryType, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}
	return s.store.FindCategory(ctx, StandardScope(), categoryType, name)
}

// Create adds a category to scope. It is rejected when a standard category with the same
// type and name exists, or when the name is already taken inside the target scope. A new
// standard category also must not collide with anyone's personal category.
func (s *CategoryService) Create(ctx context.Context, scope CategoryScope, categoryType model.CategoryType, rawName string) (*model.Category, error) {
	name, err := NormalizeCategoryName(rawName)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAbsent(ctx, StandardScope(), categoryType, name, ErrStandardCategoryExists); err != nil {
		return nil, err
	}

	if scope.IsStandard() {
		count, err := s.store.CountCategoriesByName(ctx, categoryType, name)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("category %q: %w", name, ErrPersonalCategoryExists)
		}
	} else if err := s.ensureAbsent(ctx, scope, categoryType, name, ErrPersonalCategoryExists); err != nil {
		return nil, err
	}

	category := &model.Category{
		UserID: scope.OwnerID(),
		Type:   categoryType,
		Name:   name,
	}
	if err := s.store.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ensureAbsent(ctx context.Context, scope CategoryScope, categoryType model.CategoryType, name string, conflict error) error {
	_, err := s.store.FindCategory(ctx, scope, categoryType, name)
	switch {
	case err == nil:
		return fmt.Errorf("category %q: %w", name, conflict)
	case errors.Is(err, ErrCategoryNotFound):
		return nil
	default:
		return err
	}
}

// Remove deletes a personal category and its operations. Standard categories are never
// removed here: a name that only matches a standard category is reported as not found.
func (s *CategoryService) Remove(ctx context.Context, userID uint, categoryType model.CategoryType, name string) (*model.Category, error) {
	category, err := s.store.FindCategory(ctx, PersonalScope(userID), categoryType, name)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListStandardAndPersonal returns the user's personal categories followed by the standard ones.
func (s *CategoryService) ListStandardAndPersonal(ctx context.Context, userID uint, categoryType model.CategoryType) ([]model.Category, error) {
	personal, err := s.store.ListCategories(ctx, PersonalScope(userID), categoryType)
	if err != nil {
		return nil, err
	}
	standard, err := s.store.ListCategories(ctx, StandardScope(), categoryType)
	if err != nil {
		return nil, err
	}
	return append(personal, standard...), nil
}

// SeedStandard creates the given standard categories, skipping names that already exist.
func (s *CategoryService) SeedStandard(ctx context.Context, categoryType model.CategoryType, names ...string) (int, error) {
	created := 0
	for _, name := range names {
		_, err := s.Create(ctx, StandardScope(), categoryType, name)
		switch {
		case err == nil:
			created++
		case KindOf(err) == KindConflict:
		default:
			return created, fmt.Errorf("seed %s category %q: %w", categoryType, name, err)
		}
	}
	return created, nil
}
