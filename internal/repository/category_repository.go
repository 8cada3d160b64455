package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

// CategoryRepository manages standard and personal categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scoped(db *gorm.DB, scope service.CategoryScope, categoryType model.CategoryType) *gorm.DB {
	db = db.Where("type = ?", categoryType)
	if owner := scope.OwnerID(); owner != nil {
		return db.Where("user_id = ?", *owner)
	}
	return db.Where("user_id IS NULL")
}

// Find looks a category up by name, ignoring case.
func (r *CategoryRepository) Find(ctx context.Context, scope service.CategoryScope, categoryType model.CategoryType, name string) (*model.Category, error) {
	var category model.Category
	err := scoped(r.db.WithContext(ctx), scope, categoryType).
		Where("name_key = ?", model.CategoryKey(name)).
		Order("id ASC").
		First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%s category %q: %w", categoryType, name, service.ErrCategoryNotFound)
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

// List returns the categories of one scope in insertion order.
func (r *CategoryRepository) List(ctx context.Context, scope service.CategoryScope, categoryType model.CategoryType) ([]model.Category, error) {
	var categories []model.Category
	if err := scoped(r.db.WithContext(ctx), scope, categoryType).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CountByName counts standard and personal categories sharing a name.
func (r *CategoryRepository) CountByName(ctx context.Context, categoryType model.CategoryType, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("type = ? AND name_key = ?", categoryType, model.CategoryKey(name)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// Save inserts or updates a category. A name already taken in the same scope is reported
// as service.ErrStandardCategoryExists or service.ErrPersonalCategoryExists.
func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	category.NameKey = model.CategoryKey(category.Name)
	err := r.db.WithContext(ctx).Save(category).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey) && category.IsStandard():
		return fmt.Errorf("%s category %q: %w", category.Type, category.Name, service.ErrStandardCategoryExists)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s category %q: %w", category.Type, category.Name, service.ErrPersonalCategoryExists)
	default:
		return fmt.Errorf("save category: %w", err)
	}
}

// Delete removes the category and every operation recorded in it.
func (r *CategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&model.Operation{}).Error; err != nil {
			return fmt.Errorf("delete category operations: %w", err)
		}
		if err := tx.Delete(&model.Category{}, category.ID).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
