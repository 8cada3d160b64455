package model

import (
	"strings"
	"time"
)

// CategoryType separates income categories from expense categories.
type CategoryType int

const (
	CategoryIncome CategoryType = iota + 1
	CategoryExpense
)

func (t CategoryType) String() string {
	switch t {
	case CategoryIncome:
		return "income"
	case CategoryExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// Category groups operations. A category without an owner is standard and visible to everyone.
// Names are unique per owner and type; standard rows get their own partial index because
// NULL owners never collide in a plain unique index.
type Category struct {
	ID         uint         `gorm:"primaryKey"`
	UserID     *uint        `gorm:"uniqueIndex:idx_personal_category,priority:1"`
	Type       CategoryType `gorm:"uniqueIndex:idx_personal_category,priority:2;uniqueIndex:idx_standard_category,priority:1,where:user_id IS NULL;not null"`
	Name       string       `gorm:"size:64;not null"`
	NameKey    string       `gorm:"size:64;uniqueIndex:idx_personal_category,priority:3;uniqueIndex:idx_standard_category,priority:2;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Operations []Operation `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// IsStandard reports whether the category is shared by all users.
func (c Category) IsStandard() bool {
	return c.UserID == nil
}

// CategoryKey returns the case-insensitive lookup key for a category name.
// Runs of whitespace count as a single space.
func CategoryKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
