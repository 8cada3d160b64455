package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget holds planned income and expenses of one user for one calendar month.
type Budget struct {
	ID               uint            `gorm:"primaryKey"`
	UserID           uint            `gorm:"uniqueIndex:idx_budget_user_month;not null"`
	Year             int             `gorm:"uniqueIndex:idx_budget_user_month;not null"`
	Month            int             `gorm:"uniqueIndex:idx_budget_user_month;not null;check:budget_month_valid,month >= 1 AND month <= 12"`
	ExpectedIncome   decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	ExpectedExpenses decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
