package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User stores a chat participant and the current balance.
type User struct {
	ID        uint            `gorm:"primaryKey"`
	ChatID    int64           `gorm:"uniqueIndex"`
	Balance   decimal.Decimal `gorm:"type:DECIMAL(20,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
