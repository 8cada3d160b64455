package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a recorded income or expense event.
type Operation struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"index:idx_operation_user_time"`
	CategoryID uint            `gorm:"index;not null"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	CreatedAt  time.Time       `gorm:"index:idx_operation_user_time"`
}
