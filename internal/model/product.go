package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Image holds the blob-store path of the
// uploaded picture; it always refers to a stored blob except transiently
// while a delete is in progress.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	IDCategory  uint            `json:"id_category" gorm:"column:id_category;not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Image       string          `json:"image" gorm:"size:255;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
