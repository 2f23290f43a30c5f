package models

import (
	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalSpent returns the sum of all expense amounts of owner dated within month.
//
// The sum is always read from the database handle passed in, which may be a
// transaction. It is never cached.
func TotalSpent(db *gorm.DB, owner uuid.UUID, month types.Month) (decimal.Decimal, error) {
	return totalSpent(db, owner, month, uuid.Nil)
}

// TotalSpentExcluding is TotalSpent without the expense identified by exclude.
func TotalSpentExcluding(db *gorm.DB, owner uuid.UUID, month types.Month, exclude uuid.UUID) (decimal.Decimal, error) {
	return totalSpent(db, owner, month, exclude)
}

func totalSpent(db *gorm.DB, owner uuid.UUID, month types.Month, exclude uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	query := db.Table("expenses").
		Select("SUM(amount)").
		Where("owner_id = ? AND date(expenses.date) >= date(?) AND date(expenses.date) < date(?)", owner, month, month.AddDate(0, 1))

	if exclude != uuid.Nil {
		query = query.Where("id != ?", exclude)
	}

	err := query.Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal.Round(2), nil
}
