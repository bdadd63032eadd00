package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cobranca-api/models"
)

// lockForUpdate takes a row lock on dialects that support one. SQLite has
// no FOR UPDATE; its single-writer model gives the same guarantee there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// NextSequence hands out the next display number for a given series. The
// row stays locked until the caller's transaction commits, so two
// concurrent settlements can never mint the same number.
func NextSequence(tx *gorm.DB, name string) (uint64, error) {
	var seq models.NumberSequence
	err := lockForUpdate(tx).
		Where("name = ?", name).
		First(&seq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = models.NumberSequence{Name: name, Value: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return 0, err
			}
			return seq.Value, nil
		}
		return 0, err
	}

	seq.Value++
	err = tx.Model(&models.NumberSequence{}).
		Where("name = ?", name).
		Update("value", seq.Value).Error
	if err != nil {
		return 0, err
	}
	return seq.Value, nil
}
