package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cobranca-api/models"
	"cobranca-api/utils"
)

type CreditService interface {
	AvailableTotal(db *gorm.DB, customerID uint) (decimal.Decimal, error)
	ApplyCredit(tx *gorm.DB, customerID uint, requested decimal.Decimal, orderNumber string) (decimal.Decimal, error)
	IssueCredit(tx *gorm.DB, customerID uint, amount decimal.Decimal, origin string) (*models.Credit, error)
}

type creditService struct{}

func NewCreditService() CreditService {
	return &creditService{}
}

// PlanCreditConsumption picks the entries a credit draw will deplete:
// oldest first, whole entries only, stopping once the accumulated amount
// covers the request. The last entry is depleted in full even when it
// over-covers, so the applied total can exceed the request; callers route
// any surplus back through the overpayment path.
func PlanCreditConsumption(credits []models.Credit, requested decimal.Decimal) ([]models.Credit, decimal.Decimal) {
	if !requested.IsPositive() {
		return nil, decimal.Zero
	}

	applied := decimal.Zero
	var picked []models.Credit
	for _, cr := range credits {
		if cr.Status != models.CreditAvailable {
			continue
		}
		picked = append(picked, cr)
		applied = applied.Add(cr.Amount)
		if applied.GreaterThanOrEqual(requested) {
			break
		}
	}
	return picked, applied
}

func (s *creditService) AvailableTotal(db *gorm.DB, customerID uint) (decimal.Decimal, error) {
	var credits []models.Credit
	err := db.Where("customer_id = ? AND status = ?", customerID, models.CreditAvailable).
		Find(&credits).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, cr := range credits {
		total = total.Add(cr.Amount)
	}
	return total, nil
}

// ApplyCredit consumes available entries for a settlement. Requesting more
// than the customer holds is an explicit error, so a stated amount can
// never manufacture phantom credit.
func (s *creditService) ApplyCredit(tx *gorm.DB, customerID uint, requested decimal.Decimal, orderNumber string) (decimal.Decimal, error) {
	if !requested.IsPositive() {
		return decimal.Zero, nil
	}

	var credits []models.Credit
	err := lockForUpdate(tx).
		Where("customer_id = ? AND status = ?", customerID, models.CreditAvailable).
		Order("created_at ASC, number ASC").
		Find(&credits).Error
	if err != nil {
		return decimal.Zero, err
	}

	available := decimal.Zero
	for _, cr := range credits {
		available = available.Add(cr.Amount)
	}
	if requested.GreaterThan(available) {
		return decimal.Zero, ErrInsufficientCreditRequested
	}

	plan, applied := PlanCreditConsumption(credits, requested)
	now := time.Now()
	for _, cr := range plan {
		res := tx.Model(&models.Credit{}).
			Where("id = ? AND version = ? AND status = ?", cr.ID, cr.Version, models.CreditAvailable).
			Updates(map[string]interface{}{
				"status":          models.CreditUsed,
				"consuming_order": orderNumber,
				"consumed_at":     now,
				"version":         cr.Version + 1,
			})
		if res.Error != nil {
			return decimal.Zero, res.Error
		}
		if res.RowsAffected == 0 {
			return decimal.Zero, ErrStaleCredit
		}
	}

	return applied, nil
}

func (s *creditService) IssueCredit(tx *gorm.DB, customerID uint, amount decimal.Decimal, origin string) (*models.Credit, error) {
	number, err := NextSequence(tx, models.SequenceCredit)
	if err != nil {
		return nil, err
	}

	credit := models.Credit{
		ID:         uuid.New(),
		Number:     number,
		CustomerID: customerID,
		Amount:     utils.Money(amount),
		Origin:     origin,
		Status:     models.CreditAvailable,
		Version:    1,
	}

	if err := tx.Create(&credit).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}
