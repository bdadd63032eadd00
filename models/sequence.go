package models

// NumberSequence backs the human-facing sequential numbers (credits,
// solicitations, settlement records). Incremented under a row lock inside
// the owning transaction.
type NumberSequence struct {
	Name  string `gorm:"size:50;primaryKey"`
	Value uint64 `gorm:"not null;default:0"`
}

const (
	SequenceCredit            = "credit"
	SequencePendingSettlement = "pending_settlement"
	SequenceSettlementRecord  = "settlement_record"
)
