package models

import "time"

// DocumentSequenceModel holds the last number issued for one document type.
// The allocator locks the row, increments LastValue and writes it back in the
// order's transaction.
type DocumentSequenceModel struct {
	DocType   string    `gorm:"type:varchar(8);primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}
