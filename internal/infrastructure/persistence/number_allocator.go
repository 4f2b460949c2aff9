package persistence

import (
	"context"
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNumberAllocator issues document numbers from the document_sequences table.
// The sequence row is locked for the rest of the caller's transaction, so two
// allocations of the same type serialize and a rolled back order gives its
// number back.
type GormNumberAllocator struct {
	db *gorm.DB
}

// NewGormNumberAllocator creates a new GormNumberAllocator
func NewGormNumberAllocator(db *gorm.DB) *GormNumberAllocator {
	return &GormNumberAllocator{db: db}
}

// Allocate returns the next number for docType, e.g. INV-000042
func (a *GormNumberAllocator) Allocate(ctx context.Context, docType trade.DocumentType) (string, error) {
	if !docType.IsValid() {
		return "", shared.NewValidationError("unknown document type %q", docType)
	}
	db := a.db.WithContext(ctx)

	seq, err := a.lockSequence(db, docType)
	if err != nil {
		return "", err
	}
	if seq == nil {
		if err := a.seedSequence(db, docType); err != nil {
			return "", err
		}
		if seq, err = a.lockSequence(db, docType); err != nil {
			return "", err
		}
		if seq == nil {
			return "", shared.NewInternalError("document sequence "+string(docType)+" missing after seed", nil)
		}
	}

	next := seq.LastValue + 1
	err = db.Model(&models.DocumentSequenceModel{}).
		Where("doc_type = ?", string(docType)).
		Updates(map[string]any{"last_value": next, "updated_at": time.Now()}).Error
	if err != nil {
		return "", translateError(err, "document sequence", docType)
	}
	return trade.FormatDocumentNumber(docType, next), nil
}

func (a *GormNumberAllocator) lockSequence(db *gorm.DB, docType trade.DocumentType) (*models.DocumentSequenceModel, error) {
	var rows []models.DocumentSequenceModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doc_type = ?", string(docType)).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "document sequence", docType)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// seedSequence creates the sequence row starting after the highest number
// already issued. A concurrent seed of the same type is a no-op.
func (a *GormNumberAllocator) seedSequence(db *gorm.DB, docType trade.DocumentType) error {
	last, err := lastIssuedNumber(db, docType)
	if err != nil {
		return err
	}
	var start int64
	if last != "" {
		if start, err = trade.ParseDocumentNumber(docType, last); err != nil {
			return shared.NewInternalError("cannot seed document sequence", err)
		}
	}
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.DocumentSequenceModel{
		DocType:   string(docType),
		LastValue: start,
		UpdatedAt: time.Now(),
	}).Error
	return translateError(err, "document sequence", docType)
}

var _ trade.NumberAllocator = (*GormNumberAllocator)(nil)
