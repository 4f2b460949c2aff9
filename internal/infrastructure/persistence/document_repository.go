package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository implements DocumentRepository for sales, purchases and
// sales orders. Each kind lives in its own header and item tables.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create inserts the header, then its lines. A duplicate number fails with CONFLICT.
func (r *GormDocumentRepository) Create(ctx context.Context, doc *trade.Document) error {
	m, err := models.DocumentModelFromDomain(doc)
	if err != nil {
		return shared.NewValidationError("%s", err.Error())
	}
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.NewConflictError(fmt.Sprintf("document number %s already issued", doc.Number), err)
		}
		return translateError(err, kindLabel(doc.Kind), doc.Number)
	}
	if err := db.Create(m.ItemsFor(m.GetID())).Error; err != nil {
		return translateError(err, kindLabel(doc.Kind)+" items", doc.Number)
	}

	created := m.ToDomain()
	doc.BaseEntity = created.BaseEntity
	doc.Lines = created.Lines
	return nil
}

// FindByID loads a header with its lines
func (r *GormDocumentRepository) FindByID(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.Document, error) {
	return r.find(r.db.WithContext(ctx), kind, id)
}

// FindByIDForUpdate loads a header with its lines and locks the header row until commit
func (r *GormDocumentRepository) FindByIDForUpdate(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.Document, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), kind, id)
}

func (r *GormDocumentRepository) find(db *gorm.DB, kind trade.OrderKind, id uint64) (*trade.Document, error) {
	m, err := models.NewDocumentModel(kind)
	if err != nil {
		return nil, shared.NewValidationError("%s", err.Error())
	}
	err = db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Where("id = ?", id).Take(m).Error
	if err != nil {
		return nil, translateError(err, kindLabel(kind), id)
	}
	return m.ToDomain(), nil
}

// Update rewrites the party, total and timestamp of the header and replaces all lines
func (r *GormDocumentRepository) Update(ctx context.Context, doc *trade.Document) error {
	schema, err := models.SchemaFor(doc.Kind)
	if err != nil {
		return shared.NewValidationError("%s", err.Error())
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}
	db := r.db.WithContext(ctx)

	res := db.Table(schema.Table).Where("id = ?", doc.ID).Updates(map[string]any{
		schema.PartyColumn: doc.PartyID,
		"total":            doc.Total,
		"updated_at":       doc.UpdatedAt,
	})
	if res.Error != nil {
		return translateError(res.Error, kindLabel(doc.Kind), doc.ID)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(kindLabel(doc.Kind), doc.ID)
	}

	item, _ := models.NewItemModel(doc.Kind)
	if err := db.Where(schema.ForeignKey+" = ?", doc.ID).Delete(item).Error; err != nil {
		return translateError(err, kindLabel(doc.Kind)+" items", doc.ID)
	}
	for i := range doc.Lines {
		doc.Lines[i].ID = 0
	}
	m, _ := models.DocumentModelFromDomain(doc)
	if err := db.Create(m.ItemsFor(doc.ID)).Error; err != nil {
		return translateError(err, kindLabel(doc.Kind)+" items", doc.ID)
	}
	doc.Lines = m.ToDomain().Lines
	return nil
}

// UpdateStatus persists a sales order status change and its sale link
func (r *GormDocumentRepository) UpdateStatus(ctx context.Context, doc *trade.Document) error {
	if doc.Kind != trade.OrderKindSalesOrder {
		return shared.NewInvalidStateError("%s documents have no status", doc.Kind)
	}
	res := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).
		Where("id = ?", doc.ID).
		Updates(map[string]any{
			"status":     string(doc.Status),
			"sale_id":    doc.SaleID,
			"updated_at": doc.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error, kindLabel(doc.Kind), doc.ID)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(kindLabel(doc.Kind), doc.ID)
	}
	return nil
}

// Delete removes the lines, then the header. A sale created by invoicing a
// sales order cannot be deleted while the order points at it.
func (r *GormDocumentRepository) Delete(ctx context.Context, kind trade.OrderKind, id uint64) error {
	schema, err := models.SchemaFor(kind)
	if err != nil {
		return shared.NewValidationError("%s", err.Error())
	}
	db := r.db.WithContext(ctx)

	if kind == trade.OrderKindSale {
		var linked int64
		if err := db.Model(&models.SalesOrderModel{}).Where("sale_id = ?", id).Count(&linked).Error; err != nil {
			return translateError(err, kindLabel(kind), id)
		}
		if linked > 0 {
			return shared.NewInvalidStateError("sale %d was invoiced from a sales order and cannot be deleted", id)
		}
	}

	item, _ := models.NewItemModel(kind)
	if err := db.Where(schema.ForeignKey+" = ?", id).Delete(item).Error; err != nil {
		return translateError(err, kindLabel(kind)+" items", id)
	}
	header, _ := models.NewDocumentModel(kind)
	res := db.Where("id = ?", id).Delete(header)
	if res.Error != nil {
		return translateError(res.Error, kindLabel(kind), id)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(kindLabel(kind), id)
	}
	return nil
}

// LastIssuedNumber returns the highest number issued for the type, or "" if none
func (r *GormDocumentRepository) LastIssuedNumber(ctx context.Context, docType trade.DocumentType) (string, error) {
	return lastIssuedNumber(r.db.WithContext(ctx), docType)
}

// lastIssuedNumber orders by length first so INV-1000000 sorts above INV-999999
func lastIssuedNumber(db *gorm.DB, docType trade.DocumentType) (string, error) {
	schema, err := models.SchemaForType(docType)
	if err != nil {
		return "", shared.NewValidationError("%s", err.Error())
	}
	var numbers []string
	err = db.Table(schema.Table).
		Where(schema.NumberColumn+" LIKE ?", docType.Prefix()+"-%").
		Order(fmt.Sprintf("LENGTH(%s) DESC, %s DESC", schema.NumberColumn, schema.NumberColumn)).
		Limit(1).
		Pluck(schema.NumberColumn, &numbers).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", translateError(err, "document sequence", docType)
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func kindLabel(kind trade.OrderKind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

var _ trade.DocumentRepository = (*GormDocumentRepository)(nil)
