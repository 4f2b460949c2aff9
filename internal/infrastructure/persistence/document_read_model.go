package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDocumentReadModel serves document listings and detail views with joins
// against the party and product tables
type GormDocumentReadModel struct {
	db *gorm.DB
}

// NewGormDocumentReadModel creates a new GormDocumentReadModel
func NewGormDocumentReadModel(db *gorm.DB) *GormDocumentReadModel {
	return &GormDocumentReadModel{db: db}
}

type documentRow struct {
	ID           uint64
	Number       string
	PartyID      uint64
	PartyName    string
	PartyAddress string
	PartyPhone   string
	Total        decimal.Decimal
	Status       string
	SaleID       *uint64
	ItemCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type lineRow struct {
	ID          uint64
	ProductID   uint64
	Quantity    int64
	Price       decimal.Decimal
	ProductName string
	Unit        string
}

// List returns a page of summaries, newest first, and the total count.
// Search matches the document number or the party name.
func (r *GormDocumentReadModel) List(ctx context.Context, kind trade.OrderKind, filter shared.Filter) ([]trade.DocumentSummary, int64, error) {
	schema, err := models.SchemaFor(kind)
	if err != nil {
		return nil, 0, shared.NewValidationError("%s", err.Error())
	}
	base := r.headerQuery(r.db.WithContext(ctx), schema)
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where(fmt.Sprintf("LOWER(h.%s) LIKE ? OR LOWER(p.name) LIKE ?", schema.NumberColumn), like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, kindLabel(kind), filter.Search)
	}

	var rows []documentRow
	err = base.Session(&gorm.Session{}).
		Select(r.headerColumns(schema)).
		Order("h.created_at DESC").Order("h.id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, kindLabel(kind), filter.Search)
	}

	summaries := make([]trade.DocumentSummary, len(rows))
	for i, row := range rows {
		summaries[i] = row.summary(kind)
	}
	return summaries, total, nil
}

// GetDetails returns the header, counterparty and product-enriched lines of one document
func (r *GormDocumentReadModel) GetDetails(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.DocumentDetails, error) {
	schema, err := models.SchemaFor(kind)
	if err != nil {
		return nil, shared.NewValidationError("%s", err.Error())
	}
	db := r.db.WithContext(ctx)

	var rows []documentRow
	err = r.headerQuery(db, schema).
		Select(r.headerColumns(schema)).
		Where("h.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, kindLabel(kind), id)
	}
	if len(rows) == 0 {
		return nil, shared.NewNotFoundError(kindLabel(kind), id)
	}
	row := rows[0]

	var lines []lineRow
	err = db.Table(schema.ItemTable+" AS i").
		Select("i.id, i.product_id, i.quantity, i.price, COALESCE(pr.name, '') AS product_name, COALESCE(pr.unit, '') AS unit").
		Joins("LEFT JOIN products pr ON pr.id = i.product_id").
		Where("i."+schema.ForeignKey+" = ?", id).
		Order("i.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, translateError(err, kindLabel(kind)+" items", id)
	}

	details := &trade.DocumentDetails{
		DocumentSummary: row.summary(kind),
		PartyAddress:    row.PartyAddress,
		PartyPhone:      row.PartyPhone,
		SaleID:          row.SaleID,
		UpdatedAt:       row.UpdatedAt,
		Lines:           make([]trade.LineDetail, len(lines)),
	}
	for i, l := range lines {
		details.Lines[i] = trade.LineDetail{
			OrderLine:   trade.OrderLine{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price},
			ProductName: l.ProductName,
			Unit:        l.Unit,
		}
	}
	return details, nil
}

func (r *GormDocumentReadModel) headerQuery(db *gorm.DB, schema models.DocumentSchema) *gorm.DB {
	return db.Table(schema.Table+" AS h").
		Joins(fmt.Sprintf("LEFT JOIN %s p ON p.id = h.%s", schema.PartyTable, schema.PartyColumn))
}

func (r *GormDocumentReadModel) headerColumns(schema models.DocumentSchema) string {
	status, saleID := "'' AS status", "NULL AS sale_id"
	if schema.HasStatus {
		status, saleID = "h.status", "h.sale_id"
	}
	return strings.Join([]string{
		"h.id",
		"h." + schema.NumberColumn + " AS number",
		"h." + schema.PartyColumn + " AS party_id",
		"COALESCE(p.name, '') AS party_name",
		"COALESCE(p.address, '') AS party_address",
		"COALESCE(p.phone, '') AS party_phone",
		"h.total",
		status,
		saleID,
		fmt.Sprintf("(SELECT COUNT(*) FROM %s i WHERE i.%s = h.id) AS item_count", schema.ItemTable, schema.ForeignKey),
		"h.created_at",
		"h.updated_at",
	}, ", ")
}

func (row documentRow) summary(kind trade.OrderKind) trade.DocumentSummary {
	return trade.DocumentSummary{
		ID:        row.ID,
		Kind:      kind,
		Number:    row.Number,
		PartyID:   row.PartyID,
		PartyName: row.PartyName,
		Total:     row.Total,
		Status:    trade.SalesOrderStatus(row.Status),
		ItemCount: row.ItemCount,
		CreatedAt: row.CreatedAt,
	}
}

var _ trade.DocumentReadModel = (*GormDocumentReadModel)(nil)
