// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// entity with ToDomain and a FromDomain constructor.
//
// Structure:
//   - base.go: BaseModel shared by every table with an auto-increment id
//   - catalog.go: products
//   - partner.go: customers and suppliers
//   - trade.go: sales, purchases and sales orders with their item tables
//   - sequence.go: per-type document number counters
package models
