// Package inventory is the SQLite-backed data layer: paginated record
// sources, candidate lists for selection widgets, product history, dashboard
// metrics and the add/reorder/receive submissions.
package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// Named paginated record sources shown on the dashboard.
const (
	SourceSuppliers      = "Suppliers Contact Details"
	SourceProducts       = "Products with Supplier and Stock"
	SourceNeedingReorder = "Products Needing Reorder"
)

// Sources lists the dashboard record sources in display order.
func Sources() []string {
	return []string{SourceSuppliers, SourceProducts, SourceNeedingReorder}
}

// ListKind names a candidate list.
type ListKind string

const (
	ListCategories      ListKind = "categories"
	ListSuppliers       ListKind = "suppliers"
	ListProducts        ListKind = "products"
	ListPendingReorders ListKind = "pending-reorders"
)

// Reorder statuses.
const (
	StatusOrdered  = "Ordered"
	StatusPending  = "Pending"
	StatusReceived = "Received"
)

var (
	ErrUnknownSource   = errors.New("inventory: unknown record source")
	ErrUnknownList     = errors.New("inventory: unknown list kind")
	ErrInvalidPage     = errors.New("inventory: invalid page bounds")
	ErrReorderNotFound = errors.New("inventory: reorder not found")
	ErrAlreadyReceived = errors.New("inventory: reorder already received")
	ErrInvalidProduct  = errors.New("inventory: invalid product")
)

// Field is one named, display-ready value of a record.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered mapping of field name to display value.
type Record []Field

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (r Record) Values() []string {
	values := make([]string, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// Get returns the value of the named field.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Metric is one dashboard figure.
type Metric struct {
	Label string
	Value float64
	Money bool
}

// NewProduct describes a product to add.
type NewProduct struct {
	Name         string
	Category     string
	Price        float64
	Stock        int
	ReorderLevel int
	SupplierID   int64
}

// Validate checks the product fields before they reach the database.
func (p NewProduct) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must be >= 0", ErrInvalidProduct)
	case p.ReorderLevel < 0:
		return fmt.Errorf("%w: reorder level must be >= 0", ErrInvalidProduct)
	case p.SupplierID <= 0:
		return fmt.Errorf("%w: supplier is required", ErrInvalidProduct)
	}
	return nil
}
