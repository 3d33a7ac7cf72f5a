package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atomicstack/stockroom/internal/logging/events"
)

type seedSupplier struct {
	name, contact, email, phone string
}

type seedProduct struct {
	name     string
	category string
	price    float64
	stock    int
	reorder  int
	supplier int64
}

var seedSuppliers = []seedSupplier{
	{"Acme Components", "Rhea Patel", "rhea@acme.example", "555-0101"},
	{"Brightline Foods", "Owen Clarke", "owen@brightline.example", "555-0102"},
	{"Cobalt Office Supply", "Mina Soto", "mina@cobalt.example", "555-0103"},
	{"Delta Hardware", "Ivan Lund", "ivan@delta.example", "555-0104"},
	{"Evergreen Textiles", "Ana Ruiz", "ana@evergreen.example", "555-0105"},
	{"Fjord Electronics", "Sven Dahl", "sven@fjord.example", "555-0106"},
	{"Granite Tools", "Leah Moss", "leah@granite.example", "555-0107"},
	{"Harbor Beverages", "Tomas Vega", "tomas@harbor.example", "555-0108"},
	{"Ironwood Furniture", "Priya Nair", "priya@ironwood.example", "555-0109"},
	{"Juniper Health", "Kai Brooks", "kai@juniper.example", "555-0110"},
	{"Kestrel Sports", "Noor Haddad", "noor@kestrel.example", "555-0111"},
	{"Lumen Lighting", "Eli Fischer", "eli@lumen.example", "555-0112"},
}

var seedProducts = []seedProduct{
	{"Resistor Pack", "Electronics", 4.5, 320, 100, 1},
	{"Capacitor Kit", "Electronics", 12.75, 40, 60, 1},
	{"Oat Granola", "Grocery", 5.2, 80, 50, 2},
	{"Green Tea", "Grocery", 3.9, 12, 40, 2},
	{"Stapler", "Office", 8.0, 55, 20, 3},
	{"Printer Paper", "Office", 24.99, 15, 30, 3},
	{"Claw Hammer", "Hardware", 18.5, 34, 15, 4},
	{"Wood Screws", "Hardware", 6.25, 9, 25, 4},
	{"Cotton Towel", "Textiles", 11.0, 70, 20, 5},
	{"Wool Blanket", "Textiles", 39.0, 6, 10, 5},
	{"USB-C Cable", "Electronics", 9.99, 140, 50, 6},
	{"Bluetooth Speaker", "Electronics", 49.0, 18, 20, 6},
	{"Cordless Drill", "Hardware", 89.0, 7, 8, 7},
	{"Tape Measure", "Hardware", 7.5, 60, 15, 7},
	{"Sparkling Water", "Beverages", 1.25, 400, 120, 8},
	{"Cold Brew", "Beverages", 3.75, 45, 60, 8},
	{"Oak Desk", "Furniture", 320.0, 4, 5, 9},
	{"Office Chair", "Furniture", 145.0, 11, 6, 9},
	{"First Aid Kit", "Health", 22.0, 25, 30, 10},
	{"Hand Sanitizer", "Health", 4.0, 210, 80, 10},
	{"Yoga Mat", "Sports", 19.99, 33, 12, 11},
	{"Tennis Balls", "Sports", 6.5, 5, 20, 11},
	{"LED Bulb", "Lighting", 3.25, 500, 150, 12},
	{"Desk Lamp", "Lighting", 27.0, 14, 10, 12},
}

type seedEntry struct {
	product  int64
	quantity int
	kind     string
	date     string
}

var seedEntries = []seedEntry{
	{1, 200, "Restock", "2025-01-06"},
	{1, -60, "Sale", "2025-02-11"},
	{2, -25, "Sale", "2025-03-02"},
	{3, 100, "Restock", "2025-01-20"},
	{3, -20, "Sale", "2025-04-14"},
	{4, -28, "Sale", "2025-05-09"},
	{6, -35, "Sale", "2025-05-30"},
	{8, -16, "Sale", "2025-06-02"},
	{10, -4, "Sale", "2025-06-18"},
	{11, 120, "Restock", "2025-02-15"},
	{12, -12, "Sale", "2025-06-21"},
	{13, -3, "Sale", "2025-07-01"},
	{15, 300, "Restock", "2025-03-10"},
	{15, -90, "Sale", "2025-07-04"},
	{16, -30, "Sale", "2025-07-12"},
	{17, -2, "Sale", "2025-07-15"},
	{19, -15, "Sale", "2025-07-20"},
	{22, -18, "Sale", "2025-07-28"},
	{23, 250, "Restock", "2025-04-01"},
	{24, -6, "Sale", "2025-08-03"},
}

type seedReorder struct {
	product  int64
	quantity int
	date     string
	status   string
	received string
}

var seedReorders = []seedReorder{
	{2, 60, "2025-07-01", StatusOrdered, ""},
	{4, 50, "2025-07-05", StatusPending, ""},
	{6, 40, "2025-06-10", StatusReceived, "2025-06-17"},
	{10, 12, "2025-07-18", StatusOrdered, ""},
	{22, 30, "2025-08-01", StatusPending, ""},
}

// Seed fills an empty database with demo suppliers, products, stock movements
// and reorders. It reports whether anything was inserted; a database that
// already holds suppliers is left alone.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&count); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		events.App.Seeded(s.path, false)
		return false, nil
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i, sup := range seedSuppliers {
			if _, err := tx.ExecContext(ctx, `INSERT INTO suppliers (supplier_id, supplier_name, contact_name, email, phone)
				VALUES (?, ?, ?, ?, ?)`, i+1, sup.name, sup.contact, sup.email, sup.phone); err != nil {
				return err
			}
		}
		for i, p := range seedProducts {
			if _, err := tx.ExecContext(ctx, `INSERT INTO products
				(product_id, product_name, category, price, stock_quantity, reorder_level, supplier_id)
				VALUES (?, ?, ?, ?, ?, ?, ?)`, i+1, p.name, p.category, p.price, p.stock, p.reorder, p.supplier); err != nil {
				return err
			}
		}
		for i, e := range seedEntries {
			if _, err := tx.ExecContext(ctx, `INSERT INTO stock_entries (entry_id, product_id, change_quantity, change_type, entry_date)
				VALUES (?, ?, ?, ?, ?)`, i+1, e.product, e.quantity, e.kind, e.date); err != nil {
				return err
			}
		}
		for i, r := range seedReorders {
			var received interface{}
			if r.received != "" {
				received = r.received
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO reorders
				(reorder_id, product_id, reorder_quantity, reorder_date, status, received_date)
				VALUES (?, ?, ?, ?, ?, ?)`, i+1, r.product, r.quantity, r.date, r.status, received); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	events.App.Seeded(s.path, true)
	return true, nil
}
