package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atomicstack/stockroom/internal/logging/events"
	"github.com/atomicstack/stockroom/internal/value"
)

type metricQuery struct {
	label string
	money bool
	query string
}

var metricQueries = []metricQuery{
	{label: "Total Suppliers", query: `SELECT COUNT(*) FROM suppliers`},
	{label: "Total Products", query: `SELECT COUNT(*) FROM products`},
	{label: "Total Categories Dealing", query: `SELECT COUNT(DISTINCT category) FROM products`},
	{
		label: "Total Sale Value (Last 6 Months)",
		money: true,
		query: `SELECT COALESCE(ROUND(SUM(ABS(se.change_quantity) * p.price), 2), 0)
			  FROM stock_entries se
			  JOIN products p ON p.product_id = se.product_id
			 WHERE se.change_type = 'Sale'
			   AND se.entry_date >= (SELECT date(MAX(entry_date), '-6 months') FROM stock_entries)`,
	},
	{
		label: "Total Restock Value (Last 6 Months)",
		money: true,
		query: `SELECT COALESCE(ROUND(SUM(se.change_quantity * p.price), 2), 0)
			  FROM stock_entries se
			  JOIN products p ON p.product_id = se.product_id
			 WHERE se.change_type = 'Restock'
			   AND se.entry_date >= (SELECT date(MAX(entry_date), '-6 months') FROM stock_entries)`,
	},
	{
		label: "Below Reorder & No Pending Reorders",
		query: `SELECT COUNT(*)
			  FROM products p
			 WHERE p.stock_quantity < p.reorder_level
			   AND p.product_id NOT IN (
			       SELECT DISTINCT product_id FROM reorders WHERE status IN ('Ordered', 'Pending'))`,
	},
}

// BasicInfo computes the dashboard metrics in display order.
func (s *Store) BasicInfo(ctx context.Context) ([]Metric, error) {
	events.Store.Query("basic-info")
	metrics := make([]Metric, 0, len(metricQueries))
	for _, mq := range metricQueries {
		var v sql.NullFloat64
		if err := s.db.QueryRowContext(ctx, mq.query).Scan(&v); err != nil {
			return nil, fmt.Errorf("metric %q: %w", mq.label, err)
		}
		metrics = append(metrics, Metric{Label: mq.label, Value: v.Float64, Money: mq.money})
	}
	return metrics, nil
}

var pageQueries = map[string]string{
	SourceSuppliers: `SELECT supplier_name, contact_name, email, phone
		  FROM suppliers
		 ORDER BY supplier_name ASC, supplier_id ASC
		 LIMIT ? OFFSET ?`,
	SourceProducts: `SELECT p.product_name, s.supplier_name, p.stock_quantity, p.reorder_level
		  FROM products p
		  JOIN suppliers s ON s.supplier_id = p.supplier_id
		 ORDER BY p.product_name ASC, p.product_id ASC
		 LIMIT ? OFFSET ?`,
	SourceNeedingReorder: `SELECT product_name, stock_quantity, reorder_level
		  FROM products
		 WHERE stock_quantity <= reorder_level
		 ORDER BY product_name ASC, product_id ASC
		 LIMIT ? OFFSET ?`,
}

// FetchPage returns up to limit records of the named source starting at
// offset.
func (s *Store) FetchPage(ctx context.Context, source string, offset, limit int) ([]Record, error) {
	query, ok := pageQueries[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPage, offset, limit)
	}
	events.Store.Query("fetch-page", source, offset, limit)
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", source, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// FetchList returns the candidate options of the given kind.
func (s *Store) FetchList(ctx context.Context, kind ListKind) ([]value.Option, error) {
	events.Store.Query("fetch-list", string(kind))
	switch kind {
	case ListCategories:
		return s.queryOptions(ctx, `SELECT DISTINCT category FROM products ORDER BY category ASC`,
			func(rows *sql.Rows) (value.Option, error) {
				var name string
				if err := rows.Scan(&name); err != nil {
					return value.Option{}, err
				}
				return value.Option{Key: value.Key(name), Label: name}, nil
			})
	case ListSuppliers:
		return s.queryOptions(ctx, `SELECT supplier_id, supplier_name FROM suppliers ORDER BY supplier_name ASC, supplier_id ASC`, idLabel)
	case ListProducts:
		return s.queryOptions(ctx, `SELECT product_id, product_name FROM products ORDER BY product_name ASC, product_id ASC`, idLabel)
	case ListPendingReorders:
		return s.queryOptions(ctx, `SELECT r.reorder_id, p.product_name
			  FROM reorders r
			  JOIN products p ON p.product_id = r.product_id
			 WHERE r.status IN ('Ordered', 'Pending')
			 ORDER BY r.reorder_id ASC`,
			func(rows *sql.Rows) (value.Option, error) {
				var id int64
				var name string
				if err := rows.Scan(&id, &name); err != nil {
					return value.Option{}, err
				}
				return value.Option{Key: value.IntKey(id), Label: fmt.Sprintf("ID %d - %s", id, name)}, nil
			})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, kind)
	}
}

func idLabel(rows *sql.Rows) (value.Option, error) {
	var id int64
	var name string
	if err := rows.Scan(&id, &name); err != nil {
		return value.Option{}, err
	}
	return value.Option{Key: value.IntKey(id), Label: name}, nil
}

func (s *Store) queryOptions(ctx context.Context, query string, scan func(*sql.Rows) (value.Option, error)) ([]value.Option, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var opts []value.Option
	for rows.Next() {
		opt, err := scan(rows)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, rows.Err()
}

// ProductHistory returns the stock movements and reorders of a product, most
// recent first.
func (s *Store) ProductHistory(ctx context.Context, productID int64) ([]Record, error) {
	events.Store.Query("product-history", productID)
	rows, err := s.db.QueryContext(ctx, `SELECT record_date, record_type, quantity, status
		  FROM product_inventory_history
		 WHERE product_id = ?
		 ORDER BY record_date DESC, record_type ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("product history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// AddProduct inserts a product with the next free identifier. A positive
// opening stock is recorded as a Restock entry.
func (s *Store) AddProduct(ctx context.Context, p NewProduct) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	events.Store.Query("add-product", p.Name)
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(product_id), 0) + 1 FROM products`).Scan(&id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO products
			(product_id, product_name, category, price, stock_quantity, reorder_level, supplier_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, p.Name, p.Category, p.Price, p.Stock, p.ReorderLevel, p.SupplierID); err != nil {
			return err
		}
		if p.Stock > 0 {
			return insertStockEntry(ctx, tx, id, p.Stock, "Restock", s.today())
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("add product: %w", err)
	}
	return id, nil
}

// PlaceReorder records an Ordered reorder for a product.
func (s *Store) PlaceReorder(ctx context.Context, productID int64, quantity int) (int64, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("place reorder: quantity must be at least 1")
	}
	events.Store.Query("place-reorder", productID, quantity)
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(reorder_id), 0) + 1 FROM reorders`).Scan(&id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO reorders
			(reorder_id, product_id, reorder_quantity, reorder_date, status)
			VALUES (?, ?, ?, ?, ?)`, id, productID, quantity, s.today(), StatusOrdered)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("place reorder: %w", err)
	}
	return id, nil
}

// ReceiveReorder marks a pending reorder received and books its quantity
// into stock.
func (s *Store) ReceiveReorder(ctx context.Context, reorderID int64) error {
	events.Store.Query("receive-reorder", reorderID)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var productID int64
		var quantity int
		var status string
		err := tx.QueryRowContext(ctx, `SELECT product_id, reorder_quantity, status FROM reorders WHERE reorder_id = ?`,
			reorderID).Scan(&productID, &quantity, &status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrReorderNotFound, reorderID)
		}
		if err != nil {
			return err
		}
		if status == StatusReceived {
			return fmt.Errorf("%w: %d", ErrAlreadyReceived, reorderID)
		}
		today := s.today()
		if _, err := tx.ExecContext(ctx, `UPDATE reorders SET status = ?, received_date = ? WHERE reorder_id = ?`,
			StatusReceived, today, reorderID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE products SET stock_quantity = stock_quantity + ? WHERE product_id = ?`,
			quantity, productID); err != nil {
			return err
		}
		return insertStockEntry(ctx, tx, productID, quantity, "Restock", today)
	})
	if err != nil {
		return fmt.Errorf("receive reorder: %w", err)
	}
	return nil
}

func insertStockEntry(ctx context.Context, tx *sql.Tx, productID int64, quantity int, kind, date string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO stock_entries (entry_id, product_id, change_quantity, change_type, entry_date)
		SELECT COALESCE(MAX(entry_id), 0) + 1, ?, ?, ?, ? FROM stock_entries`,
		productID, quantity, kind, date)
	return err
}
