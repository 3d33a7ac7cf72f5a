package inventory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 8, 10, 9, 30, 0, 0, time.UTC)

func openSeeded(t *testing.T) *Store {
	t.Helper()
	s := openEmpty(t)
	inserted, err := s.Seed(context.Background())
	require.NoError(t, err)
	require.True(t, inserted)
	return s
}

func openEmpty(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockroom.db")
	s, err := Open(context.Background(), Options{Path: path, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockroom.db")
	first, err := Migrate(path)
	require.NoError(t, err)
	second, err := Migrate(path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
	assert.Equal(t, first, second)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), Options{Path: "  "})
	require.Error(t, err)
}

func TestSeedOnlyFillsEmptyDatabase(t *testing.T) {
	s := openSeeded(t)
	inserted, err := s.Seed(context.Background())
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestBasicInfo(t *testing.T) {
	s := openSeeded(t)
	metrics, err := s.BasicInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, metrics, 6)

	labels := make([]string, len(metrics))
	for i, m := range metrics {
		labels[i] = m.Label
	}
	assert.Equal(t, []string{
		"Total Suppliers",
		"Total Products",
		"Total Categories Dealing",
		"Total Sale Value (Last 6 Months)",
		"Total Restock Value (Last 6 Months)",
		"Below Reorder & No Pending Reorders",
	}, labels)
	assert.Equal(t, 12.0, metrics[0].Value)
	assert.Equal(t, 24.0, metrics[1].Value)
	assert.Equal(t, 10.0, metrics[2].Value)
	assert.InDelta(t, 4261.6, metrics[3].Value, 0.001)
	assert.True(t, metrics[3].Money)
	assert.InDelta(t, 2386.3, metrics[4].Value, 0.001)
	assert.Equal(t, 7.0, metrics[5].Value)
	assert.False(t, metrics[5].Money)
}

func TestBasicInfoOnEmptyDatabase(t *testing.T) {
	s := openEmpty(t)
	metrics, err := s.BasicInfo(context.Background())
	require.NoError(t, err)
	for _, m := range metrics {
		assert.Zero(t, m.Value, m.Label)
	}
}

func TestFetchPagePaginatesInOrder(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	first, err := s.FetchPage(ctx, SourceSuppliers, 0, 10)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, []string{"supplier_name", "contact_name", "email", "phone"}, first[0].Names())
	name, _ := first[0].Get("supplier_name")
	assert.Equal(t, "Acme Components", name)

	rest, err := s.FetchPage(ctx, SourceSuppliers, 10, 10)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	last, _ := rest[1].Get("supplier_name")
	assert.Equal(t, "Lumen Lighting", last)

	empty, err := s.FetchPage(ctx, SourceSuppliers, 12, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFetchPageNeedingReorder(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()
	page, err := s.FetchPage(ctx, SourceNeedingReorder, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, []string{"Bluetooth Speaker", "18", "20"}, page[0].Values())

	tail, err := s.FetchPage(ctx, SourceNeedingReorder, 10, 10)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "Wool Blanket", tail[0][0].Value)
}

func TestFetchPageJoinsSupplier(t *testing.T) {
	s := openSeeded(t)
	page, err := s.FetchPage(context.Background(), SourceProducts, 0, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, Record{
		{Name: "product_name", Value: "Bluetooth Speaker"},
		{Name: "supplier_name", Value: "Fjord Electronics"},
		{Name: "stock_quantity", Value: "18"},
		{Name: "reorder_level", Value: "20"},
	}, page[0])
}

func TestFetchPageRejectsUnknownSourceAndBadBounds(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()
	_, err := s.FetchPage(ctx, "Warehouse Ghosts", 0, 10)
	assert.ErrorIs(t, err, ErrUnknownSource)
	_, err = s.FetchPage(ctx, SourceSuppliers, -1, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = s.FetchPage(ctx, SourceSuppliers, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestFetchLists(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	categories, err := s.FetchList(ctx, ListCategories)
	require.NoError(t, err)
	require.Len(t, categories, 10)
	assert.Equal(t, "Beverages", categories[0].Label)
	assert.Equal(t, "Beverages", string(categories[0].Key))

	suppliers, err := s.FetchList(ctx, ListSuppliers)
	require.NoError(t, err)
	require.Len(t, suppliers, 12)
	assert.Equal(t, "1", string(suppliers[0].Key))

	pending, err := s.FetchList(ctx, ListPendingReorders)
	require.NoError(t, err)
	labels := make([]string, len(pending))
	for i, opt := range pending {
		labels[i] = opt.Label
	}
	assert.Equal(t, []string{
		"ID 1 - Capacitor Kit",
		"ID 2 - Green Tea",
		"ID 4 - Wool Blanket",
		"ID 5 - Tennis Balls",
	}, labels)

	_, err = s.FetchList(ctx, ListKind("bogus"))
	assert.ErrorIs(t, err, ErrUnknownList)
}

func TestProductHistoryMostRecentFirst(t *testing.T) {
	s := openSeeded(t)
	history, err := s.ProductHistory(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"record_date", "record_type", "quantity", "status"}, history[0].Names())
	assert.Equal(t, []string{"2025-07-01", "Reorder", "60", "Ordered"}, history[0].Values())
	assert.Equal(t, []string{"2025-03-02", "Sale", "-25", ""}, history[1].Values())

	none, err := s.ProductHistory(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddProductAssignsNextIDAndRecordsOpeningStock(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()
	id, err := s.AddProduct(ctx, NewProduct{
		Name: "Label Maker", Category: "Office", Price: 34.5, Stock: 5, ReorderLevel: 2, SupplierID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), id)

	history, err := s.ProductHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, []string{"2025-08-10", "Restock", "5", ""}, history[0].Values())

	noStock, err := s.AddProduct(ctx, NewProduct{Name: "Pen", Category: "Office", Price: 1, SupplierID: 3})
	require.NoError(t, err)
	history, err = s.ProductHistory(ctx, noStock)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAddProductValidates(t *testing.T) {
	s := openSeeded(t)
	_, err := s.AddProduct(context.Background(), NewProduct{Name: "", Category: "Office", SupplierID: 1})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	_, err = s.AddProduct(context.Background(), NewProduct{Name: "Pen", Category: "Office", SupplierID: 0})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestPlaceReorder(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()
	id, err := s.PlaceReorder(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)

	pending, err := s.FetchList(ctx, ListPendingReorders)
	require.NoError(t, err)
	require.Len(t, pending, 5)
	assert.Equal(t, "ID 6 - Oat Granola", pending[4].Label)

	_, err = s.PlaceReorder(ctx, 3, 0)
	require.Error(t, err)
}

func TestReceiveReorder(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()
	require.NoError(t, s.ReceiveReorder(ctx, 1))

	page, err := s.FetchPage(ctx, SourceProducts, 0, 24)
	require.NoError(t, err)
	var stock string
	for _, rec := range page {
		if name, _ := rec.Get("product_name"); name == "Capacitor Kit" {
			stock, _ = rec.Get("stock_quantity")
		}
	}
	assert.Equal(t, "100", stock)

	history, err := s.ProductHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"2025-08-10", "Restock", "60", ""}, history[0].Values())

	pending, err := s.FetchList(ctx, ListPendingReorders)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	assert.ErrorIs(t, s.ReceiveReorder(ctx, 1), ErrAlreadyReceived)
	assert.ErrorIs(t, s.ReceiveReorder(ctx, 99), ErrReorderNotFound)
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "", displayValue(nil))
	assert.Equal(t, "abc", displayValue([]byte("abc")))
	assert.Equal(t, "12", displayValue(int64(12)))
	assert.Equal(t, "4.5", displayValue(4.5))
	assert.Equal(t, "2025-08-10", displayValue(fixedNow))
}
