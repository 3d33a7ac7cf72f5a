package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/value"
)

// Definition describes a task's form and behaviour.
type Definition struct {
	Kind   Kind
	Title  string
	Fields []FieldSpec
	// LoadError is shown when the candidate lists cannot be fetched.
	LoadError string
	// SubmitLabel is empty for tasks without a submit action.
	SubmitLabel string
	// FailurePrefix precedes store errors in the failure notice.
	FailurePrefix string
	// HistoryField names the select whose commits drive the history view.
	HistoryField string
	Validate     func(Values) (Submission, error)
	Submit       func(context.Context, Submitter, Submission) (string, error)
}

// Field IDs.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldStock    = "stock"
	FieldReorder  = "reorder-level"
	FieldSupplier = "supplier"
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldPending  = "reorder"
)

func definitions() []Definition {
	return []Definition{
		{
			Kind:  AddProduct,
			Title: "Add Product",
			Fields: []FieldSpec{
				{ID: FieldName, Label: "Product Name", Kind: Text},
				{ID: FieldCategory, Label: "Category", Kind: Select, List: inventory.ListCategories, Placeholder: "Search categories"},
				{ID: FieldPrice, Label: "Price", Kind: Number, Decimal: true},
				{ID: FieldStock, Label: "Stock Quantity", Kind: Number},
				{ID: FieldReorder, Label: "Reorder Level", Kind: Number},
				{ID: FieldSupplier, Label: "Supplier", Kind: Select, List: inventory.ListSuppliers, Placeholder: "Search suppliers"},
			},
			LoadError:     "Error loading data for Add Product form.",
			SubmitLabel:   "Add Product",
			FailurePrefix: "Error adding product",
			Validate:      validateAddProduct,
			Submit: func(ctx context.Context, s Submitter, sub Submission) (string, error) {
				if _, err := s.AddProduct(ctx, sub.Product); err != nil {
					return "", err
				}
				return fmt.Sprintf("Product '%s' added successfully", sub.Product.Name), nil
			},
		},
		{
			Kind:  ProductHistory,
			Title: "Product History",
			Fields: []FieldSpec{
				{ID: FieldProduct, Label: "Product", Kind: Select, List: inventory.ListProducts, Placeholder: "Search products"},
			},
			LoadError:    "Error loading products list.",
			HistoryField: FieldProduct,
		},
		{
			Kind:  PlaceReorder,
			Title: "Place Reorder",
			Fields: []FieldSpec{
				{ID: FieldProduct, Label: "Product", Kind: Select, List: inventory.ListProducts, Placeholder: "Search products"},
				{ID: FieldQuantity, Label: "Quantity", Kind: Number, Min: 1},
			},
			LoadError:     "Error loading products list.",
			SubmitLabel:   "Place Reorder",
			FailurePrefix: "Error placing reorder",
			Validate:      validatePlaceReorder,
			Submit: func(ctx context.Context, s Submitter, sub Submission) (string, error) {
				if _, err := s.PlaceReorder(ctx, sub.ProductID, sub.Quantity); err != nil {
					return "", err
				}
				return "Reorder placed successfully", nil
			},
		},
		{
			Kind:  ReceiveReorder,
			Title: "Receive Reorder",
			Fields: []FieldSpec{
				{ID: FieldPending, Label: "Pending Reorder", Kind: Select, List: inventory.ListPendingReorders, Placeholder: "Search pending reorders"},
			},
			LoadError:     "Error loading pending reorders.",
			SubmitLabel:   "Mark as Received",
			FailurePrefix: "Error receiving reorder",
			Validate:      validateReceiveReorder,
			Submit: func(ctx context.Context, s Submitter, sub Submission) (string, error) {
				if err := s.ReceiveReorder(ctx, sub.ReorderID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Reorder ID %d marked as received", sub.ReorderID), nil
			},
		},
	}
}

func validateAddProduct(v Values) (Submission, error) {
	name := strings.TrimSpace(v[FieldName])
	if name == "" {
		return Submission{}, &ValidationError{Field: FieldName, Message: "Please enter a product name."}
	}
	category, ok := v[FieldCategory]
	if !ok || category == "" {
		return Submission{}, &ValidationError{Field: FieldCategory, Message: "Please select a category.", Missing: true}
	}
	price, err := parseFloat(v, FieldPrice, "price", 0)
	if err != nil {
		return Submission{}, err
	}
	stock, err := parseInt(v, FieldStock, "stock quantity", 0)
	if err != nil {
		return Submission{}, err
	}
	reorder, err := parseInt(v, FieldReorder, "reorder level", 0)
	if err != nil {
		return Submission{}, err
	}
	supplierID, err := selectedID(v, FieldSupplier, "Please select a supplier.")
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		Kind: AddProduct,
		Product: inventory.NewProduct{
			Name:         name,
			Category:     category,
			Price:        price,
			Stock:        stock,
			ReorderLevel: reorder,
			SupplierID:   supplierID,
		},
	}, nil
}

func validatePlaceReorder(v Values) (Submission, error) {
	productID, err := selectedID(v, FieldProduct, "Please select a product.")
	if err != nil {
		return Submission{}, err
	}
	quantity, err := parseInt(v, FieldQuantity, "quantity", 1)
	if err != nil {
		return Submission{}, err
	}
	return Submission{Kind: PlaceReorder, ProductID: productID, Quantity: quantity}, nil
}

func validateReceiveReorder(v Values) (Submission, error) {
	reorderID, err := selectedID(v, FieldPending, "No pending reorders to receive.")
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Missing {
			verr.Informational = true
		}
		return Submission{}, err
	}
	return Submission{Kind: ReceiveReorder, ReorderID: reorderID}, nil
}

func selectedID(v Values, field, missing string) (int64, error) {
	raw, ok := v[field]
	if !ok || raw == "" {
		return 0, &ValidationError{Field: field, Message: missing, Missing: true}
	}
	id, err := value.Key(raw).Int()
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("Invalid selection %q.", raw)}
	}
	return id, nil
}

func parseInt(v Values, field, name string, min int) (int, error) {
	raw := strings.TrimSpace(v[field])
	if raw == "" {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("Please enter a %s.", name)}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("The %s must be a whole number.", name)}
	}
	if n < min {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("The %s must be at least %d.", name, min)}
	}
	return n, nil
}

func parseFloat(v Values, field, name string, min float64) (float64, error) {
	raw := strings.TrimSpace(v[field])
	if raw == "" {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("Please enter a %s.", name)}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("The %s must be a number.", name)}
	}
	if f < min {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("The %s must be at least %g.", name, min)}
	}
	return f, nil
}
