// Package task defines the data-entry tasks offered on the tasks page: the
// fields each one shows, the candidate lists it needs, how its input is
// validated, and how a valid submission reaches the store.
package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/value"
	"golang.org/x/sync/errgroup"
)

// Kind identifies a task.
type Kind string

const (
	AddProduct     Kind = "add-product"
	ProductHistory Kind = "product-history"
	PlaceReorder   Kind = "place-reorder"
	ReceiveReorder Kind = "receive-reorder"
)

// FieldKind selects the control used for a field.
type FieldKind int

const (
	Text FieldKind = iota
	Number
	Select
)

// FieldSpec describes one form field.
type FieldSpec struct {
	ID          string
	Label       string
	Kind        FieldKind
	List        inventory.ListKind
	Placeholder string
	Decimal     bool
	Min         float64
}

// Values holds the entered text of input fields and the committed keys of
// select fields, both by field ID. An uncommitted select is absent.
type Values map[string]string

// Submission is a validated request ready for the store.
type Submission struct {
	Kind      Kind
	Product   inventory.NewProduct
	ProductID int64
	Quantity  int
	ReorderID int64
}

// CandidateSource supplies the options of select fields.
type CandidateSource interface {
	FetchList(ctx context.Context, kind inventory.ListKind) ([]value.Option, error)
}

// HistorySource supplies product histories.
type HistorySource interface {
	ProductHistory(ctx context.Context, productID int64) ([]inventory.Record, error)
}

// Submitter applies submissions.
type Submitter interface {
	AddProduct(ctx context.Context, p inventory.NewProduct) (int64, error)
	PlaceReorder(ctx context.Context, productID int64, quantity int) (int64, error)
	ReceiveReorder(ctx context.Context, reorderID int64) error
}

// ErrMissingSelection marks a submission attempted without a required
// selection.
var ErrMissingSelection = errors.New("task: missing selection")

// ValidationError reports an input problem tied to a field. Informational
// errors are shown as info notices rather than errors.
type ValidationError struct {
	Field         string
	Message       string
	Missing       bool
	Informational bool
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.Missing {
		return ErrMissingSelection
	}
	return nil
}

// Lists returns the distinct candidate lists needed by fields, in field order.
func Lists(fields []FieldSpec) []inventory.ListKind {
	var kinds []inventory.ListKind
	seen := make(map[inventory.ListKind]bool)
	for _, f := range fields {
		if f.Kind != Select || seen[f.List] {
			continue
		}
		seen[f.List] = true
		kinds = append(kinds, f.List)
	}
	return kinds
}

// FetchLists loads every requested list concurrently. The first failure
// cancels the rest and is returned alone.
func FetchLists(ctx context.Context, src CandidateSource, kinds []inventory.ListKind) (map[inventory.ListKind][]value.Option, error) {
	results := make([][]value.Option, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			opts, err := src.FetchList(gctx, kind)
			if err != nil {
				return fmt.Errorf("load %s: %w", kind, err)
			}
			results[i] = opts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[inventory.ListKind][]value.Option, len(kinds))
	for i, kind := range kinds {
		out[kind] = results[i]
	}
	return out, nil
}
