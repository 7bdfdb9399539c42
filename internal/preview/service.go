package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/lineitem"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/angelmondragon/shoppingcart/pkg/numfmt"
	"go.uber.org/multierr"
)

// Document is the JSON payload accepted by the preview builder. Each entry
// uses the same keys as the item maps (id, name, value / price, qty, ...).
type Document struct {
	Discounts []map[string]any `json:"discounts"`
	Shipping  []map[string]any `json:"shipping"`
}

// Totals aggregates the built lines.
type Totals struct {
	Discounts        float64
	ShippingSubtotal float64
	ShippingTax      float64
	Shipping         float64
}

// Result holds the built line items and their totals.
type Result struct {
	Discounts []*lineitem.DiscountItem
	Shipping  []*lineitem.ShippingItem
	Totals    Totals

	format numfmt.Format
}

// Display formats an amount with the result's number format.
func (r *Result) Display(value float64, opts ...numfmt.Option) string {
	return r.format.Apply(opts...).String(value)
}

// Service builds line item previews from decoded documents.
type Service interface {
	Build(ctx context.Context, doc Document) (*Result, error)
	Validate(ctx context.Context, doc Document) error
}

type service struct {
	format numfmt.Format
	logg   *logger.Logger
}

// NewService builds a preview service that formats amounts with format.
func NewService(format numfmt.Format, logg *logger.Logger) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		format: format,
		logg:   logg,
	}, nil
}

// Decode reads a Document, keeping numbers as json.Number so identifiers
// and amounts survive without float rounding.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, pkgerrors.Wrap(pkgerrors.CodeInvalidArgument, err, "invalid preview document")
	}
	return doc, nil
}

func (s *service) Build(ctx context.Context, doc Document) (*Result, error) {
	res := &Result{
		Discounts: make([]*lineitem.DiscountItem, 0, len(doc.Discounts)),
		Shipping:  make([]*lineitem.ShippingItem, 0, len(doc.Shipping)),
		format:    s.format,
	}

	for i, attrs := range doc.Discounts {
		item, err := lineitem.DiscountItemFromMap(attrs)
		if err != nil {
			return nil, lineError("discounts", i, err)
		}
		item.SetNumberFormat(s.format)
		res.Discounts = append(res.Discounts, item)
		res.Totals.Discounts += item.Value()
		s.logg.Debug(s.logg.WithRowID(ctx, item.RowID()), "discount line built")
	}

	for i, attrs := range doc.Shipping {
		item, err := lineitem.ShippingItemFromMap(attrs)
		if err != nil {
			return nil, lineError("shipping", i, err)
		}
		item.SetNumberFormat(s.format)
		res.Shipping = append(res.Shipping, item)
		res.Totals.ShippingSubtotal += item.Subtotal()
		res.Totals.ShippingTax += item.TaxTotal()
		res.Totals.Shipping += item.Total()
		s.logg.Debug(s.logg.WithRowID(ctx, item.RowID()), "shipping line built")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"discounts": len(res.Discounts),
		"shipping":  len(res.Shipping),
	}), "preview built")
	return res, nil
}

// Validate builds every line and reports all failures together. Use
// multierr.Errors to split the result.
func (s *service) Validate(ctx context.Context, doc Document) error {
	var errs error
	for i, attrs := range doc.Discounts {
		if _, err := lineitem.DiscountItemFromMap(attrs); err != nil {
			errs = multierr.Append(errs, lineError("discounts", i, err))
		}
	}
	for i, attrs := range doc.Shipping {
		if _, err := lineitem.ShippingItemFromMap(attrs); err != nil {
			errs = multierr.Append(errs, lineError("shipping", i, err))
		}
	}
	if errs != nil {
		s.logg.Warn(s.logg.WithField(ctx, "invalid_lines", len(multierr.Errors(errs))), "preview document has invalid lines")
	}
	return errs
}

func lineError(section string, index int, err error) error {
	msg := err.Error()
	var details any
	if typed := pkgerrors.As(err); typed != nil {
		msg = typed.Message()
		details = typed.Details()
	}
	return pkgerrors.Wrap(pkgerrors.CodeInvalidArgument, err, fmt.Sprintf("%s[%d]: %s", section, index, msg)).
		WithDetails(details)
}
