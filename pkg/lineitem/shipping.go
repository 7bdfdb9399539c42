package lineitem

import (
	"encoding/json"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/numfmt"
)

// ShippingItem is a shipping charge line. Tax, totals and the effective
// price are derived on every call from price, qty, taxRate and the
// free-shipping/discount adjustments; nothing derived is stored.
type ShippingItem struct {
	rowID            string
	id               Identifier
	name             string
	price            float64
	qty              float64
	taxRate          float64
	freeShipping     bool
	shippingDiscount float64
	associatedModel  string
	format           numfmt.Format
}

// ShippingAttributes is a partial update; nil fields are left unchanged.
type ShippingAttributes struct {
	ID               *Identifier
	Name             *string
	Price            *float64
	Qty              *float64
	TaxRate          *float64
	FreeShipping     *bool
	ShippingDiscount *float64
}

// NewShippingItem validates the fields and derives the row id. Quantity
// starts at 1, tax rate and shipping discount at 0.
func NewShippingItem(id Identifier, name string, price float64) (*ShippingItem, error) {
	s := newShippingDefaults()
	if err := s.UpdateFromAttributes(ShippingAttributes{ID: &id, Name: &name, Price: &price}); err != nil {
		return nil, err
	}
	return s, nil
}

// ShippingItemFromShippable builds an item from the capability's accessors.
func ShippingItemFromShippable(item Shippable) (*ShippingItem, error) {
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "shippable is required")
	}
	return NewShippingItem(item.ShippableIdentifier(), item.ShippableDescription(), item.ShippablePrice())
}

// ShippingItemFromMap requires id, name and price. qty, taxRate,
// freeShipping and shippingDiscount are applied when present.
func ShippingItemFromMap(attrs map[string]any) (*ShippingItem, error) {
	if err := requireKeys(attrs, fieldID, fieldName, fieldPrice); err != nil {
		return nil, err
	}
	parsed, err := parseShippingAttributes(attrs)
	if err != nil {
		return nil, err
	}
	s := newShippingDefaults()
	if err := s.UpdateFromAttributes(parsed); err != nil {
		return nil, err
	}
	return s, nil
}

func newShippingDefaults() *ShippingItem {
	return &ShippingItem{qty: 1, format: numfmt.Default()}
}

func (s *ShippingItem) RowID() string             { return s.rowID }
func (s *ShippingItem) ID() Identifier            { return s.id }
func (s *ShippingItem) Name() string              { return s.name }
func (s *ShippingItem) Price() float64            { return s.price }
func (s *ShippingItem) Qty() float64              { return s.qty }
func (s *ShippingItem) TaxRate() float64          { return s.taxRate }
func (s *ShippingItem) FreeShipping() bool        { return s.freeShipping }
func (s *ShippingItem) ShippingDiscount() float64 { return s.shippingDiscount }

// EffectivePrice is 0 with free shipping, otherwise price less the
// shipping discount. The stored price is never modified.
func (s *ShippingItem) EffectivePrice() float64 {
	if s.freeShipping {
		return 0
	}
	return s.price - s.shippingDiscount
}

func (s *ShippingItem) Tax() float64 {
	return s.EffectivePrice() * (s.taxRate / 100)
}

func (s *ShippingItem) PriceTax() float64 {
	return s.EffectivePrice() + s.Tax()
}

func (s *ShippingItem) Subtotal() float64 {
	return s.qty * s.EffectivePrice()
}

func (s *ShippingItem) Total() float64 {
	return s.qty * s.PriceTax()
}

func (s *ShippingItem) TaxTotal() float64 {
	return s.Tax() * s.qty
}

// SetQuantity rejects zero and non-finite quantities.
func (s *ShippingItem) SetQuantity(qty float64) error {
	return s.UpdateFromAttributes(ShippingAttributes{Qty: &qty})
}

func (s *ShippingItem) SetTaxRate(rate float64) *ShippingItem {
	s.taxRate = rate
	return s
}

func (s *ShippingItem) SetFreeShipping(free bool) *ShippingItem {
	s.freeShipping = free
	return s
}

func (s *ShippingItem) SetShippingDiscount(amount float64) error {
	return s.UpdateFromAttributes(ShippingAttributes{ShippingDiscount: &amount})
}

// SetNumberFormat replaces the base format used by the display methods.
func (s *ShippingItem) SetNumberFormat(f numfmt.Format) *ShippingItem {
	s.format = f
	return s
}

func (s *ShippingItem) PriceDisplay(opts ...numfmt.Option) string {
	return s.display(s.EffectivePrice(), opts)
}

func (s *ShippingItem) PriceTaxDisplay(opts ...numfmt.Option) string {
	return s.display(s.PriceTax(), opts)
}

func (s *ShippingItem) SubtotalDisplay(opts ...numfmt.Option) string {
	return s.display(s.Subtotal(), opts)
}

func (s *ShippingItem) TotalDisplay(opts ...numfmt.Option) string {
	return s.display(s.Total(), opts)
}

func (s *ShippingItem) TaxDisplay(opts ...numfmt.Option) string {
	return s.display(s.Tax(), opts)
}

func (s *ShippingItem) TaxTotalDisplay(opts ...numfmt.Option) string {
	return s.display(s.TaxTotal(), opts)
}

func (s *ShippingItem) display(value float64, opts []numfmt.Option) string {
	return s.format.Apply(opts...).String(value)
}

// UpdateFromAttributes overwrites the provided fields and recomputes the row
// id. Nothing changes when the merged result is invalid.
func (s *ShippingItem) UpdateFromAttributes(attrs ShippingAttributes) error {
	fields := shippingFields{
		ID:               s.id,
		Name:             s.name,
		Price:            s.price,
		Qty:              s.qty,
		ShippingDiscount: s.shippingDiscount,
	}
	if attrs.ID != nil {
		fields.ID = *attrs.ID
	}
	if attrs.Name != nil {
		fields.Name = *attrs.Name
	}
	if attrs.Price != nil {
		fields.Price = *attrs.Price
	}
	if attrs.Qty != nil {
		fields.Qty = *attrs.Qty
	}
	if attrs.ShippingDiscount != nil {
		fields.ShippingDiscount = *attrs.ShippingDiscount
	}
	if err := validateFields(fields); err != nil {
		return err
	}
	if attrs.TaxRate != nil {
		if err := validateFinite(fieldTaxRate, *attrs.TaxRate); err != nil {
			return err
		}
		s.taxRate = *attrs.TaxRate
	}
	if attrs.FreeShipping != nil {
		s.freeShipping = *attrs.FreeShipping
	}
	s.id = fields.ID
	s.name = fields.Name
	s.price = fields.Price
	s.qty = fields.Qty
	s.shippingDiscount = fields.ShippingDiscount
	s.rowID = shippingRowID(fields.ID, fields.Name, fields.Price)
	return nil
}

// UpdateFromMap is UpdateFromAttributes for loosely typed input.
func (s *ShippingItem) UpdateFromMap(attrs map[string]any) error {
	parsed, err := parseShippingAttributes(attrs)
	if err != nil {
		return err
	}
	return s.UpdateFromAttributes(parsed)
}

// UpdateFromShippable refreshes id, name and price from the capability and
// recomputes the row id.
func (s *ShippingItem) UpdateFromShippable(item Shippable) error {
	if item == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidArgument, "shippable is required")
	}
	id := item.ShippableIdentifier()
	name := item.ShippableDescription()
	price := item.ShippablePrice()
	return s.UpdateFromAttributes(ShippingAttributes{ID: &id, Name: &name, Price: &price})
}

// Clone returns an independent copy.
func (s *ShippingItem) Clone() *ShippingItem {
	c := *s
	return &c
}

// ToMap returns the stored fields together with every derived amount.
// price is the stored price; tax and totals use the effective price.
func (s *ShippingItem) ToMap() map[string]any {
	return map[string]any{
		"rowId":               s.rowID,
		fieldID:               s.id.Raw(),
		fieldName:             s.name,
		fieldQty:              s.qty,
		fieldPrice:            s.price,
		"tax":                 s.Tax(),
		"subtotal":            s.Subtotal(),
		fieldFreeShipping:     s.freeShipping,
		fieldShippingDiscount: s.shippingDiscount,
		"priceTax":            s.PriceTax(),
		"total":               s.Total(),
		"taxTotal":            s.TaxTotal(),
		fieldTaxRate:          s.taxRate,
	}
}

type shippingItemJSON struct {
	RowID            string     `json:"rowId"`
	ID               Identifier `json:"id"`
	Name             string     `json:"name"`
	Qty              float64    `json:"qty"`
	Price            float64    `json:"price"`
	Tax              float64    `json:"tax"`
	Subtotal         float64    `json:"subtotal"`
	FreeShipping     bool       `json:"freeShipping"`
	ShippingDiscount float64    `json:"shippingDiscount"`
	PriceTax         float64    `json:"priceTax"`
	Total            float64    `json:"total"`
	TaxTotal         float64    `json:"taxTotal"`
	TaxRate          float64    `json:"taxRate"`
}

func (s *ShippingItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(shippingItemJSON{
		RowID:            s.rowID,
		ID:               s.id,
		Name:             s.name,
		Qty:              s.qty,
		Price:            s.price,
		Tax:              s.Tax(),
		Subtotal:         s.Subtotal(),
		FreeShipping:     s.freeShipping,
		ShippingDiscount: s.shippingDiscount,
		PriceTax:         s.PriceTax(),
		Total:            s.Total(),
		TaxTotal:         s.TaxTotal(),
		TaxRate:          s.taxRate,
	})
}

// UnmarshalJSON rebuilds the item through ShippingItemFromMap. Derived keys
// and rowId are ignored.
func (s *ShippingItem) UnmarshalJSON(data []byte) error {
	attrs, err := decodeAttributes(data)
	if err != nil {
		return err
	}
	item, err := ShippingItemFromMap(attrs)
	if err != nil {
		return err
	}
	*s = *item
	return nil
}

// ToJSON returns the JSON encoding of ToMap with keys in declaration order.
func (s *ShippingItem) ToJSON() (string, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode shipping item")
	}
	return string(raw), nil
}

func parseShippingAttributes(attrs map[string]any) (ShippingAttributes, error) {
	var parsed ShippingAttributes
	var err error
	if parsed.ID, err = attrIdentifier(attrs, fieldID); err != nil {
		return ShippingAttributes{}, err
	}
	if parsed.Name, err = attrName(attrs, fieldName); err != nil {
		return ShippingAttributes{}, err
	}
	if parsed.Price, err = attrFloat(attrs, fieldPrice); err != nil {
		return ShippingAttributes{}, err
	}
	if parsed.Qty, err = attrFloat(attrs, fieldQty); err != nil {
		return ShippingAttributes{}, err
	}
	if parsed.TaxRate, err = attrFloat(attrs, fieldTaxRate); err != nil {
		return ShippingAttributes{}, err
	}
	if parsed.FreeShipping, err = attrBool(attrs, fieldFreeShipping); err != nil {
		return ShippingAttributes{}, err
	}
	if parsed.ShippingDiscount, err = attrFloat(attrs, fieldShippingDiscount); err != nil {
		return ShippingAttributes{}, err
	}
	return parsed, nil
}
