package lineitem

import (
	"bytes"
	"encoding/json"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/numfmt"
)

// DiscountItem is a flat discount line attached to a cart.
type DiscountItem struct {
	rowID  string
	id     Identifier
	name   string
	value  float64
	format numfmt.Format
}

// DiscountAttributes is a partial update; nil fields are left unchanged.
type DiscountAttributes struct {
	ID    *Identifier
	Name  *string
	Value *float64
}

// NewDiscountItem validates the fields and derives the row id.
func NewDiscountItem(id Identifier, name string, value float64) (*DiscountItem, error) {
	fields := discountFields{ID: id, Name: name, Value: value}
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	d := &DiscountItem{format: numfmt.Default()}
	d.assign(fields)
	return d, nil
}

// DiscountItemFromDiscountable builds an item from the capability's accessors,
// passing opts to each of them.
func DiscountItemFromDiscountable(item Discountable, opts Options) (*DiscountItem, error) {
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "discountable is required")
	}
	return NewDiscountItem(
		item.DiscountableIdentifier(opts),
		item.DiscountableDescription(opts),
		item.DiscountableValue(opts),
	)
}

// DiscountItemFromMap builds an item from the id, name and value keys.
func DiscountItemFromMap(attrs map[string]any) (*DiscountItem, error) {
	if err := requireKeys(attrs, fieldID, fieldName, fieldValue); err != nil {
		return nil, err
	}
	parsed, err := parseDiscountAttributes(attrs)
	if err != nil {
		return nil, err
	}
	return NewDiscountItem(*parsed.ID, *parsed.Name, *parsed.Value)
}

func (d *DiscountItem) RowID() string  { return d.rowID }
func (d *DiscountItem) ID() Identifier { return d.id }
func (d *DiscountItem) Name() string   { return d.name }
func (d *DiscountItem) Value() float64 { return d.value }

// SetNumberFormat replaces the format used by ValueDisplay.
func (d *DiscountItem) SetNumberFormat(f numfmt.Format) *DiscountItem {
	d.format = f
	return d
}

// ValueDisplay formats the discount value.
func (d *DiscountItem) ValueDisplay(opts ...numfmt.Option) string {
	return d.format.Apply(opts...).String(d.value)
}

// UpdateFromAttributes overwrites the provided fields and recomputes the row
// id. Nothing changes when the merged result is invalid.
func (d *DiscountItem) UpdateFromAttributes(attrs DiscountAttributes) error {
	fields := discountFields{ID: d.id, Name: d.name, Value: d.value}
	if attrs.ID != nil {
		fields.ID = *attrs.ID
	}
	if attrs.Name != nil {
		fields.Name = *attrs.Name
	}
	if attrs.Value != nil {
		fields.Value = *attrs.Value
	}
	if err := validateFields(fields); err != nil {
		return err
	}
	d.assign(fields)
	return nil
}

// UpdateFromMap is UpdateFromAttributes for loosely typed input.
func (d *DiscountItem) UpdateFromMap(attrs map[string]any) error {
	parsed, err := parseDiscountAttributes(attrs)
	if err != nil {
		return err
	}
	return d.UpdateFromAttributes(parsed)
}

// UpdateFromDiscountable refreshes id, name and value from the capability.
func (d *DiscountItem) UpdateFromDiscountable(item Discountable, opts Options) error {
	if item == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidArgument, "discountable is required")
	}
	id := item.DiscountableIdentifier(opts)
	name := item.DiscountableDescription(opts)
	value := item.DiscountableValue(opts)
	return d.UpdateFromAttributes(DiscountAttributes{ID: &id, Name: &name, Value: &value})
}

// Clone returns an independent copy.
func (d *DiscountItem) Clone() *DiscountItem {
	c := *d
	return &c
}

// ToMap returns rowId, id, name and value.
func (d *DiscountItem) ToMap() map[string]any {
	return map[string]any{
		"rowId":    d.rowID,
		fieldID:    d.id.Raw(),
		fieldName:  d.name,
		fieldValue: d.value,
	}
}

type discountItemJSON struct {
	RowID string     `json:"rowId"`
	ID    Identifier `json:"id"`
	Name  string     `json:"name"`
	Value float64    `json:"value"`
}

func (d *DiscountItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(discountItemJSON{
		RowID: d.rowID,
		ID:    d.id,
		Name:  d.name,
		Value: d.value,
	})
}

// UnmarshalJSON rebuilds the item through DiscountItemFromMap; the encoded
// rowId is ignored and recomputed.
func (d *DiscountItem) UnmarshalJSON(data []byte) error {
	attrs, err := decodeAttributes(data)
	if err != nil {
		return err
	}
	item, err := DiscountItemFromMap(attrs)
	if err != nil {
		return err
	}
	*d = *item
	return nil
}

// ToJSON returns the JSON encoding of ToMap with keys in declaration order.
func (d *DiscountItem) ToJSON() (string, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode discount item")
	}
	return string(raw), nil
}

func (d *DiscountItem) assign(fields discountFields) {
	d.id = fields.ID
	d.name = fields.Name
	d.value = fields.Value
	d.rowID = discountRowID(fields.ID, fields.Name, fields.Value)
}

func parseDiscountAttributes(attrs map[string]any) (DiscountAttributes, error) {
	var parsed DiscountAttributes
	var err error
	if parsed.ID, err = attrIdentifier(attrs, fieldID); err != nil {
		return DiscountAttributes{}, err
	}
	if parsed.Name, err = attrName(attrs, fieldName); err != nil {
		return DiscountAttributes{}, err
	}
	if parsed.Value, err = attrFloat(attrs, fieldValue); err != nil {
		return DiscountAttributes{}, err
	}
	return parsed, nil
}

func decodeAttributes(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var attrs map[string]any
	if err := decoder.Decode(&attrs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidArgument, err, "invalid line item json")
	}
	if attrs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "invalid line item json")
	}
	return attrs, nil
}
