package lineitem

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// DiscountItems maps to a Postgres discount_item[] column, where
// discount_item is the composite (row_id text, id text, name text, value numeric).
type DiscountItems []*DiscountItem

// Value implements driver.Valuer.
func (c DiscountItems) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	if len(c) == 0 {
		return "{}", nil
	}
	values := make([]string, 0, len(c))
	for i, item := range c {
		if item == nil {
			return nil, fmt.Errorf("discount items: nil entry at %d", i)
		}
		values = append(values, item.toComposite())
	}
	return pq.Array(values).Value()
}

// Scan implements sql.Scanner. Row ids are recomputed rather than trusted.
func (c *DiscountItems) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var raw pq.StringArray
	if err := raw.Scan(value); err != nil {
		return err
	}

	result := make(DiscountItems, 0, len(raw))
	for _, entry := range raw {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		item, err := parseDiscountComposite(entry)
		if err != nil {
			return err
		}
		result = append(result, item)
	}

	*c = result
	return nil
}

func (d *DiscountItem) toComposite() string {
	parts := []string{
		quoteCompositeString(d.rowID),
		quoteCompositeString(d.id.String()),
		quoteCompositeString(d.name),
		strconv.FormatFloat(d.value, 'f', -1, 64),
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func parseDiscountComposite(raw string) (*DiscountItem, error) {
	fields, err := parseComposite(raw, 4)
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("discount item: parse value %w", err)
	}
	item, err := NewDiscountItem(parseStoredIdentifier(fields[1]), fields[2], value)
	if err != nil {
		return nil, fmt.Errorf("discount item: %w", err)
	}
	return item, nil
}

// ShippingItems is stored as a JSONB array of ShippingItem objects.
type ShippingItems []*ShippingItem

// Value serializes the items to JSON.
func (s ShippingItems) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the item slice.
func (s *ShippingItems) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded ShippingItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
