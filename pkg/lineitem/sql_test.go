package lineitem

import (
	"testing"
)

func TestDiscountItemsValueAndScan(t *testing.T) {
	summer, err := NewDiscountItem(StringID("SUMMER-10"), `Summer "sale", 10\off`, 5.25)
	if err != nil {
		t.Fatalf("NewDiscountItem() error = %v", err)
	}
	welcome, err := NewDiscountItem(IntID(1), "Some discount item", 10)
	if err != nil {
		t.Fatalf("NewDiscountItem() error = %v", err)
	}

	payload := DiscountItems{summer, welcome}
	val, err := payload.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var decoded DiscountItems
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 discounts, got %d", len(decoded))
	}

	for i, want := range payload {
		got := decoded[i]
		if got.Name() != want.Name() {
			t.Fatalf("expected name %q, got %q", want.Name(), got.Name())
		}
		if got.ID() != want.ID() {
			t.Fatalf("expected id %#v, got %#v", want.ID(), got.ID())
		}
		if got.Value() != want.Value() {
			t.Fatalf("expected value %v, got %v", want.Value(), got.Value())
		}
		if got.RowID() != want.RowID() {
			t.Fatalf("expected row id %s, got %s", want.RowID(), got.RowID())
		}
	}
}

func TestDiscountItemsValueEdges(t *testing.T) {
	var empty DiscountItems
	if val, err := empty.Value(); err != nil || val != nil {
		t.Fatalf("expected nil value for nil slice, got %v %v", val, err)
	}
	if val, err := (DiscountItems{}).Value(); err != nil || val != "{}" {
		t.Fatalf("expected empty array literal, got %v %v", val, err)
	}
	if _, err := (DiscountItems{nil}).Value(); err == nil {
		t.Fatalf("expected nil entry to be rejected")
	}
}

func TestDiscountItemsScanNil(t *testing.T) {
	var discounts DiscountItems
	if err := discounts.Scan(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discounts != nil {
		t.Fatalf("expected nil slice, got %#v", discounts)
	}
}

func TestDiscountItemsScanRejectsInvalidRows(t *testing.T) {
	var discounts DiscountItems
	if err := discounts.Scan(`{"(\"x\",\"1\",\"\",5)"}`); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if err := discounts.Scan(`{"(\"x\",\"1\",\"name\")"}`); err == nil {
		t.Fatalf("expected short composite to be rejected")
	}
}

func TestShippingItemsValueAndScan(t *testing.T) {
	standard, err := NewShippingItem(IntID(1), "Standard Shipping", 5)
	if err != nil {
		t.Fatalf("NewShippingItem() error = %v", err)
	}
	standard.SetTaxRate(20).SetFreeShipping(true)

	val, err := ShippingItems{standard}.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var decoded ShippingItems
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 shipping item, got %d", len(decoded))
	}
	got := decoded[0]
	if got.RowID() != standardShippingRowID {
		t.Fatalf("unexpected row id %s", got.RowID())
	}
	if got.TaxRate() != 20 || !got.FreeShipping() || got.Price() != 5 {
		t.Fatalf("unexpected restored item %+v", got.ToMap())
	}
}

func TestShippingItemsScanUnsupportedType(t *testing.T) {
	var items ShippingItems
	if err := items.Scan(42); err == nil {
		t.Fatalf("expected unsupported scan type error")
	}
	if val, err := ShippingItems(nil).Value(); err != nil || string(val.([]byte)) != "[]" {
		t.Fatalf("expected empty json array, got %v %v", val, err)
	}
}

func TestParseCompositeHandlesQuoting(t *testing.T) {
	fields, err := parseComposite(`("a\"b","c,d","e""f",1.5)`, 4)
	if err != nil {
		t.Fatalf("parseComposite() error = %v", err)
	}
	want := []string{`a"b`, "c,d", `e"f`, "1.5"}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field %d: expected %q, got %q", i, want[i], fields[i])
		}
	}
	if _, err := parseComposite("no parens", 1); err == nil {
		t.Fatalf("expected format error")
	}
}
