package lineitem

import (
	"encoding/json"
	"math"
	"testing"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/numfmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const someDiscountRowID = "fb0c6e61b31a93045a6779dd59f31f98"

type discountObject struct {
	id       Identifier
	name     string
	value    float64
	seenOpts []Options
}

func (d *discountObject) DiscountableIdentifier(opts Options) Identifier {
	d.seenOpts = append(d.seenOpts, opts)
	return d.id
}

func (d *discountObject) DiscountableDescription(opts Options) string {
	d.seenOpts = append(d.seenOpts, opts)
	return d.name
}

func (d *discountObject) DiscountableValue(opts Options) float64 {
	d.seenOpts = append(d.seenOpts, opts)
	return d.value
}

func newSomeDiscount(t *testing.T) *DiscountItem {
	t.Helper()
	item, err := NewDiscountItem(IntID(1), "Some discount item", 10.00)
	require.NoError(t, err)
	return item
}

func TestDiscountItemCanBeCastToMap(t *testing.T) {
	item := newSomeDiscount(t)

	assert.Equal(t, map[string]any{
		"rowId": someDiscountRowID,
		"id":    int64(1),
		"name":  "Some discount item",
		"value": 10.00,
	}, item.ToMap())
}

func TestDiscountItemCanBeCastToJSON(t *testing.T) {
	item := newSomeDiscount(t)

	encoded, err := item.ToJSON()
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(encoded)))
	assert.Equal(t, `{"rowId":"fb0c6e61b31a93045a6779dd59f31f98","id":1,"name":"Some discount item","value":10}`, encoded)
}

func TestDiscountItemRowIDIsDeterministic(t *testing.T) {
	first := newSomeDiscount(t)
	second := newSomeDiscount(t)

	assert.Equal(t, first.RowID(), second.RowID())
	assert.Equal(t, discountRowID(IntID(1), "Some discount item", 10), first.RowID())

	fromString, err := NewDiscountItem(StringID("1"), "Some discount item", 10)
	require.NoError(t, err)
	assert.Equal(t, first.RowID(), fromString.RowID())

	other, err := NewDiscountItem(IntID(1), "Some discount item", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "ab243dfad1d778b5fd46431044748dad", other.RowID())
}

func TestNewDiscountItemRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		id      Identifier
		title   string
		value   float64
		message string
	}{
		{name: "zero int id", id: IntID(0), title: "x", value: 1, message: "please supply a valid identifier"},
		{name: "empty string id", id: StringID(""), title: "x", value: 1, message: "please supply a valid identifier"},
		{name: "empty name", id: IntID(1), title: "", value: 1, message: "please supply a valid name"},
		{name: "nan value", id: IntID(1), title: "x", value: math.NaN(), message: "please supply a valid value"},
		{name: "inf value", id: IntID(1), title: "x", value: math.Inf(-1), message: "please supply a valid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewDiscountItem(tt.id, tt.title, tt.value)
			require.Error(t, err)
			assert.Nil(t, item)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
			assert.Equal(t, tt.message, pkgerrors.As(err).Message())
		})
	}
}

func TestNewDiscountItemAcceptsZeroValue(t *testing.T) {
	item, err := NewDiscountItem(StringID("free"), "No-op discount", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, item.Value())
}

func TestDiscountItemFromMap(t *testing.T) {
	item, err := DiscountItemFromMap(map[string]any{"id": 1, "name": "Some discount item", "value": "10.00"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, item.Value())
	assert.Equal(t, someDiscountRowID, item.RowID())

	fromDecimal, err := DiscountItemFromMap(map[string]any{"id": "1", "name": "Some discount item", "value": decimal.RequireFromString("10.00")})
	require.NoError(t, err)
	assert.Equal(t, someDiscountRowID, fromDecimal.RowID())
}

func TestDiscountItemFromMapErrors(t *testing.T) {
	_, err := DiscountItemFromMap(map[string]any{"id": 1, "name": "x"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"value": "is required"}, pkgerrors.As(err).Details())

	_, err = DiscountItemFromMap(map[string]any{"id": 1, "name": "x", "value": "ten"})
	require.Error(t, err)
	assert.Equal(t, "please supply a valid value", pkgerrors.As(err).Message())

	_, err = DiscountItemFromMap(map[string]any{"id": true, "name": "x", "value": 1})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))

	_, err = DiscountItemFromMap(map[string]any{"id": 1, "name": 42, "value": 1})
	require.Error(t, err)
	assert.Equal(t, "please supply a valid name", pkgerrors.As(err).Message())
}

func TestDiscountItemMapRoundTrip(t *testing.T) {
	original, err := NewDiscountItem(StringID("SUMMER-10"), "Summer sale", 5.25)
	require.NoError(t, err)

	restored, err := DiscountItemFromMap(original.ToMap())
	require.NoError(t, err)

	assert.Equal(t, original.ID(), restored.ID())
	assert.Equal(t, original.Name(), restored.Name())
	assert.Equal(t, original.Value(), restored.Value())
	assert.Equal(t, "46cffa73b2cf55dd840b94f0994db41a", restored.RowID())
}

func TestDiscountItemUpdateFromAttributes(t *testing.T) {
	item := newSomeDiscount(t)
	name := "Renamed discount"

	require.NoError(t, item.UpdateFromAttributes(DiscountAttributes{Name: &name}))
	assert.Equal(t, IntID(1), item.ID())
	assert.Equal(t, "Renamed discount", item.Name())
	assert.Equal(t, 10.0, item.Value())
	assert.Equal(t, "29fc5dae9756c1bf3010ece13114e464", item.RowID())
}

func TestDiscountItemUpdateIsAtomic(t *testing.T) {
	item := newSomeDiscount(t)
	empty := ""
	value := 99.0

	err := item.UpdateFromAttributes(DiscountAttributes{Name: &empty, Value: &value})
	require.Error(t, err)
	assert.Equal(t, "Some discount item", item.Name())
	assert.Equal(t, 10.0, item.Value())
	assert.Equal(t, someDiscountRowID, item.RowID())

	err = item.UpdateFromMap(map[string]any{"name": "Changed", "value": "abc"})
	require.Error(t, err)
	assert.Equal(t, "Some discount item", item.Name())
	assert.Equal(t, someDiscountRowID, item.RowID())
}

func TestDiscountItemUpdateFromMap(t *testing.T) {
	item := newSomeDiscount(t)

	require.NoError(t, item.UpdateFromMap(map[string]any{"value": json.Number("12.5")}))
	assert.Equal(t, 12.5, item.Value())
	assert.Equal(t, "ab243dfad1d778b5fd46431044748dad", item.RowID())
}

func TestDiscountItemFromDiscountablePassesOptions(t *testing.T) {
	source := &discountObject{id: IntID(1), name: "Some discount item", value: 10}
	opts := Options{"coupon": "WELCOME"}

	item, err := DiscountItemFromDiscountable(source, opts)
	require.NoError(t, err)
	assert.Equal(t, someDiscountRowID, item.RowID())
	require.Len(t, source.seenOpts, 3)
	for _, seen := range source.seenOpts {
		assert.Equal(t, "WELCOME", seen["coupon"])
	}

	_, err = DiscountItemFromDiscountable(nil, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
}

func TestDiscountItemUpdateFromDiscountable(t *testing.T) {
	item := newSomeDiscount(t)
	source := &discountObject{id: IntID(1), name: "Renamed discount", value: 10}

	require.NoError(t, item.UpdateFromDiscountable(source, nil))
	assert.Equal(t, "29fc5dae9756c1bf3010ece13114e464", item.RowID())

	bad := &discountObject{id: IntID(0), name: "x", value: 1}
	require.Error(t, item.UpdateFromDiscountable(bad, nil))
	assert.Equal(t, "Renamed discount", item.Name())
}

func TestDiscountItemUnmarshalJSON(t *testing.T) {
	var item DiscountItem
	err := json.Unmarshal([]byte(`{"rowId":"stale","id":1,"name":"Some discount item","value":10}`), &item)
	require.NoError(t, err)
	assert.Equal(t, someDiscountRowID, item.RowID())
	assert.Equal(t, IntID(1), item.ID())

	err = json.Unmarshal([]byte(`{"id":1,"name":""}`), &item)
	require.Error(t, err)
}

func TestDiscountItemCloneIsIndependent(t *testing.T) {
	item := newSomeDiscount(t)
	clone := item.Clone()
	name := "Renamed discount"

	require.NoError(t, clone.UpdateFromAttributes(DiscountAttributes{Name: &name}))
	assert.Equal(t, "Some discount item", item.Name())
	assert.Equal(t, someDiscountRowID, item.RowID())
	assert.NotEqual(t, item.RowID(), clone.RowID())
}

func TestDiscountItemValueDisplay(t *testing.T) {
	item, err := NewDiscountItem(IntID(7), "Bulk", 1234.5)
	require.NoError(t, err)

	assert.Equal(t, "1,234.50", item.ValueDisplay())
	assert.Equal(t, "1.234,5", item.ValueDisplay(numfmt.WithDecimals(1), numfmt.WithDecimalPoint(","), numfmt.WithThousandSeparator(".")))

	item.SetNumberFormat(numfmt.Format{Decimals: 0, ThousandSeparator: " "})
	assert.Equal(t, "1 235", item.ValueDisplay())
}
