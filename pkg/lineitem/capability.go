package lineitem

// Options is passed through to Discountable accessors untouched.
type Options map[string]any

// Discountable is implemented by domain objects a DiscountItem can be built from.
type Discountable interface {
	DiscountableIdentifier(opts Options) Identifier
	DiscountableDescription(opts Options) string
	DiscountableValue(opts Options) float64
}

// Shippable is implemented by domain objects a ShippingItem can be built from.
type Shippable interface {
	ShippableIdentifier() Identifier
	ShippableDescription() string
	ShippablePrice() float64
}

// Buyable is the older accessor naming for the same contract as Shippable.
type Buyable interface {
	BuyableIdentifier() Identifier
	BuyableDescription() string
	BuyablePrice() float64
}

type buyableShippable struct {
	Buyable
}

func (b buyableShippable) ShippableIdentifier() Identifier { return b.BuyableIdentifier() }
func (b buyableShippable) ShippableDescription() string    { return b.BuyableDescription() }
func (b buyableShippable) ShippablePrice() float64         { return b.BuyablePrice() }

// ShippableFromBuyable adapts a Buyable so it can be used wherever a Shippable is expected.
func ShippableFromBuyable(b Buyable) Shippable {
	if b == nil {
		return nil
	}
	return buyableShippable{Buyable: b}
}
