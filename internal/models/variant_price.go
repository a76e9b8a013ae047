package models

// VariantPrice tracks where a variant row's price comes from in the
// admin editing form: either inherited from the product's base price or
// explicitly overridden for that row. Keeping the origin as an explicit
// kind (instead of a boolean beside a shadowed value) makes the
// precedence rule unambiguous: an override always wins, and clearing it
// falls back to inheritance.
type VariantPrice struct {
	kind  priceKind
	value float64
}

type priceKind int

const (
	priceInherited priceKind = iota
	priceOverridden
)

// InheritedPrice is a row price that follows the product base price.
func InheritedPrice(base float64) VariantPrice {
	return VariantPrice{kind: priceInherited, value: base}
}

// OverriddenPrice is a row price the user has set by hand.
func OverriddenPrice(v float64) VariantPrice {
	return VariantPrice{kind: priceOverridden, value: v}
}

// Overridden reports whether the user has set this row by hand.
func (v VariantPrice) Overridden() bool { return v.kind == priceOverridden }

// Resolve returns the effective price for the row given the current
// product base price. An inherited price tracks the base; an override
// keeps its own value no matter how the base moves.
func (v VariantPrice) Resolve(base float64) float64 {
	if v.kind == priceOverridden {
		return v.value
	}
	return base
}

// WithBase returns the row state after the product base price changes.
// Inherited rows pick up the new base; overridden rows are untouched.
func (v VariantPrice) WithBase(base float64) VariantPrice {
	if v.kind == priceOverridden {
		return v
	}
	return InheritedPrice(base)
}

// Clear drops any override, returning the row to inheritance.
func (v VariantPrice) Clear(base float64) VariantPrice {
	return InheritedPrice(base)
}
