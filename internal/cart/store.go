package cart

import (
	"github.com/shopspring/decimal"

	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

// Item is one purchasable line: a product plus optional variant, priced at
// the moment it was first added.
type Item struct {
	ProductID string
	VariantID string // empty when the product has no chosen variant
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// key is the canonical (product, variant) compound identity. Both Add and
// AdjustQuantity must resolve lines through lineKey so an absent variant and
// an empty-string variant collapse to the same line. Struct equality keeps
// ids with overlapping byte content from ever sharing a line.
type key struct {
	productID string
	variantID string
}

func lineKey(productID, variantID string) key {
	return key{productID: productID, variantID: variantID}
}

// Store owns the cart line collection for a single session. It holds at most
// one line per (product, variant) key and never keeps a zero-quantity line.
type Store struct {
	lines []Item
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add merges quantity into an existing line with the same key, or appends a
// new line. A merge never overwrites the stored price or name: the first add
// fixes them. Quantity must be positive.
func (s *Store) Add(productID, variantID, name string, unitPrice decimal.Decimal, quantity int) error {
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	key := lineKey(productID, variantID)
	for i := range s.lines {
		if lineKey(s.lines[i].ProductID, s.lines[i].VariantID) == key {
			s.lines[i].Quantity += quantity
			return nil
		}
	}

	s.lines = append(s.lines, Item{
		ProductID: productID,
		VariantID: variantID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	return nil
}

// AdjustQuantity adds delta to the matching line, clamping at zero. A line
// reaching zero is removed immediately. Unknown keys are a no-op.
func (s *Store) AdjustQuantity(productID, variantID string, delta int) {
	key := lineKey(productID, variantID)
	for i := range s.lines {
		if lineKey(s.lines[i].ProductID, s.lines[i].VariantID) != key {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return
	}
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// Snapshot returns a copy of the current lines in insertion order. Later cart
// mutations cannot alter a snapshot handed to checkout.
func (s *Store) Snapshot() []Item {
	out := make([]Item, len(s.lines))
	copy(out, s.lines)
	return out
}

// Clear drops every line. Only start-over uses it.
func (s *Store) Clear() {
	s.lines = nil
}

// PricingLines maps cart items to the view the pricing engine consumes.
func PricingLines(items []Item) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
