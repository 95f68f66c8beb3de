package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/koussaybh/patisserie-storefront/pkg/bakery"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

type productLister interface {
	ListProducts(ctx context.Context, category string) ([]bakery.Product, error)
}

// Service exposes the product catalog for the chosen category.
type Service interface {
	ListProducts(ctx context.Context, category, search string) ([]bakery.Product, error)
	ResolveSelection(ctx context.Context, category, productID, variantID string) (*Selection, error)
}

type service struct {
	backend productLister
}

// NewService builds a catalog service backed by the bakery client.
func NewService(backend productLister) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("product lister required")
	}
	return &service{backend: backend}, nil
}

// ListProducts fetches the category's catalog, optionally narrowed by a
// case-insensitive name search.
func (s *service) ListProducts(ctx context.Context, category, search string) ([]bakery.Product, error) {
	products, err := s.backend.ListProducts(ctx, category)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return products, nil
	}
	filtered := make([]bakery.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Selection is the resolved (id, variant, price, name) tuple the cart
// consumes. The unit price already includes the variant modifier.
type Selection struct {
	ProductID   string
	VariantID   string
	Name        string
	VariantName string
	UnitPrice   decimal.Decimal
}

// ResolveSelection looks up the product in the category and applies the
// chosen variant's price modifier. Products carrying variants require one.
func (s *service) ResolveSelection(ctx context.Context, category, productID, variantID string) (*Selection, error) {
	products, err := s.backend.ListProducts(ctx, category)
	if err != nil {
		return nil, err
	}

	var product *bakery.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found in category")
	}

	selection := &Selection{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
	}

	if variantID == "" {
		if len(product.Variants) > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product requires a variant selection")
		}
		return selection, nil
	}

	for _, variant := range product.Variants {
		if variant.ID == variantID {
			selection.VariantID = variant.ID
			selection.VariantName = variant.Name
			selection.UnitPrice = product.Price.Add(variant.PriceModifier)
			return selection, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown variant %q", variantID))
}
