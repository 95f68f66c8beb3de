package enums

// ProductBadge is the optional highlight tag carried by catalog products.
type ProductBadge string

const (
	ProductBadgeBestSeller ProductBadge = "Best Seller"
	ProductBadgePopular    ProductBadge = "Popular"
	ProductBadgeFewStocks  ProductBadge = "Few stocks left"
)

var validProductBadges = []ProductBadge{
	ProductBadgeBestSeller,
	ProductBadgePopular,
	ProductBadgeFewStocks,
}

// String implements fmt.Stringer.
func (p ProductBadge) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductBadge.
func (p ProductBadge) IsValid() bool {
	for _, candidate := range validProductBadges {
		if candidate == p {
			return true
		}
	}
	return false
}
