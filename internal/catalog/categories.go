package catalog

// Category is one of the storefront's fixed product categories.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

var categories = []Category{
	{
		ID:       "christmas",
		Name:     "CHRISTMAS MENU",
		ImageURL: "https://images.unsplash.com/photo-1512909006721-3d6018887383?w=400&h=300&fit=crop",
	},
	{
		ID:       "mini-cookies",
		Name:     "Mini Cookies",
		ImageURL: "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=400&h=300&fit=crop",
	},
	{
		ID:       "same-day",
		Name:     "SAME DAY DELIVERY!",
		ImageURL: "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?w=400&h=300&fit=crop",
	},
	{
		ID:       "gift-sets",
		Name:     "Gift Sets",
		ImageURL: "https://images.unsplash.com/photo-1549007994-cb92caebd54b?w=400&h=300&fit=crop",
	},
	{
		ID:       "brownies",
		Name:     "Brownies",
		ImageURL: "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=400&h=300&fit=crop",
	},
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether the id names a known category.
func ValidCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
