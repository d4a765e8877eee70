package catalogRepo

import (
	"fmt"
	"sort"
	"strings"

	"tablebooker/models"
)

// DefaultCatalog is the built-in restaurant set, mirroring the metadata the
// booking API partitions its endpoints by.
var DefaultCatalog = []models.Restaurant{
	{
		Name:        "Cafe Bistro",
		Microsite:   "CafeBistro",
		Description: "Casual French bistro with daily specials",
		Cuisine:     "French",
		PriceRange:  "$$",
		Keywords:    []string{"bistro", "cafe", "french"},
	},
	{
		Name:        "Pizza Palace",
		Microsite:   "PizzaPalace",
		Description: "Authentic Italian pizzas and pasta",
		Cuisine:     "Italian",
		PriceRange:  "$$$",
		Keywords:    []string{"pizza", "pasta", "italian"},
	},
	{
		Name:        "Sushi Zen",
		Microsite:   "SushiZen",
		Description: "Fresh sushi and Japanese cuisine",
		Cuisine:     "Japanese",
		PriceRange:  "$$$$",
		Keywords:    []string{"sushi", "japanese"},
	},
	{
		Name:        "The Hungry Unicorn",
		Microsite:   "TheHungryUnicorn",
		Description: "Upscale modern European cuisine",
		Cuisine:     "European",
		PriceRange:  "$$$$",
		Keywords:    []string{"unicorn", "fine dining", "european"},
	},
}

// StaticCatalogRepo serves the catalog from memory. Used in development and
// tests, and as the fallback when no database is configured.
type StaticCatalogRepo struct {
	restaurants []models.Restaurant
}

// NewStaticCatalogRepo creates a CatalogRepository over the given restaurants,
// or over DefaultCatalog when none are provided.
func NewStaticCatalogRepo(restaurants ...models.Restaurant) *StaticCatalogRepo {
	if len(restaurants) == 0 {
		restaurants = DefaultCatalog
	}
	sorted := make([]models.Restaurant, len(restaurants))
	copy(sorted, restaurants)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Microsite < sorted[j].Microsite })
	return &StaticCatalogRepo{restaurants: sorted}
}

// List returns every catalog restaurant ordered by microsite name.
func (r *StaticCatalogRepo) List() ([]models.Restaurant, error) {
	out := make([]models.Restaurant, len(r.restaurants))
	copy(out, r.restaurants)
	return out, nil
}

// GetByMicrosite retrieves a single restaurant by its microsite name.
func (r *StaticCatalogRepo) GetByMicrosite(microsite string) (*models.Restaurant, error) {
	for _, rest := range r.restaurants {
		if rest.Microsite == microsite {
			found := rest
			return &found, nil
		}
	}
	return nil, fmt.Errorf("restaurant %q not found", microsite)
}

// Resolve maps a user-provided restaurant string to its canonical microsite name.
func (r *StaticCatalogRepo) Resolve(value string) string {
	return resolveAgainst(r.restaurants, value)
}

// squash lowercases a string and strips all whitespace for loose matching.
func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// resolveAgainst implements the shared resolution policy: exact match on
// squashed microsite or display name first, then substring match on alias
// keywords and cuisine.
func resolveAgainst(restaurants []models.Restaurant, value string) string {
	norm := squash(value)
	if norm == "" {
		return ""
	}

	for _, rest := range restaurants {
		if norm == squash(rest.Microsite) || norm == squash(rest.Name) {
			return rest.Microsite
		}
	}

	lower := strings.ToLower(value)
	for _, rest := range restaurants {
		for _, kw := range rest.Keywords {
			if strings.Contains(lower, kw) {
				return rest.Microsite
			}
		}
		if rest.Cuisine != "" && strings.Contains(lower, strings.ToLower(rest.Cuisine)) {
			return rest.Microsite
		}
	}
	return ""
}
