package catalogRepo

import "tablebooker/models"

// CatalogRepository provides read access to the restaurant catalog.
type CatalogRepository interface {
	// List returns every catalog restaurant in a fixed, deterministic order.
	List() ([]models.Restaurant, error)
	// GetByMicrosite retrieves a single restaurant by its microsite name.
	GetByMicrosite(microsite string) (*models.Restaurant, error)
	// Resolve maps a user-provided restaurant string to its canonical
	// microsite name, ignoring case and whitespace and matching name,
	// microsite, cuisine and alias keywords. Returns "" when unresolved.
	Resolve(value string) string
}
