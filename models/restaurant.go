package models

// Restaurant is a catalog entry. Microsite is the identifier the booking API
// partitions its endpoints by.
type Restaurant struct {
	Name        string   `json:"name" bson:"name"`
	Microsite   string   `json:"microsite_name" bson:"microsite_name"`
	Description string   `json:"description" bson:"description"`
	Cuisine     string   `json:"cuisine" bson:"cuisine"`
	PriceRange  string   `json:"price_range" bson:"price_range"`
	Keywords    []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
}
