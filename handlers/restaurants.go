package handlers

import (
	"net/http"

	catalogRepo "tablebooker/database/repository/catalog"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves the partner restaurant catalog.
type RestaurantHandler struct {
	Catalog catalogRepo.CatalogRepository
}

func NewRestaurantHandler(catalog catalogRepo.CatalogRepository) *RestaurantHandler {
	return &RestaurantHandler{Catalog: catalog}
}

// ListRestaurants returns every partner restaurant in catalog order.
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Catalog.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}
