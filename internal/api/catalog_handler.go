package api

import (
	"net/http"

	"treinoapp/fitness-tracker/internal/catalog"

	"github.com/gin-gonic/gin"
)

// GetCatalog godoc
// @Summary List the exercise catalog
// @Description Returns the static muscle groups and their exercises.
// @Tags Catalog
// @Produce json
// @Success 200 {array} catalog.MuscleGroup
// @Router /catalog [get]
func GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Groups())
}
