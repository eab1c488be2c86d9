package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kms.GO/api"
	"kms.GO/config"
	specialRepo "kms.GO/model/repository/special"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes exposes GET /health at root level, outside the
// authenticated /api group.
func RegisterHealthRoutes(e *echo.Echo, repo *specialRepo.SpecialRepository) {
	e.GET("/health", func(c echo.Context) error {
		mode := config.GetEnv("DATA_MODE", "json")
		specials, err := repo.ReadAll()
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"database": echo.Map{
					"mode":       mode,
					"connection": "failed",
					"error":      err.Error(),
				},
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"database": echo.Map{
				"mode":        mode,
				"connection":  "ok",
				"recordCount": len(specials),
			},
		})
	})
}
