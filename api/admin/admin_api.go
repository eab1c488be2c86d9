package admin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kms.GO/api"
	"kms.GO/core/cache"
	specialRepo "kms.GO/model/repository/special"
	specialService "kms.GO/service/special"
)

func init() {
	api.RegisterModule(RegisterAdminRoutes)
}

func RegisterAdminRoutes(apiGroup *echo.Group, repo *specialRepo.SpecialRepository) {
	g := apiGroup.Group("/admin")

	g.POST("/import", importSpecials(repo))
	g.GET("/export", exportSpecials(repo))
	g.GET("/template", downloadTemplate())
	g.POST("/delete-all", deleteAll(repo))
}

func importSpecials(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No file provided"})
		}
		mode := specialService.ParseMode(c.FormValue("mode"))

		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No file provided"})
		}
		defer src.Close()

		res, err := specialService.ImportSpecials(repo, src, specialService.ImportOptions{
			Mode:     mode,
			Filename: fileHeader.Filename,
		})
		if err != nil {
			var vErr *specialService.ValidationError
			switch {
			case errors.As(err, &vErr):
				// The whole report goes back at once; nothing was written.
				return c.JSON(http.StatusOK, echo.Map{
					"success":          false,
					"error":            "Validation errors found",
					"validationErrors": vErr.RowErrors,
					"validRows":        vErr.ValidRows,
					"totalRows":        vErr.TotalRows,
				})
			case errors.Is(err, specialService.ErrEmptyFile):
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "File is empty"})
			case errors.Is(err, specialService.ErrInvalidFormat):
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid file format"})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Import failed", "message": err.Error()})
			}
		}

		cache.GetInstance().DeleteByTag("specials")
		c.Response().Header().Set("X-Request-Duration-ms", fmt.Sprint(time.Since(start).Milliseconds()))
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  fmt.Sprintf("Successfully imported %d specials", len(res.Imported)),
			"imported": len(res.Imported),
			"mode":     string(mode),
		})
	}
}

func exportSpecials(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		format := c.QueryParam("format")
		if format == "" {
			format = "xlsx"
		}

		specials, err := repo.ReadAll()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Export failed", "message": err.Error()})
		}
		if len(specials) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "No data to export"})
		}

		if format == "json" {
			return c.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data":    specials,
				"count":   len(specials),
			})
		}

		export, err := specialService.ExportSpecials(specials, specialService.ExportFormat(format))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, export.Filename))
		return c.Blob(http.StatusOK, export.ContentType, export.Data)
	}
}

func downloadTemplate() echo.HandlerFunc {
	return func(c echo.Context) error {
		export, err := specialService.TemplateWorkbook()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Template generation failed", "message": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, export.Filename))
		return c.Blob(http.StatusOK, export.ContentType, export.Data)
	}
}

func deleteAll(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := repo.DeleteAll(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Delete operation failed", "message": err.Error()})
		}
		cache.GetInstance().DeleteByTag("specials")
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "All specials deleted successfully",
		})
	}
}
