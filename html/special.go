package html

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	specialRepo "kms.GO/model/repository/special"
	specialService "kms.GO/service/special"
)

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// RegisterSpecialHTMLRoutes registers the server-rendered catalog browse page
func RegisterSpecialHTMLRoutes(e *echo.Echo, repo *specialRepo.SpecialRepository) {
	e.GET("/specials", func(c echo.Context) error {
		params := specialService.QueryParams{
			Q:         c.QueryParam("q"),
			SortBy:    c.QueryParam("sortBy"),
			SortOrder: c.QueryParam("sortOrder"),
		}
		if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
			params.Page = n
		}
		if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
			params.Limit = n
		}

		all, err := repo.ReadAll()
		if err != nil {
			log.Println("Store error:", err)
			return c.String(http.StatusInternalServerError, "Error loading specials")
		}
		result := specialService.Query(all, params)

		prev := 0
		if result.Page > 1 {
			prev = result.Page - 1
		}
		next := 0
		if result.Page < result.TotalPages {
			next = result.Page + 1
		}
		return c.Render(http.StatusOK, "specials.html", map[string]interface{}{
			"Specials":   result.Data,
			"Query":      params.Q,
			"Page":       result.Page,
			"TotalPages": result.TotalPages,
			"TotalCount": result.TotalCount,
			"PrevPage":   prev,
			"NextPage":   next,
		})
	})
}
