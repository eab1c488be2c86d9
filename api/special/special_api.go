package special

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kms.GO/api"
	"kms.GO/core/cache"
	entity "kms.GO/model/entity"
	specialRepo "kms.GO/model/repository/special"
	specialService "kms.GO/service/special"
)

func init() {
	api.RegisterModule(RegisterSpecialRoutes)
}

// cacheTag groups every cached specials listing so one mutation invalidates
// them all.
const cacheTag = "specials"

// listing responses are short-lived: the catalog changes rarely but imports
// must become visible even if an invalidation is missed.
const cacheTTLSeconds = 60

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

func RegisterSpecialRoutes(apiGroup *echo.Group, repo *specialRepo.SpecialRepository) {
	g := apiGroup.Group("/specials")

	g.GET("", listSpecials(repo))
	g.GET("/:id", getSpecial(repo))
	g.POST("", createSpecial(repo))
	g.PUT("/:id", updateSpecial(repo))
	g.DELETE("/:id", deleteSpecial(repo))
}

// parseQueryParams maps the request query string onto QueryParams. filters
// is a JSON object of field -> accepted values; a malformed value means no
// structured filtering, matching the reference behavior.
func parseQueryParams(c echo.Context) specialService.QueryParams {
	p := specialService.QueryParams{
		Q:         c.QueryParam("q"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		p.Limit = n
	}
	if raw := c.QueryParam("filters"); raw != "" {
		var f specialService.Filters
		if err := json.Unmarshal([]byte(raw), &f); err == nil {
			p.Filters = f
		}
	}
	return p
}

func listSpecials(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := []interface{}{cacheTag, c.QueryString()}
		if cached, ok := cache.GetInstance().GetN(key...); ok {
			if body, isBytes := cached.([]byte); isBytes {
				return c.JSONBlob(http.StatusOK, body)
			}
		}

		all, err := repo.ReadAll()
		if err != nil {
			return storageError(c, err)
		}
		result := specialService.Query(all, parseQueryParams(c))

		body, err := json.Marshal(echo.Map{
			"success": true,
			"data":    result.Data,
			"pagination": pagination{
				Page:       result.Page,
				Limit:      result.Limit,
				TotalCount: result.TotalCount,
				TotalPages: result.TotalPages,
			},
		})
		if err != nil {
			return storageError(c, err)
		}
		cache.GetInstance().SetN(key, body, cacheTTLSeconds, []string{cacheTag})
		return c.JSONBlob(http.StatusOK, body)
	}
}

func getSpecial(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := repo.GetByID(c.Param("id"))
		if errors.Is(err, specialRepo.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Special not found"})
		}
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": s})
	}
}

func createSpecial(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok, err := bindAndValidate(c)
		if !ok {
			return err
		}
		// system_number doubles as the import upsert key; letting a direct
		// create shadow an existing one would make later imports ambiguous.
		all, readErr := repo.ReadAll()
		if readErr != nil {
			return storageError(c, readErr)
		}
		for _, existing := range all {
			if existing.SystemNumber == s.SystemNumber {
				return c.JSON(http.StatusConflict, echo.Map{
					"success": false,
					"error":   specialService.ErrDuplicateSystemNumber.Error(),
				})
			}
		}
		created, createErr := repo.Create(s)
		if createErr != nil {
			return storageError(c, createErr)
		}
		cache.GetInstance().DeleteByTag(cacheTag)
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
	}
}

func updateSpecial(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok, err := bindAndValidate(c)
		if !ok {
			return err
		}
		s.ID = c.Param("id") // the path wins; ids are never client-mutable
		updated, updateErr := repo.Update(s)
		if errors.Is(updateErr, specialRepo.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Special not found"})
		}
		if updateErr != nil {
			return storageError(c, updateErr)
		}
		cache.GetInstance().DeleteByTag(cacheTag)
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
	}
}

func deleteSpecial(repo *specialRepo.SpecialRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := repo.Delete(c.Param("id"))
		if errors.Is(err, specialRepo.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Special not found"})
		}
		if err != nil {
			return storageError(c, err)
		}
		cache.GetInstance().DeleteByTag(cacheTag)
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Special deleted"})
	}
}

// bindAndValidate decodes an untyped JSON body and runs it through the
// record validator. Returns ok=false with the response already written on
// failure.
func bindAndValidate(c echo.Context) (entity.Special, bool, error) {
	var row specialService.Row
	if err := c.Bind(&row); err != nil {
		return entity.Special{}, false, c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid JSON body",
		})
	}
	s, errs := specialService.ValidateRow(row)
	if len(errs) > 0 {
		return entity.Special{}, false, c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Validation failed",
			"errors":  errs,
		})
	}
	return s, true, nil
}

func storageError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"error":   err.Error(),
	})
}
