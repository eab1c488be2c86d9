package apitest

import (
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	adminApi "kms.GO/api/admin"
	healthApi "kms.GO/api/health"
	specialApi "kms.GO/api/special"
	"kms.GO/core/auth"
	"kms.GO/core/cache"
	entity "kms.GO/model/entity"
	specialRepo "kms.GO/model/repository/special"
)

const (
	testToken       = "test-admin-token"
	echoContentType = "Content-Type"
	echoJSON        = "application/json"
)

// newTestServer wires the routes the same way the bootstrap does: health at
// root, everything else on an authenticated /api group. Each call gets a
// fresh store file and a clean listing cache.
func newTestServer(t *testing.T) (*echo.Echo, *specialRepo.SpecialRepository) {
	t.Helper()
	t.Setenv("ADMIN_TOKEN", testToken)

	repo := specialRepo.NewSpecialRepository(filepath.Join(t.TempDir(), "specials.json"))

	e := echo.New()
	apiGroup := e.Group("/api", auth.Middleware())
	specialApi.RegisterSpecialRoutes(apiGroup, repo)
	adminApi.RegisterAdminRoutes(apiGroup, repo)
	healthApi.RegisterHealthRoutes(e, repo)

	// Cached listings are keyed by query string only, so responses from a
	// previous test's store would leak across servers.
	cache.GetInstance().DeleteByTag("specials")

	return e, repo
}

func seedSpecial(t *testing.T, repo *specialRepo.SpecialRepository, sys, name string, price float64) entity.Special {
	t.Helper()
	s, err := repo.Create(entity.Special{
		SystemNumber:      sys,
		PartName:          name,
		VehicleReference:  []string{},
		AlterNumbers:      []string{},
		FrRr:              "UNKNOWN",
		LhRh:              "UNKNOWN",
		InrOtr:            "UNKNOWN",
		SellingPrice:      price,
		WholesalePrice:    price * 0.8,
		QuantityAvailable: 1,
		Packaging:         "EACH",
		Condition:         "NEW",
	})
	if err != nil {
		t.Fatalf("seed %s: %v", sys, err)
	}
	return s
}
