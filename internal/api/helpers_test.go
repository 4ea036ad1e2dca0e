package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/service"
	"github.com/pageza/budget-chef/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testDependencies wires real services over a seeded in-memory database
func testDependencies(t *testing.T) (Dependencies, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	testhelpers.SeedRecipes(t, db)

	recipes := repository.NewRecipeRepository(db)
	return Dependencies{
		DB:           db,
		Generator:    service.NewCatalogGenerator(recipes),
		Recipes:      service.NewRecipeService(recipes, nil),
		SavedRecipes: service.NewSavedRecipeService(repository.NewSavedRecipeRepository(db), recipes),
		Auth:         service.NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour),
	}, db
}

// SetupTestRouter creates a new router with test configuration
func SetupTestRouter(t *testing.T, deps Dependencies) *gin.Engine {
	t.Helper()
	router := gin.New()
	require.NoError(t, RegisterRoutes(router, deps))
	return router
}

// PerformRequest is a helper function to make HTTP requests in tests
func PerformRequest(router http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	router.ServeHTTP(w, req)
	return w
}
