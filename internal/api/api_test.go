package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/middleware"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/testhelpers"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")
	flavorService := service.NewFlavorService(db)
	ingredientService := service.NewIngredientService(db)
	planService := service.NewPlanService(db, nil)
	snapshotService := service.NewSnapshotService(db, flavorService)
	socialService := service.NewSocialService(db)
	iconService := service.NewIconService(db, nil, "")

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	NewAccountHandler(authService).RegisterRoutes(protected)
	NewFlavorHandler(flavorService).RegisterRoutes(protected)
	NewIngredientHandler(ingredientService, authService).RegisterRoutes(protected)
	NewPlanHandler(planService, authService).RegisterRoutes(protected)
	NewSnapshotHandler(snapshotService, authService).RegisterRoutes(protected)
	NewSocialHandler(socialService).RegisterRoutes(protected)
	NewIconHandler(iconService).RegisterRoutes(protected)
	NewViewerHandler(authService, flavorService, ingredientService,
		planService, snapshotService, socialService, iconService).RegisterRoutes(protected)

	return router
}

// doJSON performs a request with an optional bearer token and decodes the
// response body into a generic map.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	}
	return w.Code, decoded
}

// signup registers a user over HTTP and returns the session token and the
// user's shareable view id.
func signup(t *testing.T, router *gin.Engine, handle string) (token, viewID string) {
	t.Helper()
	code, body := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"handle":       handle,
		"display_name": handle,
		"email":        handle + "@example.com",
		"password":     "hunter22",
	})
	require.Equal(t, http.StatusCreated, code, "register %s: %v", handle, body)
	user := body["user"].(map[string]any)
	return body["token"].(string), user["view_id"].(string)
}
