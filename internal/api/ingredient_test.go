package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	token, _ := signup(t, router, "alice")

	code, ing := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", token, gin.H{
		"title": "Cold shower", "usefulness": 60,
	})
	require.Equal(t, http.StatusCreated, code)
	id := ing["id"].(string)

	code, updated := doJSON(t, router, http.MethodPut, "/api/v1/ingredients/"+id, token, gin.H{
		"title": "Cold shower 2m", "usefulness": 80,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cold shower 2m", updated["title"])

	code, body := doJSON(t, router, http.MethodGet, "/api/v1/ingredients/"+id+"/history", token, nil)
	require.Equal(t, http.StatusOK, code)
	revs := body["revisions"].([]any)
	require.Len(t, revs, 2)
	assert.Equal(t, "Cold shower 2m", revs[0].(map[string]any)["title"], "newest revision first")

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/ingredients/"+id, token, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, router, http.MethodGet, "/api/v1/ingredients", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["ingredients"].([]any))
}

func TestIngredientOwnershipOverHTTP(t *testing.T) {
	router := setupTestRouter(t)
	aliceToken, _ := signup(t, router, "alice")
	bobToken, _ := signup(t, router, "bob")

	code, ing := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", aliceToken, gin.H{
		"title": "Journal",
	})
	require.Equal(t, http.StatusCreated, code)
	id := ing["id"].(string)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/ingredients/"+id, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/ingredients/"+id+"/history", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestIconAndPresetRoutes(t *testing.T) {
	router := setupTestRouter(t)
	token, _ := signup(t, router, "alice")

	code, icon := doJSON(t, router, http.MethodPost, "/api/v1/my-icons", token, gin.H{
		"name": "sun",
		"data": "data:image/png;base64,aWNvbg==",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, router, http.MethodGet, "/api/v1/my-icons", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["icons"].([]any), 1)

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/my-icons/"+icon["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, router, http.MethodPut, "/api/v1/color-presets", token, gin.H{
		"presets": []gin.H{{"name": "focus", "color": "#ff0000"}},
	})
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["presets"].([]any), 1)

	code, body = doJSON(t, router, http.MethodGet, "/api/v1/color-presets", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "focus", body["presets"].([]any)[0].(map[string]any)["name"])
}
