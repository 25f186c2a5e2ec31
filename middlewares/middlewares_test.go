package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/storage"
	"github.com/yeremiapane/restaurant-orders/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.SilenceLoggers()
	os.Exit(m.Run())
}

func setupTestStore(t *testing.T) *services.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	kv := storage.NewGormKV(db)
	require.NoError(t, kv.Migrate())
	store := services.NewStore(kv)
	require.NoError(t, store.Seed(context.Background()))
	return store
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	router := gin.New()
	router.GET("/me", AuthMiddleware(store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	w := get(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(router, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	profile, err := store.Authenticate(ctx, "garson1", "123456")
	require.NoError(t, err)
	token, err := utils.GenerateToken(profile.ID, string(profile.Role))
	require.NoError(t, err)

	w = get(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"1"`)

	// a token for someone else than the session user is refused
	other, err := utils.GenerateToken("admin", string(models.RoleAdmin))
	require.NoError(t, err)
	w = get(router, "/me", other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, store.Logout(ctx))
	w = get(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleCheck(t *testing.T) {
	withRole := func(role models.Role) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set("role", role)
			c.Next()
		})
		router.GET("/admin", RoleCheck(models.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	assert.Equal(t, http.StatusForbidden, get(withRole(models.RoleWaiter), "/admin", "").Code)
	assert.Equal(t, http.StatusOK, get(withRole(models.RoleAdmin), "/admin", "").Code)

	bare := gin.New()
	bare.GET("/admin", RoleCheck(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusUnauthorized, get(bare, "/admin", "").Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(time.Hour, 2)
	router := gin.New()
	router.GET("/login", limiter.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, get(router, "/login", "").Code)
	assert.Equal(t, http.StatusOK, get(router, "/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "/login", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders(), CORSMiddlewares("http://127.0.0.1:5500"))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("OPTIONS", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://127.0.0.1:5500", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestWebSocketAuthMiddleware_MissingToken(t *testing.T) {
	router := gin.New()
	router.GET("/kds/ws", WebSocketAuthMiddleware(setupTestStore(t)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusUnauthorized, get(router, "/kds/ws", "").Code)
}
