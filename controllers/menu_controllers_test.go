package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
)

func setupMenuRouter(store *services.Store) *gin.Engine {
	router := gin.New()
	router.Use(asUser("admin", "Administrator", models.RoleAdmin))
	menuCtrl := NewMenuController(store)
	router.GET("/menu-items", menuCtrl.GetMenuItems)
	router.GET("/menu-items/:id", menuCtrl.GetMenuItem)
	router.GET("/categories", menuCtrl.GetCategories)
	router.POST("/menu-items", menuCtrl.CreateMenuItem)
	router.PUT("/menu-items/:id", menuCtrl.UpdateMenuItem)
	router.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)
	return router
}

func TestGetMenuItems(t *testing.T) {
	router := setupMenuRouter(setupTestStore(t))

	w := performRequest(router, "GET", "/menu-items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 6)

	w = performRequest(router, "GET", "/menu-items?category=Main", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 2)

	w = performRequest(router, "GET", "/categories", nil)
	assert.Len(t, decodeResponse(t, w)["data"], 5)
}

func TestCreateMenuItem(t *testing.T) {
	router := setupMenuRouter(setupTestStore(t))

	w := performRequest(router, "POST", "/menu-items", gin.H{
		"name":        "Baklava",
		"category":    "Dessert",
		"price":       40,
		"description": "Pistachio baklava",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Menu item created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])

	w = performRequest(router, "POST", "/menu-items", gin.H{
		"name": "Free Lunch", "category": "Main", "price": 0, "description": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price: must be a positive number", decodeResponse(t, w)["message"])
}

func TestUpdateMenuItem(t *testing.T) {
	router := setupMenuRouter(setupTestStore(t))

	body := gin.H{"name": "Tea (large)", "category": "Drink", "price": 12, "description": "Large glass"}
	w := performRequest(router, "PUT", "/menu-items/6", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "GET", "/menu-items/6", nil)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Tea (large)", data["name"])

	w = performRequest(router, "PUT", "/menu-items/404", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMenuItem(t *testing.T) {
	router := setupMenuRouter(setupTestStore(t))

	w := performRequest(router, "DELETE", "/menu-items/unknown", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "DELETE", "/menu-items/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "GET", "/menu-items/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
