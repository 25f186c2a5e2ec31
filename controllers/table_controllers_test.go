package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
)

func setupTableRouter(store *services.Store) *gin.Engine {
	router := gin.New()
	router.Use(asUser("admin", "Administrator", models.RoleAdmin))
	tableCtrl := NewTableController(store)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/stats", tableCtrl.GetTableStats)
	router.POST("/tables", tableCtrl.CreateTable)
	router.PATCH("/tables/:id/status", tableCtrl.UpdateTableStatus)
	router.DELETE("/tables/:id", tableCtrl.DeleteTable)
	return router
}

func TestGetAllTables(t *testing.T) {
	router := setupTableRouter(setupTestStore(t))

	w := performRequest(router, "GET", "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "List of tables", response["message"])
	assert.Len(t, response["data"], 10)

	w = performRequest(router, "GET", "/tables?status=occupied", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 2)
}

func TestGetTableStats(t *testing.T) {
	router := setupTableRouter(setupTestStore(t))

	w := performRequest(router, "GET", "/tables/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["available"])
	assert.Equal(t, float64(1), data["maintenance"])
}

func TestUpdateTableStatus(t *testing.T) {
	router := setupTableRouter(setupTestStore(t))

	w := performRequest(router, "PATCH", "/tables/5/status", gin.H{"status": "available"})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Table status updated", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "available", data["status"])

	w = performRequest(router, "PATCH", "/tables/99/status", gin.H{"status": "available"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "PATCH", "/tables/1/status", gin.H{"status": "dirty"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "PATCH", "/tables/1/status", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndDeleteTable(t *testing.T) {
	router := setupTableRouter(setupTestStore(t))

	w := performRequest(router, "POST", "/tables", gin.H{"number": 11, "capacity": 4})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "available", data["status"])

	w = performRequest(router, "DELETE", "/tables/"+data["id"].(string), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Table deleted successfully", decodeResponse(t, w)["message"])
}
