package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type TableController struct {
	Store *services.Store
}

func NewTableController(store *services.Store) *TableController {
	return &TableController{Store: store}
}

// CreateTable -> adds a table; status defaults to available
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int                `json:"number" binding:"required"`
		Capacity int                `json:"capacity" binding:"required"`
		Status   models.TableStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Store.SaveTable(c.Request.Context(), models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   req.Status,
	})
	if err != nil {
		respondStoreError(c, "create table", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> lists tables, optionally filtered by ?status=
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Store.TablesByStatus(c.Request.Context(), models.TableStatus(c.Query("status")))
	if err != nil {
		respondStoreError(c, "load tables", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableStats(c *gin.Context) {
	counts, err := tc.Store.TableStatusCounts(c.Request.Context())
	if err != nil {
		respondStoreError(c, "load table summary", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table summary", counts)
}

func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status models.TableStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Store.UpdateTableStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondStoreError(c, "update table status", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	if err := tc.Store.DeleteTable(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "delete table", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", nil)
}
