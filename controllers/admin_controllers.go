package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type AdminController struct {
	Store *services.Store
}

func NewAdminController(store *services.Store) *AdminController {
	return &AdminController{Store: store}
}

// GetSalesReport -> ?period=today|week|month, defaults to today
func (ac *AdminController) GetSalesReport(c *gin.Context) {
	period, ok := services.ParsePeriod(c.Query("period"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("period must be today, week or month"))
		return
	}

	report, err := ac.Store.SalesReport(c.Request.Context(), period)
	if err != nil {
		respondStoreError(c, "build sales report", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Sales report", gin.H{
		"report": report,
		"formatted": gin.H{
			"totalRevenue":      utils.FormatCurrency(report.TotalRevenue),
			"averageOrderValue": utils.FormatCurrency(report.AverageOrderValue),
		},
	})
}

// GetDashboardStats -> today's sales plus live order and table counts
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	today, err := ac.Store.SalesReport(ctx, services.PeriodToday)
	if err != nil {
		respondStoreError(c, "load dashboard", err)
		return
	}
	orderStats, err := ac.Store.OrderStatusCounts(ctx)
	if err != nil {
		respondStoreError(c, "load dashboard", err)
		return
	}
	tableStats, err := ac.Store.TableStatusCounts(ctx)
	if err != nil {
		respondStoreError(c, "load dashboard", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"todayOrders":  today.TotalOrders,
		"todayRevenue": today.TotalRevenue,
		"orderStats":   orderStats,
		"tableStats":   tableStats,
	})
}
