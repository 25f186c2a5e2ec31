package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type OrderController struct {
	Store *services.Store
}

func NewOrderController(store *services.Store) *OrderController {
	return &OrderController{Store: store}
}

// CreateOrder places an order for the logged-in waiter. Prices come from
// the current menu, not from the request.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableID     string                 `json:"tableId"`
		TableNumber int                    `json:"tableNumber"`
		Items       []services.ItemRequest `json:"items"`
		Notes       string                 `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.TableID == "" && req.TableNumber == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("tableId or tableNumber is required"))
		return
	}

	ctx := c.Request.Context()
	items, err := oc.Store.SnapshotItems(ctx, req.Items)
	if err != nil {
		respondStoreError(c, "create order", err)
		return
	}

	order, err := oc.Store.AddOrder(ctx, models.Order{
		TableID:     req.TableID,
		TableNumber: req.TableNumber,
		WaiterID:    c.GetString("user_id"),
		WaiterName:  c.GetString("user_name"),
		Items:       items,
		Notes:       req.Notes,
	})
	if err != nil {
		respondStoreError(c, "create order", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Store.ListOrders(c.Request.Context())
	if err != nil {
		respondStoreError(c, "load orders", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderDetail(c *gin.Context) {
	order, err := oc.Store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, "load order", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetKitchenOrders -> orders for the kitchen screen, ?filter=all|pending|preparing|active
func (oc *OrderController) GetKitchenOrders(c *gin.Context) {
	filter := services.KitchenFilter(c.DefaultQuery("filter", string(services.KitchenActive)))
	switch filter {
	case services.KitchenAll, services.KitchenPending, services.KitchenPreparing, services.KitchenActive:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown filter "+string(filter)))
		return
	}

	orders, err := oc.Store.KitchenOrders(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, "load kitchen orders", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", orders)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondStoreError(c, "update order status", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) AdvanceOrder(c *gin.Context) {
	order, err := oc.Store.AdvanceOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, "update order status", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
