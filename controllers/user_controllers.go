package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// WaiterController manages waiter accounts. Responses never carry passwords.
type WaiterController struct {
	Store *services.Store
}

func NewWaiterController(store *services.Store) *WaiterController {
	return &WaiterController{Store: store}
}

type waiterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (wc *WaiterController) GetWaiters(c *gin.Context) {
	waiters, err := wc.Store.ListWaiters(c.Request.Context())
	if err != nil {
		respondStoreError(c, "load waiters", err)
		return
	}
	profiles := make([]models.Profile, 0, len(waiters))
	for _, w := range waiters {
		profiles = append(profiles, w.Profile())
	}
	utils.RespondJSON(c, http.StatusOK, "List of waiters", profiles)
}

func (wc *WaiterController) CreateWaiter(c *gin.Context) {
	var req waiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	waiter, err := wc.Store.SaveWaiter(c.Request.Context(), models.User{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondStoreError(c, "save waiter", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Waiter created successfully", waiter.Profile())
}

func (wc *WaiterController) UpdateWaiter(c *gin.Context) {
	var req waiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	if _, err := wc.Store.GetWaiter(c.Request.Context(), id); err != nil {
		respondStoreError(c, "save waiter", err)
		return
	}
	waiter, err := wc.Store.SaveWaiter(c.Request.Context(), models.User{
		ID:       id,
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondStoreError(c, "save waiter", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter updated successfully", waiter.Profile())
}

func (wc *WaiterController) DeleteWaiter(c *gin.Context) {
	if err := wc.Store.DeleteWaiter(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "delete waiter", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter deleted successfully", nil)
}
