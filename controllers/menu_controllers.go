package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type MenuController struct {
	Store *services.Store
}

func NewMenuController(store *services.Store) *MenuController {
	return &MenuController{Store: store}
}

type menuItemRequest struct {
	Name        string          `json:"name"`
	Category    models.Category `json:"category"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
}

func (req menuItemRequest) item(id string) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
	}
}

// GetMenuItems lists the menu, optionally filtered by ?category=.
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	items, err := mc.Store.MenuItemsByCategory(c.Request.Context(), models.Category(c.Query("category")))
	if err != nil {
		respondStoreError(c, "load menu", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of categories", models.MenuCategories)
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	item, err := mc.Store.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, "load menu item", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Store.SaveMenuItem(c.Request.Context(), req.item(""))
	if err != nil {
		respondStoreError(c, "save menu item", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	if _, err := mc.Store.GetMenuItem(c.Request.Context(), id); err != nil {
		respondStoreError(c, "save menu item", err)
		return
	}
	item, err := mc.Store.SaveMenuItem(c.Request.Context(), req.item(id))
	if err != nil {
		respondStoreError(c, "save menu item", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	if err := mc.Store.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "delete menu item", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}
