package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// CartController exposes the table selection and cart of the device session.
type CartController struct {
	App *services.AppState
}

func NewCartController(app *services.AppState) *CartController {
	return &CartController{App: app}
}

type cartView struct {
	Table     *models.Table     `json:"table"`
	Lines     []models.CartLine `json:"lines"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func (cc *CartController) view() cartView {
	v := cartView{Table: cc.App.SelectedTable(), Lines: []models.CartLine{}}
	cc.App.UpdateCart(func(cart *models.Cart) {
		v.Lines = append(v.Lines, cart.Lines()...)
		v.Total = cart.Total()
		v.ItemCount = cart.ItemCount()
	})
	return v
}

func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current cart", cc.view())
}

// SelectTable -> only available tables can be chosen
func (cc *CartController) SelectTable(c *gin.Context) {
	var body struct {
		TableID string `json:"tableId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := cc.App.SelectTable(c.Request.Context(), body.TableID); err != nil {
		respondStoreError(c, "select table", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table selected", cc.view())
}

func (cc *CartController) AddItem(c *gin.Context) {
	var body struct {
		MenuItemID string `json:"menuItemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := cc.App.Store.GetMenuItem(c.Request.Context(), body.MenuItemID)
	if err != nil {
		respondStoreError(c, "add to cart", err)
		return
	}
	cc.App.UpdateCart(func(cart *models.Cart) { cart.Add(item) })
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", cc.view())
}

// UpdateItem sets the quantity of a line; zero or less removes it.
func (cc *CartController) UpdateItem(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	id := c.Param("id")
	cc.App.UpdateCart(func(cart *models.Cart) { cart.SetQuantity(id, body.Quantity) })
	utils.RespondJSON(c, http.StatusOK, "Cart updated", cc.view())
}

func (cc *CartController) ClearCart(c *gin.Context) {
	cc.App.UpdateCart(func(cart *models.Cart) { cart.Clear() })
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cc.view())
}

// SubmitCart places the cart as an order for the selected table.
func (cc *CartController) SubmitCart(c *gin.Context) {
	var body struct {
		Notes string `json:"notes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	order, err := cc.App.SubmitOrder(c.Request.Context(), body.Notes)
	if err != nil {
		respondStoreError(c, "create order", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}
