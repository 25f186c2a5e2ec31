package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// AuthController drives the device session held in AppState.
type AuthController struct {
	App *services.AppState
}

func NewAuthController(app *services.AppState) *AuthController {
	return &AuthController{App: app}
}

// Login checks the credentials, persists the session and issues a token.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	profile, err := ac.App.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondStoreError(c, "log in", err)
		return
	}

	token, err := utils.GenerateToken(profile.ID, string(profile.Role))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to log in"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  profile,
	})
}

// Logout ends the session and drops the selected table and cart.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.App.Logout(c.Request.Context()); err != nil {
		respondStoreError(c, "log out", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// Session returns the session user, or null when logged out.
func (ac *AuthController) Session(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current session", gin.H{
		"user":  ac.App.User(),
		"phase": ac.App.Phase().String(),
	})
}
