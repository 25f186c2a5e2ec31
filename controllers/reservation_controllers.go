package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type ReservationController struct {
	Store *services.Store
}

func NewReservationController(store *services.Store) *ReservationController {
	return &ReservationController{Store: store}
}

type reservationRequest struct {
	CustomerName  string                   `json:"customerName"`
	CustomerPhone string                   `json:"customerPhone"`
	TableID       string                   `json:"tableId"`
	Date          string                   `json:"date"`
	Time          string                   `json:"time"`
	GuestCount    int                      `json:"guestCount"`
	Notes         string                   `json:"notes"`
	Status        models.ReservationStatus `json:"status"`
}

func (req reservationRequest) reservation(id string) models.Reservation {
	return models.Reservation{
		ID:            id,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TableID:       req.TableID,
		Date:          req.Date,
		Time:          req.Time,
		GuestCount:    req.GuestCount,
		Notes:         req.Notes,
		Status:        req.Status,
	}
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.Store.ListReservations(c.Request.Context())
	if err != nil {
		respondStoreError(c, "load reservations", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) GetReservableTables(c *gin.Context) {
	tables, err := rc.Store.ReservableTables(c.Request.Context())
	if err != nil {
		respondStoreError(c, "load tables", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservable tables", tables)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Store.SaveReservation(c.Request.Context(), req.reservation(""))
	if err != nil {
		respondStoreError(c, "save reservation", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	if _, err := rc.Store.GetReservation(c.Request.Context(), id); err != nil {
		respondStoreError(c, "save reservation", err)
		return
	}
	reservation, err := rc.Store.SaveReservation(c.Request.Context(), req.reservation(id))
	if err != nil {
		respondStoreError(c, "save reservation", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	var body struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Store.UpdateReservationStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondStoreError(c, "update reservation status", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	if err := rc.Store.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "delete reservation", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", nil)
}
