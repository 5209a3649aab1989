package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bikerent/internal/domain"
	"bikerent/internal/service"
)

// RentHandler handles HTTP requests for rents.
type RentHandler struct {
	rentService *service.RentService
}

// NewRentHandler creates a new RentHandler.
func NewRentHandler(rentService *service.RentService) *RentHandler {
	return &RentHandler{rentService: rentService}
}

// RentRequest is the HTTP request body for renting or returning a bike.
type RentRequest struct {
	BikeID    string `json:"bike_id" binding:"required"`
	UserEmail string `json:"user_email" binding:"required"`
}

// RentResponse is the HTTP response for rent data.
type RentResponse struct {
	ID        string     `json:"id"`
	BikeID    string     `json:"bike_id"`
	UserEmail string     `json:"user_email"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Amount    *float64   `json:"amount,omitempty"`
}

func toRentResponse(rent *domain.Rent) RentResponse {
	resp := RentResponse{
		ID:        rent.ID,
		BikeID:    rent.Bike.ID,
		UserEmail: rent.User.Email,
		StartTime: rent.StartTime,
	}
	if !rent.Open() {
		endTime := rent.EndTime
		amount := rent.Amount
		resp.EndTime = &endTime
		resp.Amount = &amount
	}
	return resp
}

// Create handles POST /v1/rents
func (h *RentHandler) Create(c *gin.Context) {
	var req RentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rent, err := h.rentService.Rent(c.Request.Context(), service.RentBikeRequest{
		BikeID:    req.BikeID,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRentResponse(rent))
}

// ReturnResponse is the HTTP response for a completed return.
type ReturnResponse struct {
	Amount float64 `json:"amount"`
}

// Return handles POST /v1/rents/return
func (h *RentHandler) Return(c *gin.Context) {
	var req RentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	amount, err := h.rentService.Return(c.Request.Context(), service.ReturnBikeRequest{
		BikeID:    req.BikeID,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReturnResponse{Amount: amount})
}

// GetAll handles GET /v1/rents
func (h *RentHandler) GetAll(c *gin.Context) {
	rents := h.rentService.Rents()

	response := make([]RentResponse, 0, len(rents))
	for _, r := range rents {
		response = append(response, toRentResponse(r))
	}

	c.JSON(http.StatusOK, response)
}
