package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bikerent/internal/domain"
	"bikerent/internal/service"
)

// defaultNearbyRadiusKm bounds the nearby search when the caller does not
// pass a radius.
const defaultNearbyRadiusKm = 5.0

// BikeHandler handles HTTP requests for bikes.
type BikeHandler struct {
	bikeService *service.BikeService
}

// NewBikeHandler creates a new BikeHandler.
func NewBikeHandler(bikeService *service.BikeService) *BikeHandler {
	return &BikeHandler{bikeService: bikeService}
}

// RegisterBikeRequest is the HTTP request body for bike registration.
type RegisterBikeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	BodySize    int      `json:"body_size"`
	MaxLoad     int      `json:"max_load"`
	Rate        float64  `json:"rate"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	ImageURLs   []string `json:"image_urls"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
}

// BikeResponse is the HTTP response for bike data.
type BikeResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	BodySize    int      `json:"body_size"`
	MaxLoad     int      `json:"max_load"`
	Rate        float64  `json:"rate"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	ImageURLs   []string `json:"image_urls"`
	Available   bool     `json:"available"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
}

func toBikeResponse(bike *domain.Bike) BikeResponse {
	return BikeResponse{
		ID:          bike.ID,
		Name:        bike.Name,
		Type:        bike.Type,
		BodySize:    bike.BodySize,
		MaxLoad:     bike.MaxLoad,
		Rate:        bike.Rate,
		Description: bike.Description,
		Rating:      bike.Rating,
		ImageURLs:   bike.ImageURLs,
		Available:   bike.Available,
		Latitude:    bike.Location.Latitude,
		Longitude:   bike.Location.Longitude,
	}
}

// Register handles POST /v1/bikes
func (h *BikeHandler) Register(c *gin.Context) {
	var req RegisterBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	bike, err := h.bikeService.Register(c.Request.Context(), service.RegisterBikeRequest{
		Name:        req.Name,
		Type:        req.Type,
		BodySize:    req.BodySize,
		MaxLoad:     req.MaxLoad,
		Rate:        req.Rate,
		Description: req.Description,
		Rating:      req.Rating,
		ImageURLs:   req.ImageURLs,
		Location:    domain.Location{Latitude: req.Latitude, Longitude: req.Longitude},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBikeResponse(bike))
}

// GetAll handles GET /v1/bikes
func (h *BikeHandler) GetAll(c *gin.Context) {
	bikes, err := h.bikeService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BikeResponse, 0, len(bikes))
	for _, b := range bikes {
		response = append(response, toBikeResponse(b))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/bikes/:id
func (h *BikeHandler) Get(c *gin.Context) {
	bike, err := h.bikeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBikeResponse(bike))
}

// Remove handles DELETE /v1/bikes/:id
func (h *BikeHandler) Remove(c *gin.Context) {
	if err := h.bikeService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveRequest is the HTTP request body for relocating a bike.
type MoveRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Move handles POST /v1/bikes/:id/location
func (h *BikeHandler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	bike, err := h.bikeService.MoveTo(c.Request.Context(), service.MoveBikeRequest{
		BikeID:    c.Param("id"),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBikeResponse(bike))
}

// Nearby handles GET /v1/bikes/nearby?lat=..&lng=..&radius_km=..
func (h *BikeHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat is required"})
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lng is required"})
		return
	}

	radiusKm := defaultNearbyRadiusKm
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius_km"})
			return
		}
	}

	bikes, err := h.bikeService.FindNearby(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BikeResponse, 0, len(bikes))
	for _, b := range bikes {
		response = append(response, toBikeResponse(b))
	}

	c.JSON(http.StatusOK, response)
}
