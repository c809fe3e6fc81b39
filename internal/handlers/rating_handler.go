package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	ratinguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/rating"
)

type RatingHandler struct {
	svc *ratinguc.Service
	loc *time.Location
}

func NewRatingHandler(svc *ratinguc.Service, loc *time.Location) *RatingHandler {
	return &RatingHandler{svc: svc, loc: loc}
}

type CreateRatingRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Score         int    `json:"score"`
	Comment       string `json:"comment"`
}

func (h *RatingHandler) Create(c *gin.Context) {
	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	r, _, err := h.svc.Submit(c.Request.Context(), middleware.SessionFrom(c), ratinguc.SubmitInput{
		AppointmentID: req.AppointmentID,
		Score:         req.Score,
		Comment:       req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err, "rating_failed")
		return
	}

	httpresp.Created(c, dto.Rating(*r, h.loc))
}

func (h *RatingHandler) MyRatings(c *gin.Context) {
	list, err := h.svc.MyRatings(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "ratings_list_failed")
		return
	}
	httpresp.OK(c, dto.Ratings(list, h.loc))
}

func (h *RatingHandler) BarberStats(c *gin.Context) {
	barberID, err := uintQuery(c, "barber_id")
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}
	if barberID == nil {
		httperr.BadRequest(c, "barber_id_required", "barber_id parameter is required.")
		return
	}

	summary, err := h.svc.BarberStats(c.Request.Context(), *barberID)
	if err != nil {
		httperr.Respond(c, err, "barber_stats_failed")
		return
	}
	httpresp.OK(c, dto.BarberStats(*summary, h.loc))
}
