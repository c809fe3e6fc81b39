package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	svc *scheduling.Service
	loc *time.Location
}

func NewAppointmentHandler(svc *scheduling.Service, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckAvailabilityRequest struct {
	BarberID             uint   `json:"barber_id" binding:"required"`
	AppointmentDatetime  string `json:"appointment_datetime" binding:"required"`
	DurationMinutes      int    `json:"duration_minutes"`
	ExcludeAppointmentID uint   `json:"exclude_appointment_id"`
}

type CreateAppointmentRequest struct {
	ClientID            uint   `json:"client_id"`
	BarberID            uint   `json:"barber_id" binding:"required"`
	ServiceID           uint   `json:"service_id" binding:"required"`
	AppointmentDatetime string `json:"appointment_datetime" binding:"required"`
	DurationMinutes     int    `json:"duration_minutes"`
	Notes               string `json:"notes"`
}

type RescheduleRequest struct {
	AppointmentDatetime string `json:"appointment_datetime" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	start, err := parseDateTime(h.loc, req.AppointmentDatetime)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	res, err := h.svc.CheckAvailability(c.Request.Context(), scheduling.CheckAvailabilityInput{
		BarberID:             req.BarberID,
		Start:                start,
		DurationMinutes:      req.DurationMinutes,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		httperr.Respond(c, err, "availability_failed")
		return
	}

	httpresp.OK(c, dto.Availability(res, h.loc))
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	start, err := parseDateTime(h.loc, req.AppointmentDatetime)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	ap, err := h.svc.Book(c.Request.Context(), middleware.SessionFrom(c), scheduling.BookInput{
		ClientID:        req.ClientID,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, "booking_failed")
		return
	}

	httpresp.Created(c, dto.Appointment(*ap, h.loc))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidRequest, "invalid_request")
		return
	}

	start, err := parseDateTime(h.loc, req.AppointmentDatetime)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	ap, err := h.svc.Reschedule(c.Request.Context(), middleware.SessionFrom(c), id, start)
	if err != nil {
		httperr.Respond(c, err, "reschedule_failed")
		return
	}

	httpresp.OK(c, dto.Appointment(*ap, h.loc))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	// Body is optional; chunked bodies report no length.
	var req CancelRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			httperr.Respond(c, errInvalidRequest, "invalid_request")
			return
		}
	}

	ap, err := h.svc.Cancel(c.Request.Context(), middleware.SessionFrom(c), id, req.Reason)
	if err != nil {
		httperr.Respond(c, err, "cancel_failed")
		return
	}

	httpresp.OK(c, dto.Appointment(*ap, h.loc))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	ap, err := h.svc.Complete(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		httperr.Respond(c, err, "complete_failed")
		return
	}

	httpresp.OK(c, dto.Appointment(*ap, h.loc))
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	barberID, err := uintQuery(c, "barber_id")
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}
	from, to, err := parseDateRange(c, h.loc)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	list, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c), scheduling.ListFilter{
		Status:   models.AppointmentStatus(c.Query("status")),
		BarberID: barberID,
		From:     from,
		To:       to,
	})
	if err != nil {
		httperr.Respond(c, err, "appointments_list_failed")
		return
	}

	httpresp.OK(c, dto.Appointments(list, h.loc))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	ap, err := h.svc.Get(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		httperr.Respond(c, err, "appointment_get_failed")
		return
	}

	httpresp.OK(c, dto.Appointment(*ap, h.loc))
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	list, err := h.svc.Upcoming(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "appointments_upcoming_failed")
		return
	}
	httpresp.OK(c, dto.Appointments(list, h.loc))
}

func (h *AppointmentHandler) History(c *gin.Context) {
	list, err := h.svc.History(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "appointments_history_failed")
		return
	}
	httpresp.OK(c, dto.Appointments(list, h.loc))
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err, "appointments_stats_failed")
		return
	}
	httpresp.OK(c, stats)
}
